package monitor

// Fixed spacing: between the first and second subsection of each
// section, and between the row-address label and the first data slot.
const (
	subsectionGap = 12
	labelGap      = 10
)

const (
	addrsPerRow = 16
	slotCount   = 2 * addrsPerRow
)

// layout holds the pixel geometry derived from the spacing
// configuration and the atlas glyph size: one X offset per nibble
// slot, the label glyph positions, and the overall surface size.
//
// Each row shows sixteen addresses as two sections of two
// subsections of four bytes. Within a byte the two nibble glyphs are
// separated by the character gap, bytes by the value gap, subsections
// by the fixed subsection gap, and the two sections by the section
// gap.
type layout struct {
	slotX  [slotCount]int
	labelX [3]int

	charW, charH  int
	lineGap       int
	offsetY       int
	width, height int
}

func computeLayout(cfg Config, charW, charH, rows int) layout {
	l := layout{
		charW:   charW,
		charH:   charH,
		lineGap: cfg.LineGap,
		offsetY: cfg.OffsetY,
	}
	for i := range l.labelX {
		l.labelX[i] = cfg.OffsetX + i*(charW+cfg.CharGap)
	}
	x := l.labelX[2] + charW + labelGap
	for i := 0; i < slotCount; i++ {
		l.slotX[i] = x
		x += charW
		switch {
		case i == 7 || i == 23:
			x += subsectionGap
		case i == 15:
			x += cfg.SectionGap
		case i%2 == 0:
			x += cfg.CharGap
		default:
			x += cfg.ValueGap
		}
	}
	l.width = l.slotX[slotCount-1] + charW + cfg.OffsetX
	l.height = 2*cfg.OffsetY + rows*charH + (rows-1)*cfg.LineGap
	return l
}

// rowY returns the Y offset of a grid row's glyphs.
func (l *layout) rowY(row int) int {
	return l.offsetY + row*(l.charH+l.lineGap)
}

// slots returns the two slot indices holding an address's high and low
// nibble glyphs.
func slots(addr int) (hi, lo int) {
	hi = (addr * 2) % slotCount
	return hi, hi + 1
}
