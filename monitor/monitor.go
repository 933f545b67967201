package monitor

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// MaxAddresses is the largest grid a Monitor can display.
const MaxAddresses = 256

// RangeError reports a constructor or configuration argument outside
// its documented domain.
type RangeError struct {
	What  string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: %d", e.What, e.Value)
}

// Config is the monitor's visual configuration. Changes take effect
// when the whole value is applied with SetConfig, which recomputes
// the palette and layout in one step.
type Config struct {
	// Base offset of the grid within the surface.
	OffsetX, OffsetY int

	// CharGap separates the two nibble glyphs of a byte, ValueGap
	// separates bytes, SectionGap separates the two register
	// sections, and LineGap separates grid rows. None may be
	// negative.
	CharGap, ValueGap, SectionGap, LineGap int

	// Foreground is the color of a freshly written cell and of the
	// row-address labels, Unused the color a cell fades to, and
	// Background the fill behind everything.
	Foreground, Unused, Background color.RGBA

	// MarkUnused renders cleared registers in the unused color
	// instead of leaving them at the gradient's bright end.
	MarkUnused bool

	// Decay fades recently written cells over successive frames.
	// When false a written cell renders once at full brightness and
	// stays there.
	Decay bool

	// DecaySpeed is the fade speed exponent in [0, 6]; the counter
	// advances by 2^DecaySpeed each frame.
	DecaySpeed int
}

// DefaultConfig returns the configuration a new Monitor starts with.
func DefaultConfig() Config {
	return Config{
		OffsetX:    8,
		OffsetY:    8,
		CharGap:    2,
		ValueGap:   6,
		SectionGap: 24,
		LineGap:    4,
		Foreground: color.RGBA{0xe8, 0xe8, 0xe8, 0xff},
		Unused:     color.RGBA{0x3a, 0x3a, 0x52, 0xff},
		Background: color.RGBA{0x10, 0x10, 0x1a, 0xff},
		Decay:      true,
		DecaySpeed: 2,
	}
}

// cell is the per-address grid state. The decay counter doubles as
// the palette index the cell's glyphs are drawn with: 0 is the
// foreground color, settled the unused color.
type cell struct {
	value byte
	dirty bool
	decay byte
}

// Monitor renders a fixed grid of byte cells into an indexed-color
// pixel surface. Writes restart the cell's fade animation; Draw,
// called once per frame by the host, redraws exactly the cells that
// changed.
//
// A Monitor's methods must not be called concurrently with reads of
// the surface returned by Surface.
type Monitor struct {
	mu    sync.Mutex
	atlas *Atlas
	cells []cell

	cfg  Config
	step byte // 2^cfg.DecaySpeed
	pal  color.Palette
	lay  layout

	surface  *image.Paletted
	fullDraw bool
}

// New returns a Monitor displaying maxAddr addresses, drawing glyphs
// from atlas. A nil atlas selects the shared default atlas. The pixel
// surface is sized from the default configuration and is never
// resized; applying a larger layout later overflows into clipped
// draws.
func New(atlas *Atlas, maxAddr int) (*Monitor, error) {
	if maxAddr < 1 || maxAddr > MaxAddresses {
		return nil, &RangeError{What: "address count", Value: maxAddr}
	}
	if atlas == nil {
		atlas = DefaultAtlas()
	}
	m := &Monitor{
		atlas: atlas,
		cells: make([]cell, maxAddr),
	}
	if err := m.SetConfig(DefaultConfig()); err != nil {
		return nil, err
	}
	m.surface = image.NewPaletted(image.Rect(0, 0, m.lay.width, m.lay.height), m.pal)
	m.RequestAllDraw()
	return m, nil
}

// Config returns the currently applied configuration.
func (m *Monitor) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// SetConfig validates and applies a configuration, rebuilding the
// palette and layout. On error the previous configuration is left
// untouched. A change to the layout spacing or to MarkUnused requests
// a full redraw.
func (m *Monitor) SetConfig(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range []struct {
		name string
		v    int
	}{
		{"character gap", cfg.CharGap},
		{"value gap", cfg.ValueGap},
		{"section gap", cfg.SectionGap},
		{"line gap", cfg.LineGap},
	} {
		if g.v < 0 {
			return &RangeError{What: g.name, Value: g.v}
		}
	}
	if cfg.DecaySpeed < 0 || cfg.DecaySpeed > 6 {
		return &RangeError{What: "decay speed exponent", Value: cfg.DecaySpeed}
	}

	old := m.cfg
	m.cfg = cfg
	m.step = 1 << cfg.DecaySpeed
	m.pal = buildPalette(cfg.Foreground, cfg.Unused, cfg.Background)
	m.lay = computeLayout(cfg, m.atlas.CharWidth(), m.atlas.CharHeight(), m.rows())
	if m.surface != nil {
		m.surface.Palette = m.pal
	}
	if layoutChanged(old, cfg) || old.MarkUnused != cfg.MarkUnused {
		m.requestAllDraw()
	}
	return nil
}

func layoutChanged(a, b Config) bool {
	return a.OffsetX != b.OffsetX || a.OffsetY != b.OffsetY ||
		a.CharGap != b.CharGap || a.ValueGap != b.ValueGap ||
		a.SectionGap != b.SectionGap || a.LineGap != b.LineGap
}

// MaxAddress returns the number of addresses in the grid.
func (m *Monitor) MaxAddress() int { return len(m.cells) }

func (m *Monitor) rows() int { return (len(m.cells) + addrsPerRow - 1) / addrsPerRow }

// Width returns the surface width the current layout calls for.
func (m *Monitor) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lay.width
}

// Height returns the surface height the current layout calls for.
func (m *Monitor) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lay.height
}

// Surface returns the monitor's pixel surface for display. The host
// must treat it as read-only and must not read it while Draw runs.
func (m *Monitor) Surface() *image.Paletted { return m.surface }

func (m *Monitor) checkAddr(addr int) error {
	if addr < 0 || addr >= len(m.cells) {
		return &RangeError{What: "address", Value: addr}
	}
	return nil
}

// SetData writes a value to an address, marking the cell for redraw
// and restarting its fade at full brightness.
func (m *Monitor) SetData(addr int, v byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAddr(addr); err != nil {
		return err
	}
	c := &m.cells[addr]
	c.value = v
	c.dirty = true
	c.decay = 0
	return nil
}

// GetData returns the value last written to an address.
func (m *Monitor) GetData(addr int) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAddr(addr); err != nil {
		return 0, err
	}
	return m.cells[addr].value, nil
}

// Decay returns an address's animation counter: 0 is freshly written,
// values at or above 128 are settled.
func (m *Monitor) Decay(addr int) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAddr(addr); err != nil {
		return 0, err
	}
	return m.cells[addr].decay, nil
}

// ClearAll zeroes every address and marks it for redraw. With
// MarkUnused enabled the cells restart their fade toward the unused
// color; otherwise they settle immediately.
func (m *Monitor) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := byte(settled)
	if m.cfg.MarkUnused {
		d = 0
	}
	for i := range m.cells {
		m.cells[i] = cell{dirty: true, decay: d}
	}
}

// UnmarkAll flattens every cell to the settled color instantly,
// leaving values untouched. It does nothing unless MarkUnused is
// enabled.
func (m *Monitor) UnmarkAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cfg.MarkUnused {
		return
	}
	for i := range m.cells {
		m.cells[i].decay = settled
		m.cells[i].dirty = true
	}
}

// RequestAllDraw forces the next Draw to repaint the background, the
// row-address labels, and every cell. Values and fade counters are
// untouched.
func (m *Monitor) RequestAllDraw() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestAllDraw()
}

func (m *Monitor) requestAllDraw() {
	m.fullDraw = true
	for i := range m.cells {
		m.cells[i].dirty = true
	}
}

// Draw renders one frame: it repaints the static layer if a full
// redraw is pending, advances every cell's fade counter, and redraws
// exactly the cells that are dirty or still animating. The surface is
// held for writing for the duration of the call.
func (m *Monitor) Draw() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fullDraw {
		for i := range m.surface.Pix {
			m.surface.Pix[i] = background
		}
		for row := 0; row < m.rows(); row++ {
			m.drawLabel(row)
		}
		m.fullDraw = false
	}

	for addr := range m.cells {
		c := &m.cells[addr]
		redraw := c.dirty
		if c.decay < settled {
			if m.cfg.Decay {
				// Widening add so a large step cannot wrap the
				// counter past the ceiling.
				d := int(c.decay) + int(m.step)
				if d > settled {
					d = settled
				}
				c.decay = byte(d)
				redraw = true
			} else if c.decay > 0 {
				c.decay = 0
				redraw = true
			}
		}
		if redraw {
			m.drawCell(addr)
			c.dirty = false
		}
	}
}

// drawLabel draws a row's static address label: the marker glyph, the
// row index digit, and a zero, in the foreground color.
func (m *Monitor) drawLabel(row int) {
	y := m.lay.rowY(row)
	m.drawGlyph(Marker, m.lay.labelX[0], y, 0)
	m.drawGlyph(row&0xf, m.lay.labelX[1], y, 0)
	m.drawGlyph(0, m.lay.labelX[2], y, 0)
}

func (m *Monitor) drawCell(addr int) {
	c := m.cells[addr]
	hi, lo := slots(addr)
	y := m.lay.rowY(addr / addrsPerRow)
	m.drawGlyph(int(c.value>>4), m.lay.slotX[hi], y, c.decay)
	m.drawGlyph(int(c.value&0x0f), m.lay.slotX[lo], y, c.decay)
}

// drawGlyph blits one glyph's full bounding box: ink pixels take the
// given palette index, the rest take the background index so a shape
// change never leaves stale ink behind.
func (m *Monitor) drawGlyph(glyph, x, y int, index byte) {
	for gy := 0; gy < m.atlas.h; gy++ {
		for gx := 0; gx < m.atlas.w; gx++ {
			ci := byte(background)
			if m.atlas.ink(glyph, gx, gy) {
				ci = index
			}
			m.surface.SetColorIndex(x+gx, y+gy, ci)
		}
	}
}
