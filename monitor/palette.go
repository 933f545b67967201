package monitor

import "image/color"

// Palette index assignments. Indices 0 through settled form the fade
// gradient; everything a cell draws uses its decay counter directly as
// the palette index.
const (
	settled    = 128 // gradient end; the settled/unused color
	background = 255 // background fill
)

// buildPalette derives the 256-entry color table from the three
// configured colors. Indices 0..127 run from the foreground toward the
// unused color, accumulating a per-step delta so that rounding matches
// a running interpolation; index 128 is the unused color exactly and
// index 255 the background. The remaining entries are unused and hold
// the background color.
func buildPalette(fg, unused, bg color.RGBA) color.Palette {
	p := make(color.Palette, 256)
	var (
		r, g, b = float64(fg.R), float64(fg.G), float64(fg.B)
		dr      = (float64(unused.R) - float64(fg.R)) / settled
		dg      = (float64(unused.G) - float64(fg.G)) / settled
		db      = (float64(unused.B) - float64(fg.B)) / settled
	)
	for i := 0; i < settled; i++ {
		p[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
		r += dr
		g += dg
		b += db
	}
	p[settled] = unused
	for i := settled + 1; i < len(p); i++ {
		p[i] = bg
	}
	return p
}
