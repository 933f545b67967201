package monitor

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// stripChars are the built-in strip's glyphs in atlas order: the hex
// digits 0-f, then the address-label marker.
const stripChars = "0123456789ABCDEF:"

// glyphStrip renders the built-in glyph source: GlyphCount equal-width
// cells packed horizontally into one two-color indexed image, with
// index 0 as background and index 1 as ink.
func glyphStrip() *image.Paletted {
	face := basicfont.Face7x13
	cw, ch := face.Advance, face.Height
	m := image.NewPaletted(
		image.Rect(0, 0, cw*GlyphCount, ch),
		color.Palette{color.Black, color.White},
	)
	d := font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(m.Palette[1]),
		Face: face,
	}
	for i, r := range stripChars {
		d.Dot = fixed.P(i*cw, face.Ascent)
		d.DrawString(string(r))
	}
	return m
}
