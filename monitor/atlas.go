// Package monitor renders a grid of byte-valued register cells into an
// indexed-color pixel surface, highlighting recent writes with a color
// that fades over successive frames.
package monitor

import (
	"fmt"
	"image"
	"sync"
)

// GlyphCount is the number of cells in a glyph source strip: the
// sixteen hexadecimal digits followed by the address-label marker.
const GlyphCount = 17

// Marker is the atlas index of the address-label marker glyph.
const Marker = 16

// Atlas holds the ink masks extracted from a glyph source strip.
// An Atlas is immutable once built and may be shared by any number
// of monitors.
type Atlas struct {
	w, h  int
	masks [GlyphCount][]byte // 0 = no ink, nonzero = ink
}

// NewAtlas extracts the seventeen glyph masks from a source strip:
// a single image of GlyphCount equal-width cells sharing one height.
// Only whether a source pixel's color index is zero matters; glyphs
// are tinted at draw time, not by the strip's own colors.
func NewAtlas(src image.PalettedImage) (*Atlas, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if h == 0 {
		return nil, fmt.Errorf("glyph strip has zero height")
	}
	if w == 0 || w%GlyphCount != 0 {
		return nil, fmt.Errorf("glyph strip width %d not a multiple of %d", w, GlyphCount)
	}
	a := &Atlas{w: w / GlyphCount, h: h}
	for i := 0; i < GlyphCount; i++ {
		m := make([]byte, a.w*a.h)
		for y := 0; y < a.h; y++ {
			for x := 0; x < a.w; x++ {
				m[y*a.w+x] = src.ColorIndexAt(b.Min.X+i*a.w+x, b.Min.Y+y)
			}
		}
		a.masks[i] = m
	}
	return a, nil
}

// CharWidth returns the width of one glyph cell in pixels.
func (a *Atlas) CharWidth() int { return a.w }

// CharHeight returns the height of one glyph cell in pixels.
func (a *Atlas) CharHeight() int { return a.h }

func (a *Atlas) ink(glyph, x, y int) bool {
	return a.masks[glyph][y*a.w+x] != 0
}

var (
	defaultAtlas     *Atlas
	defaultAtlasOnce sync.Once
)

// DefaultAtlas returns the process-wide atlas built from the built-in
// glyph strip. The first call builds it; subsequent calls return the
// same value.
func DefaultAtlas() *Atlas {
	defaultAtlasOnce.Do(func() {
		a, err := NewAtlas(glyphStrip())
		if err != nil {
			panic("monitor: built-in glyph strip: " + err.Error())
		}
		defaultAtlas = a
	})
	return defaultAtlas
}
