// Package surface computes the drawable court area from the viewport.
package surface

import (
	"math"

	"github.com/tomz197/pong/internal/loop/config"
)

// Size is the drawable area in logical units.
type Size struct {
	Width  float64
	Height float64
}

// FromViewport returns the surface for a viewport of vw x vh logical units:
// a fixed fraction of each dimension.
func FromViewport(vw, vh float64) Size {
	return Size{
		Width:  vw * config.SurfaceWidthFraction,
		Height: vh * config.SurfaceHeightFraction,
	}
}

// Layout places the surface inside a terminal.
type Layout struct {
	Size      Size // Logical surface dimensions
	Cols      int  // Terminal columns covered by the surface
	Rows      int  // Terminal rows covered by the surface
	OffsetCol int  // 0-based column where the surface starts
	OffsetRow int  // 0-based row where the surface starts
}

// FromTerminal converts a terminal of cols x rows cells into a surface layout.
// The viewport is the whole terminal; the surface is centred in it and its
// logical size is snapped to whole cells so scaling stays exact.
func FromTerminal(cols, rows int) Layout {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	vw := float64(cols) * config.CellWidth
	vh := float64(rows) * config.CellHeight
	s := FromViewport(vw, vh)

	sc := int(math.Floor(s.Width / config.CellWidth))
	sr := int(math.Floor(s.Height / config.CellHeight))
	if sc < 1 {
		sc = 1
	}
	if sr < 1 {
		sr = 1
	}
	return Layout{
		Size: Size{
			Width:  float64(sc) * config.CellWidth,
			Height: float64(sr) * config.CellHeight,
		},
		Cols:      sc,
		Rows:      sr,
		OffsetCol: (cols - sc) / 2,
		OffsetRow: (rows - sr) / 2,
	}
}
