package field

import (
	"math"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
)

// Extent is the half width of the world area shown, in world units.
const Extent = config.FieldHalfSize + 100

// View maps world coordinates onto a grid of terminal cells. One row is
// taller than one column, by 1/AspectRatio.
type View struct {
	Width, Height int
	centerX       float64
	centerY       float64
	scale         float64 // columns per world unit
}

// NewView fits the square [-Extent, Extent]² into width×height cells.
func NewView(width, height int) View {
	cols := float64(width-1) / (2 * Extent)
	rows := float64(height-1) / (2 * Extent) / config.AspectRatio
	return View{
		Width:   width,
		Height:  height,
		centerX: float64(width-1) / 2,
		centerY: float64(height-1) / 2,
		scale:   math.Min(cols, rows),
	}
}

// Cell returns the cell containing world point p.
func (v View) Cell(p geom.Vec2) (col, row int) {
	col = int(math.Round(v.centerX + p.X*v.scale))
	row = int(math.Round(v.centerY - p.Y*v.scale*config.AspectRatio))
	return col, row
}

// World returns the world point at the center of a cell.
func (v View) World(col, row int) geom.Vec2 {
	if v.scale == 0 {
		return geom.Vec2{}
	}
	return geom.V(
		(float64(col)-v.centerX)/v.scale,
		-(float64(row)-v.centerY)/(v.scale*config.AspectRatio),
	)
}

// Inside reports whether a cell lies on the grid.
func (v View) Inside(col, row int) bool {
	return col >= 0 && col < v.Width && row >= 0 && row < v.Height
}

// CellSize is the world length covered by one column.
func (v View) CellSize() float64 {
	if v.scale == 0 {
		return math.Inf(1)
	}
	return 1 / v.scale
}
