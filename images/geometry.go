// Package images - Geometry helpers shared by the heatmap decoders.
package images

import "github.com/chewxy/math32"

// Vector2D is a point or displacement in (y, x) order, matching the row-major
// layout of the network output grids.
type Vector2D struct {
	Y float32 `json:"y" yaml:"y"`
	X float32 `json:"x" yaml:"x"`
}

// AddVectors returns the component-wise sum of a and b.
//
// Arguments:
//   - a: The first vector.
//   - b: The second vector.
//
// Returns:
//   - Vector2D: a + b.
//
// @example
// p := AddVectors(Vector2D{Y: 1, X: 2}, Vector2D{Y: 0.5, X: -1}) // {1.5, 1}
func AddVectors(a, b Vector2D) Vector2D {
	return Vector2D{Y: a.Y + b.Y, X: a.X + b.X}
}

// Scale multiplies both components of v by the matching factor.
func (v Vector2D) Scale(sy, sx float32) Vector2D {
	return Vector2D{Y: v.Y * sy, X: v.X * sx}
}

// SquaredDistance returns the squared euclidean distance between a and b.
//
// Callers compare against a squared radius so no square root is taken.
//
// Arguments:
//   - a: The first point.
//   - b: The second point.
//
// Returns:
//   - float32: (a.Y-b.Y)^2 + (a.X-b.X)^2.
func SquaredDistance(a, b Vector2D) float32 {
	dy := a.Y - b.Y
	dx := a.X - b.X
	return dy*dy + dx*dx
}

// ClampInt restricts v to the closed range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NearestCell snaps a point expressed in grid units to the closest grid cell,
// clamped to a grid of the given height and width.
//
// Arguments:
//   - p: The point in grid units.
//   - height: Number of grid rows.
//   - width: Number of grid columns.
//
// Returns:
//   - row: The clamped row index.
//   - col: The clamped column index.
//
// @example
// row, col := NearestCell(Vector2D{Y: 2.6, X: -3}, 4, 4) // 3, 0
func NearestCell(p Vector2D, height, width int) (row, col int) {
	row = ClampInt(int(math32.Round(p.Y)), 0, height-1)
	col = ClampInt(int(math32.Round(p.X)), 0, width-1)
	return row, col
}

// CellToImage maps a grid cell plus a sub-cell refinement (in input pixels)
// to network input pixel coordinates.
func CellToImage(row, col, stride int, offset Vector2D) Vector2D {
	return Vector2D{
		Y: float32(row*stride) + offset.Y,
		X: float32(col*stride) + offset.X,
	}
}

// ImageToGrid converts network input pixel coordinates to grid units.
func ImageToGrid(p Vector2D, stride int) Vector2D {
	s := float32(stride)
	return Vector2D{Y: p.Y / s, X: p.X / s}
}

// Fill sets every element of dst to v.
func Fill[T any](dst []T, v T) {
	for i := range dst {
		dst[i] = v
	}
}
