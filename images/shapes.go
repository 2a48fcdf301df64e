// Package images - Image processing utilities
package images

import "github.com/chewxy/math32"

// Box is an axis aligned bounding box in floating point coordinates.
type Box struct {
	MinY, MinX, MaxY, MaxX float32
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float32 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Box) Height() float32 { return b.MaxY - b.MinY }

// Area returns the area of the box, zero for degenerate boxes.
func (b Box) Area() float32 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// BoundingBox returns the smallest box containing every point.
//
// An empty input yields the zero Box.
//
// Arguments:
//   - points: The points to enclose.
//
// Returns:
//   - Box: The enclosing box.
//
// @example
// box := BoundingBox([]Vector2D{{Y: 1, X: 4}, {Y: 3, X: 2}}) // {1, 2, 3, 4}
func BoundingBox(points []Vector2D) Box {
	if len(points) == 0 {
		return Box{}
	}

	box := Box{
		MinY: math32.Inf(1),
		MinX: math32.Inf(1),
		MaxY: math32.Inf(-1),
		MaxX: math32.Inf(-1),
	}
	for _, p := range points {
		box.MinY = math32.Min(box.MinY, p.Y)
		box.MinX = math32.Min(box.MinX, p.X)
		box.MaxY = math32.Max(box.MaxY, p.Y)
		box.MaxX = math32.Max(box.MaxX, p.X)
	}
	return box
}
