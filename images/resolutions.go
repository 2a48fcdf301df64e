// Package images - Resolution and padding definitions used when mapping
// network coordinates back onto source frames.
package images

import "fmt"

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// IsZero reports whether the resolution is unset.
func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// String returns a human-readable summary of the resolution.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Padding describes letterbox borders added around a frame before it was
// resized to the network input resolution, in original frame pixels.
type Padding struct {
	Top    int `json:"top" yaml:"top"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Left   int `json:"left" yaml:"left"`
	Right  int `json:"right" yaml:"right"`
}

// ScaleFactors returns the per-axis factors mapping input pixels onto the
// padded original frame.
//
// Arguments:
//   - input: The network input resolution.
//   - original: The original frame resolution.
//   - pad: Letterbox padding applied to the original frame.
//
// Returns:
//   - sy: Vertical scale factor.
//   - sx: Horizontal scale factor.
//
// @example
// sy, sx := ScaleFactors(Resolution{Width: 257, Height: 257}, Resolution{Width: 514, Height: 257}, Padding{})
func ScaleFactors(input, original Resolution, pad Padding) (sy, sx float32) {
	sy = float32(original.Height+pad.Top+pad.Bottom) / float32(input.Height)
	sx = float32(original.Width+pad.Left+pad.Right) / float32(input.Width)
	return sy, sx
}
