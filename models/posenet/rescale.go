package posenet

import (
	"github.com/nvr-ai/go-pose/images"
	"github.com/pkg/errors"
)

// Scaling maps grid unit positions onto source frame pixels.
type Scaling struct {
	OutputStride   int
	Input          images.Resolution
	Original       images.Resolution
	Padding        images.Padding
	FlipHorizontal bool
}

// Validate checks that every position can be mapped. Flipping and mapping to
// an original resolution need a positive input resolution.
func (s Scaling) Validate() error {
	if s.OutputStride <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "output stride %d must be positive", s.OutputStride)
	}
	needsInput := s.FlipHorizontal || !s.Original.IsZero()
	if needsInput && (s.Input.Width <= 0 || s.Input.Height <= 0) {
		return errors.Wrap(ErrInvalidConfig, "input resolution required for flipping or rescaling")
	}
	return nil
}

// apply maps one position. The flip happens in input pixels, before the
// affine scale to the original frame.
func (s Scaling) apply(p images.Vector2D) images.Vector2D {
	stride := float32(s.OutputStride)
	px := p.Scale(stride, stride)
	if s.FlipHorizontal {
		px.X = float32(s.Input.Width-1) - px.X
	}
	if s.Original.IsZero() {
		return px
	}

	sy, sx := images.ScaleFactors(s.Input, s.Original, s.Padding)
	scaled := px.Scale(sy, sx)
	return images.Vector2D{
		Y: scaled.Y - float32(s.Padding.Top),
		X: scaled.X - float32(s.Padding.Left),
	}
}

// ScaleAndFlipPoses returns copies of poses with every part mapped from grid
// units to frame pixels and the bounding boxes recomputed. The input poses
// are not modified.
//
// Arguments:
//   - poses: Decoded poses in grid units.
//   - s: The mapping to apply.
//
// Returns:
//   - []Pose: The rescaled poses.
//   - error: ErrInvalidConfig if s fails Validate.
//
// @example
//
//	frame, err := ScaleAndFlipPoses(poses, Scaling{
//	    OutputStride: 16,
//	    Input:        images.Resolution{Width: 257, Height: 257},
//	    Original:     images.Resolution{Width: 1280, Height: 720},
//	})
func ScaleAndFlipPoses(poses []Pose, s Scaling) ([]Pose, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([]Pose, len(poses))
	for i, pose := range poses {
		parts := make([]Part, len(pose.Parts))
		for j, part := range pose.Parts {
			part.Position = s.apply(part.Position)
			parts[j] = part
		}
		pose.Parts = parts
		pose.Box = boundingBox(parts)
		out[i] = pose
	}
	return out, nil
}
