package posenet

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned for out of range decoder configuration.
	ErrInvalidConfig = errors.New("invalid decoder config")
	// ErrShapeMismatch is returned when the grids disagree with each other or
	// with the skeleton.
	ErrShapeMismatch = errors.New("grid shape mismatch")
	// ErrNonFiniteOutput is returned when a grid holds NaN or infinite values.
	ErrNonFiniteOutput = errors.New("non-finite network output")
	// ErrInvalidSkeleton is returned when a part graph is not a spanning tree.
	ErrInvalidSkeleton = errors.New("invalid skeleton")
)
