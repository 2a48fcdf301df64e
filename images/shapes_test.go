package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBoundingBox validates the enclosing box over a set of points.
func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		points   []Vector2D
		expected Box
	}{
		{
			name:     "No points",
			points:   nil,
			expected: Box{},
		},
		{
			name:     "Single point",
			points:   []Vector2D{{Y: 2, X: 3}},
			expected: Box{MinY: 2, MinX: 3, MaxY: 2, MaxX: 3},
		},
		{
			name:     "Scattered points",
			points:   []Vector2D{{Y: 1, X: 4}, {Y: 3, X: 2}, {Y: -1, X: 0.5}},
			expected: Box{MinY: -1, MinX: 0.5, MaxY: 3, MaxX: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BoundingBox(tt.points))
		})
	}
}

func TestBoxArea(t *testing.T) {
	assert.Equal(t, float32(6), Box{MinY: 0, MinX: 0, MaxY: 2, MaxX: 3}.Area())
	assert.Equal(t, float32(0), Box{MinY: 1, MinX: 1, MaxY: 1, MaxX: 5}.Area(), "degenerate box has no area")
	assert.Equal(t, float32(0), Box{MinY: 3, MinX: 0, MaxY: 1, MaxX: 5}.Area(), "inverted box has no area")
}
