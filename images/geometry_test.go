package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddVectors(t *testing.T) {
	got := AddVectors(Vector2D{Y: 1, X: 2}, Vector2D{Y: 0.5, X: -1})
	assert.Equal(t, Vector2D{Y: 1.5, X: 1}, got)
}

func TestSquaredDistance(t *testing.T) {
	assert.Equal(t, float32(25), SquaredDistance(Vector2D{Y: 0, X: 0}, Vector2D{Y: 3, X: 4}))
	assert.Equal(t, float32(0), SquaredDistance(Vector2D{Y: 7, X: 7}, Vector2D{Y: 7, X: 7}))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, ClampInt(-3, 0, 4))
	assert.Equal(t, 4, ClampInt(9, 0, 4))
	assert.Equal(t, 2, ClampInt(2, 0, 4))
}

// TestNearestCell validates rounding and clamping of grid positions.
func TestNearestCell(t *testing.T) {
	tests := []struct {
		name    string
		p       Vector2D
		wantRow int
		wantCol int
	}{
		{"Inside grid", Vector2D{Y: 1.2, X: 2.7}, 1, 3},
		{"Half rounds up", Vector2D{Y: 0.5, X: 1.5}, 1, 2},
		{"Negative clamps to zero", Vector2D{Y: -3, X: -0.2}, 0, 0},
		{"Beyond edge clamps to last cell", Vector2D{Y: 9, X: 40}, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := NearestCell(tt.p, 4, 5)
			assert.Equal(t, tt.wantRow, row)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestCellImageMapping(t *testing.T) {
	p := CellToImage(2, 3, 16, Vector2D{Y: 4, X: -8})
	assert.Equal(t, Vector2D{Y: 36, X: 40}, p)
	assert.Equal(t, Vector2D{Y: 2.25, X: 2.5}, ImageToGrid(p, 16))
}

func TestFill(t *testing.T) {
	dst := make([]int, 4)
	Fill(dst, 7)
	assert.Equal(t, []int{7, 7, 7, 7}, dst)
}

func TestScaleFactors(t *testing.T) {
	sy, sx := ScaleFactors(
		Resolution{Width: 200, Height: 100},
		Resolution{Width: 400, Height: 80},
		Padding{Top: 10, Bottom: 10},
	)
	assert.Equal(t, float32(1), sy)
	assert.Equal(t, float32(2), sx)
}
