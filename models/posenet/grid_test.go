package posenet

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestGridIndexing(t *testing.T) {
	data := make([]float32, 2*3*4)
	for i := range data {
		data[i] = float32(i)
	}
	g, err := NewGridFromSlice(data, 2, 3, 4)
	require.NoError(t, err)

	h, w, d := g.Shape()
	assert.Equal(t, []int{2, 3, 4}, []int{h, w, d})
	assert.Equal(t, float32(0), g.At(0, 0, 0))
	assert.Equal(t, float32(7), g.At(0, 1, 3))
	assert.Equal(t, float32(23), g.At(1, 2, 3))
}

func TestNewGridFromSliceErrors(t *testing.T) {
	_, err := NewGridFromSlice(make([]float32, 5), 2, 2, 1)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = NewGridFromSlice(nil, 0, 2, 1)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestNewGridFromTensor(t *testing.T) {
	batched := tensor.New(tensor.WithShape(1, 2, 2, 1), tensor.WithBacking([]float32{1, 2, 3, 4}))
	g, err := NewGrid(batched)
	require.NoError(t, err)

	h, w, d := g.Shape()
	assert.Equal(t, []int{2, 2, 1}, []int{h, w, d})
	assert.Equal(t, float32(3), g.At(1, 0, 0))

	wrongType := tensor.New(tensor.WithShape(1, 1, 1), tensor.WithBacking([]float64{1}))
	_, err = NewGrid(wrongType)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	twoD := tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]float32{1, 2, 3, 4}))
	_, err = NewGrid(twoD)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = NewGrid(nil)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}
