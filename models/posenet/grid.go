package posenet

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Grid is a dense [rows, cols, channels] float32 array produced by the
// network for one frame. It is never modified after construction.
type Grid struct {
	data   []float32
	height int
	width  int
	depth  int
}

// NewGrid wraps a 3-D float32 tensor. A leading batch dimension of size one
// is accepted and dropped. Views are materialized first.
//
// Arguments:
//   - t: The tensor in [rows, cols, channels] order.
//
// Returns:
//   - *Grid: The grid sharing the tensor's backing data.
//   - error: ErrShapeMismatch for unsupported dtypes or shapes.
func NewGrid(t *tensor.Dense) (*Grid, error) {
	if t == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil tensor")
	}
	if t.Dtype() != tensor.Float32 {
		return nil, errors.Wrapf(ErrShapeMismatch, "dtype %v, want float32", t.Dtype())
	}

	if t.IsMaterializable() {
		m, ok := t.Materialize().(*tensor.Dense)
		if !ok {
			return nil, errors.Wrap(ErrShapeMismatch, "cannot materialize tensor view")
		}
		t = m
	}

	shape := []int(t.Shape())
	if len(shape) == 4 && shape[0] == 1 {
		shape = shape[1:]
	}
	if len(shape) != 3 {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v, want [rows cols channels]", t.Shape())
	}

	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Wrap(ErrShapeMismatch, "tensor has no float32 backing")
	}
	return newGrid(data, shape[0], shape[1], shape[2])
}

// NewGridFromSlice builds a grid over row-major [rows, cols, channels] data.
//
// @example
// scores, err := NewGridFromSlice(heatmap, 33, 33, 17)
func NewGridFromSlice(data []float32, height, width, depth int) (*Grid, error) {
	if err := checkDims(len(data), height, width, depth); err != nil {
		return nil, err
	}
	return NewGrid(tensor.New(tensor.WithShape(height, width, depth), tensor.WithBacking(data)))
}

func newGrid(data []float32, height, width, depth int) (*Grid, error) {
	if err := checkDims(len(data), height, width, depth); err != nil {
		return nil, err
	}
	return &Grid{data: data, height: height, width: width, depth: depth}, nil
}

func checkDims(n, height, width, depth int) error {
	if height <= 0 || width <= 0 || depth <= 0 {
		return errors.Wrapf(ErrShapeMismatch, "non-positive shape [%d %d %d]", height, width, depth)
	}
	if n != height*width*depth {
		return errors.Wrapf(ErrShapeMismatch, "%d values for shape [%d %d %d]", n, height, width, depth)
	}
	return nil
}

// Shape returns the grid dimensions.
func (g *Grid) Shape() (height, width, depth int) {
	return g.height, g.width, g.depth
}

// At returns the value at row y, column x and channel c. Indices must be in
// range.
func (g *Grid) At(y, x, c int) float32 {
	return g.data[(y*g.width+x)*g.depth+c]
}

// Outputs groups the network outputs decoded for one frame.
type Outputs struct {
	Scores           *Grid
	Offsets          *Grid
	DisplacementsFwd *Grid
	DisplacementsBwd *Grid
}

// validate checks every grid against the skeleton before decoding starts and
// rejects NaN or infinite values. Displacement grids are only required when
// the walk needs them.
func (o Outputs) validate(s *Skeleton, needDisplacements bool) error {
	if o.Scores == nil || o.Offsets == nil {
		return errors.Wrap(ErrShapeMismatch, "scores and offsets are required")
	}

	k := s.NumKeypoints()
	h, w, d := o.Scores.Shape()
	if d != k {
		return errors.Wrapf(ErrShapeMismatch, "scores have %d channels, skeleton has %d keypoints", d, k)
	}
	if err := expectShape("offsets", o.Offsets, h, w, 2*k); err != nil {
		return err
	}

	if err := o.Scores.checkFinite("scores"); err != nil {
		return err
	}
	if err := o.Offsets.checkFinite("offsets"); err != nil {
		return err
	}

	if !needDisplacements || s.NumEdges() == 0 {
		return nil
	}
	e := s.NumEdges()
	if err := expectShape("forward displacements", o.DisplacementsFwd, h, w, 2*e); err != nil {
		return err
	}
	if err := expectShape("backward displacements", o.DisplacementsBwd, h, w, 2*e); err != nil {
		return err
	}
	if err := o.DisplacementsFwd.checkFinite("forward displacements"); err != nil {
		return err
	}
	return o.DisplacementsBwd.checkFinite("backward displacements")
}

// checkFinite reports the first NaN or infinite value of the grid.
func (g *Grid) checkFinite(name string) error {
	for i, v := range g.data {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			cell, c := i/g.depth, i%g.depth
			return errors.Wrapf(ErrNonFiniteOutput, "%s value %v at [%d %d %d]",
				name, v, cell/g.width, cell%g.width, c)
		}
	}
	return nil
}

func expectShape(name string, g *Grid, height, width, depth int) error {
	if g == nil {
		return errors.Wrapf(ErrShapeMismatch, "%s missing", name)
	}
	h, w, d := g.Shape()
	if h != height || w != width || d != depth {
		return errors.Wrapf(ErrShapeMismatch, "%s shape [%d %d %d], want [%d %d %d]",
			name, h, w, d, height, width, depth)
	}
	return nil
}
