package posenet

import (
	"github.com/nvr-ai/go-pose/models/model"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

// Layout is the dimension order of a runtime output tensor.
type Layout int

const (
	// LayoutHWC is [batch?, rows, cols, channels], the TensorFlow export order.
	LayoutHWC Layout = iota
	// LayoutCHW is [batch?, channels, rows, cols], the usual ONNX export order.
	LayoutCHW
)

// OutputTensor is the read side of an onnxruntime output tensor.
// *ort.Tensor[float32] satisfies it.
type OutputTensor interface {
	GetData() []float32
	GetShape() ort.Shape
}

// GridFromOutput copies an onnxruntime output into a grid.
//
// Arguments:
//   - out: The runtime output tensor.
//   - layout: The dimension order of out.
//
// Returns:
//   - *Grid: A grid owning a copy of the data in [rows, cols, channels] order.
//   - error: ErrShapeMismatch if the shape cannot be interpreted.
//
// @example
// scores, err := GridFromOutput(outputs[0].(*ort.Tensor[float32]), LayoutCHW)
func GridFromOutput(out OutputTensor, layout Layout) (*Grid, error) {
	if out == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil output tensor")
	}
	src := out.GetData()
	data := make([]float32, len(src))
	copy(data, src)

	dims := out.GetShape()
	shape := make([]int, len(dims))
	for i, d := range dims {
		shape[i] = int(d)
	}
	return gridFromBacking(data, shape, layout)
}

// GridFromFloat16 decodes raw IEEE 754 half precision values into a grid.
func GridFromFloat16(raw []uint16, shape []int, layout Layout) (*Grid, error) {
	data := make([]float32, len(raw))
	for i, bits := range raw {
		data[i] = float16.Frombits(bits).Float32()
	}
	return gridFromBacking(data, shape, layout)
}

// gridFromBacking takes ownership of data, drops a unit batch dimension and
// moves channels last.
func gridFromBacking(data []float32, shape []int, layout Layout) (*Grid, error) {
	if len(shape) == 4 {
		if shape[0] != 1 {
			return nil, errors.Wrapf(ErrShapeMismatch, "batch size %d, want 1", shape[0])
		}
		shape = shape[1:]
	}
	if len(shape) != 3 {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v, want 3 or 4 dimensions", shape)
	}
	if err := checkDims(len(data), shape[0], shape[1], shape[2]); err != nil {
		return nil, err
	}

	t := tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data))
	if layout == LayoutCHW {
		if err := t.T(1, 2, 0); err != nil {
			return nil, errors.Wrap(err, "transpose to channels last")
		}
		if err := t.Transpose(); err != nil {
			return nil, errors.Wrap(err, "transpose to channels last")
		}
	}
	return NewGrid(t)
}

// OutputsFromTensors binds named runtime outputs to decoder inputs.
//
// Arguments:
//   - tensors: Runtime outputs keyed by graph output name.
//   - names: The graph output names of the model.
//   - layout: The dimension order shared by all outputs.
//
// Returns:
//   - Outputs: The decoder inputs.
//   - error: ErrShapeMismatch if an output is missing or malformed.
func OutputsFromTensors(tensors map[string]OutputTensor, names model.OutputNames, layout Layout) (Outputs, error) {
	var out Outputs
	bind := []struct {
		name string
		dst  **Grid
	}{
		{names.Heatmaps, &out.Scores},
		{names.Offsets, &out.Offsets},
		{names.DisplacementsFwd, &out.DisplacementsFwd},
		{names.DisplacementsBwd, &out.DisplacementsBwd},
	}

	for _, b := range bind {
		t, ok := tensors[b.name]
		if !ok {
			return Outputs{}, errors.Wrapf(ErrShapeMismatch, "output %q missing", b.name)
		}
		g, err := GridFromOutput(t, layout)
		if err != nil {
			return Outputs{}, errors.Wrapf(err, "output %q", b.name)
		}
		*b.dst = g
	}
	return out, nil
}
