package posenet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// frame builds zeroed network outputs for a skeleton and lets tests place
// scores, offsets and displacements cell by cell.
type frame struct {
	skeleton      *Skeleton
	height, width int
	scores        []float32
	offsets       []float32
	fwd           []float32
	bwd           []float32
}

func newFrame(s *Skeleton, height, width int) *frame {
	k, e := s.NumKeypoints(), s.NumEdges()
	return &frame{
		skeleton: s,
		height:   height,
		width:    width,
		scores:   make([]float32, height*width*k),
		offsets:  make([]float32, height*width*2*k),
		fwd:      make([]float32, height*width*2*e),
		bwd:      make([]float32, height*width*2*e),
	}
}

func (f *frame) setScore(y, x int, k Keypoint, v float32) {
	f.scores[(y*f.width+x)*f.skeleton.NumKeypoints()+int(k)] = v
}

func (f *frame) setOffset(y, x int, k Keypoint, dy, dx float32) {
	n := f.skeleton.NumKeypoints()
	base := (y*f.width + x) * 2 * n
	f.offsets[base+int(k)] = dy
	f.offsets[base+n+int(k)] = dx
}

func (f *frame) setDisplacement(forward bool, y, x, edge int, dy, dx float32) {
	e := f.skeleton.NumEdges()
	buf := f.bwd
	if forward {
		buf = f.fwd
	}
	base := (y*f.width + x) * 2 * e
	buf[base+edge] = dy
	buf[base+e+edge] = dx
}

func (f *frame) outputs(t testing.TB) Outputs {
	t.Helper()
	k, e := f.skeleton.NumKeypoints(), f.skeleton.NumEdges()

	scores, err := NewGridFromSlice(f.scores, f.height, f.width, k)
	require.NoError(t, err)
	offsets, err := NewGridFromSlice(f.offsets, f.height, f.width, 2*k)
	require.NoError(t, err)
	out := Outputs{Scores: scores, Offsets: offsets}
	if e == 0 {
		return out
	}

	out.DisplacementsFwd, err = NewGridFromSlice(f.fwd, f.height, f.width, 2*e)
	require.NoError(t, err)
	out.DisplacementsBwd, err = NewGridFromSlice(f.bwd, f.height, f.width, 2*e)
	require.NoError(t, err)
	return out
}

// singlePartSkeleton has one keypoint and no edges.
func singlePartSkeleton() *Skeleton {
	return &Skeleton{Names: []string{"nose"}}
}

// pairSkeleton is a two part graph a -> b.
func pairSkeleton() *Skeleton {
	return &Skeleton{Names: []string{"a", "b"}, Edges: []Edge{{0, 1}}}
}

// forkSkeleton is a three part graph a -> b, a -> c.
func forkSkeleton() *Skeleton {
	return &Skeleton{Names: []string{"a", "b", "c"}, Edges: []Edge{{0, 1}, {0, 2}}}
}

// unitConfig decodes in stride one so grid units equal input pixels.
func unitConfig() Config {
	cfg := DefaultConfig()
	cfg.OutputStride = 1
	return cfg
}

func newTestDecoder(t testing.TB, cfg Config, s *Skeleton, opts ...Option) *Decoder {
	t.Helper()
	d, err := NewDecoder(cfg, append([]Option{WithSkeleton(s)}, opts...)...)
	require.NoError(t, err)
	return d
}
