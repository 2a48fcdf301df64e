package posenet

import "github.com/nvr-ai/go-pose/images"

// walker grows a pose from a root part along the skeleton. Offsets and
// displacements are in network input pixels; positions are kept in grid
// units (input pixels divided by the output stride).
type walker struct {
	skeleton    *Skeleton
	adjacency   [][]halfEdge
	scores      *Grid
	offsets     *Grid
	fwd         *Grid
	bwd         *Grid
	stride      int
	refineSteps int

	// Scratch reused across walks of one decoding call.
	visited []bool
	queue   []Keypoint
}

func newWalker(s *Skeleton, adjacency [][]halfEdge, out Outputs, stride, refineSteps int) *walker {
	return &walker{
		skeleton:    s,
		adjacency:   adjacency,
		scores:      out.Scores,
		offsets:     out.Offsets,
		fwd:         out.DisplacementsFwd,
		bwd:         out.DisplacementsBwd,
		stride:      stride,
		refineSteps: refineSteps,
		visited:     make([]bool, s.NumKeypoints()),
		queue:       make([]Keypoint, 0, s.NumKeypoints()),
	}
}

// refinedPosition returns the sub-cell location of keypoint k at a cell.
func (w *walker) refinedPosition(row, col int, k Keypoint) images.Vector2D {
	_, _, depth := w.offsets.Shape()
	half := depth / 2
	offset := images.Vector2D{
		Y: w.offsets.At(row, col, int(k)),
		X: w.offsets.At(row, col, half+int(k)),
	}
	return images.ImageToGrid(images.CellToImage(row, col, w.stride, offset), w.stride)
}

// rootPart refines a candidate into the first part of a pose.
func (w *walker) rootPart(c Candidate) Part {
	return Part{
		Type:     c.Type,
		Name:     w.skeleton.Name(c.Type),
		Position: w.refinedPosition(c.Y, c.X, c.Type),
		Score:    c.Score,
	}
}

// walk fills parts, indexed by keypoint, starting from root and following
// each edge away from already located parts. It returns the number of edges
// traversed, K-1 for a spanning tree.
func (w *walker) walk(root Part, parts []Part) int {
	images.Fill(w.visited, false)
	w.queue = w.queue[:0]

	parts[root.Type] = root
	w.visited[root.Type] = true
	w.queue = append(w.queue, root.Type)

	traversed := 0
	for head := 0; head < len(w.queue); head++ {
		source := parts[w.queue[head]]
		for _, he := range w.adjacency[source.Type] {
			if w.visited[he.target] {
				continue
			}
			displacements := w.bwd
			if he.forward {
				displacements = w.fwd
			}
			parts[he.target] = w.traverse(he.edge, source, he.target, displacements)
			w.visited[he.target] = true
			w.queue = append(w.queue, he.target)
			traversed++
		}
	}
	return traversed
}

// traverse locates target from source using the displacement of the given
// edge at the source cell, then refines the estimate with the target's
// offsets. Cells outside the grid are clamped.
func (w *walker) traverse(edge int, source Part, target Keypoint, displacements *Grid) Part {
	height, width, _ := w.scores.Shape()
	_, _, depth := displacements.Shape()
	numEdges := depth / 2

	row, col := images.NearestCell(source.Position, height, width)
	displacement := images.ImageToGrid(images.Vector2D{
		Y: displacements.At(row, col, edge),
		X: displacements.At(row, col, numEdges+edge),
	}, w.stride)
	position := images.AddVectors(source.Position, displacement)

	for i := 0; i < w.refineSteps; i++ {
		row, col = images.NearestCell(position, height, width)
		position = w.refinedPosition(row, col, target)
	}

	row, col = images.NearestCell(position, height, width)
	return Part{
		Type:     target,
		Name:     w.skeleton.Name(target),
		Position: position,
		Score:    w.scores.At(row, col, int(target)),
	}
}
