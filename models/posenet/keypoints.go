// Package posenet - Bottom-up multi-person pose decoding for PoseNet style
// networks.
//
// The network emits four grids per frame: keypoint heatmap scores, short
// range offsets and forward/backward mid-range displacements along the
// skeleton edges. The decoder turns them into labelled skeletons.
package posenet

import (
	"github.com/pkg/errors"
)

// Keypoint identifies a body part by its channel index in the score grid.
type Keypoint int

// Keypoints of the 17 part COCO skeleton, in network channel order.
const (
	Nose Keypoint = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
)

var cocoNames = []string{
	"nose", "leftEye", "rightEye", "leftEar", "rightEar",
	"leftShoulder", "rightShoulder", "leftElbow", "rightElbow",
	"leftWrist", "rightWrist", "leftHip", "rightHip",
	"leftKnee", "rightKnee", "leftAnkle", "rightAnkle",
}

// cocoChain is the PoseNet part graph rooted at the nose. Parents always
// appear before their children.
var cocoChain = []Edge{
	{Nose, LeftEye}, {LeftEye, LeftEar}, {Nose, RightEye}, {RightEye, RightEar},
	{Nose, LeftShoulder}, {LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{LeftShoulder, LeftHip}, {LeftHip, LeftKnee}, {LeftKnee, LeftAnkle},
	{Nose, RightShoulder}, {RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{RightShoulder, RightHip}, {RightHip, RightKnee}, {RightKnee, RightAnkle},
}

// String returns the COCO name of the keypoint.
func (k Keypoint) String() string {
	if k >= 0 && int(k) < len(cocoNames) {
		return cocoNames[k]
	}
	return "unknown"
}

// Edge is a directed parent to child link of the part graph. Its index in
// Skeleton.Edges selects the displacement channel.
type Edge struct {
	Parent Keypoint
	Child  Keypoint
}

// Skeleton is the fixed part graph a network was trained with.
type Skeleton struct {
	// Names holds the part name for each score channel.
	Names []string
	// Edges is a spanning tree over all parts.
	Edges []Edge
}

// COCOSkeleton returns the 17 part, 16 edge PoseNet skeleton.
func COCOSkeleton() *Skeleton {
	names := make([]string, len(cocoNames))
	copy(names, cocoNames)
	edges := make([]Edge, len(cocoChain))
	copy(edges, cocoChain)
	return &Skeleton{Names: names, Edges: edges}
}

// NumKeypoints returns the number of part types K.
func (s *Skeleton) NumKeypoints() int { return len(s.Names) }

// NumEdges returns the number of edges, K-1 for a valid skeleton.
func (s *Skeleton) NumEdges() int { return len(s.Edges) }

// Name returns the part name of k.
func (s *Skeleton) Name(k Keypoint) string {
	if k >= 0 && int(k) < len(s.Names) {
		return s.Names[k]
	}
	return "unknown"
}

// Lookup returns the keypoint with the given part name.
func (s *Skeleton) Lookup(name string) (Keypoint, bool) {
	for i, n := range s.Names {
		if n == name {
			return Keypoint(i), true
		}
	}
	return 0, false
}

// Validate checks that the edges form a spanning tree over all parts.
//
// Returns:
//   - error: ErrInvalidSkeleton describing the first violation.
func (s *Skeleton) Validate() error {
	k := len(s.Names)
	if k == 0 {
		return errors.Wrap(ErrInvalidSkeleton, "no keypoints")
	}
	if len(s.Edges) != k-1 {
		return errors.Wrapf(ErrInvalidSkeleton, "%d edges for %d keypoints, want %d", len(s.Edges), k, k-1)
	}

	seen := make(map[string]struct{}, k)
	for _, n := range s.Names {
		if _, dup := seen[n]; dup {
			return errors.Wrapf(ErrInvalidSkeleton, "duplicate keypoint name %q", n)
		}
		seen[n] = struct{}{}
	}

	// Union-find: K-1 edges without a cycle connect all K parts.
	parent := make([]int, k)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i, e := range s.Edges {
		if e.Parent < 0 || int(e.Parent) >= k || e.Child < 0 || int(e.Child) >= k {
			return errors.Wrapf(ErrInvalidSkeleton, "edge %d references unknown keypoint", i)
		}
		a, b := find(int(e.Parent)), find(int(e.Child))
		if a == b {
			return errors.Wrapf(ErrInvalidSkeleton, "edge %d (%s->%s) closes a cycle",
				i, s.Name(e.Parent), s.Name(e.Child))
		}
		parent[a] = b
	}
	return nil
}

// halfEdge is one traversal direction of an edge as seen from its source.
type halfEdge struct {
	edge    int
	target  Keypoint
	forward bool
}

// adjacency lists, per source keypoint, the edges leaving it in both
// directions. Forward links come first, each group in edge table order.
func (s *Skeleton) adjacency() [][]halfEdge {
	adj := make([][]halfEdge, len(s.Names))
	for i, e := range s.Edges {
		adj[e.Parent] = append(adj[e.Parent], halfEdge{edge: i, target: e.Child, forward: true})
	}
	for i, e := range s.Edges {
		adj[e.Child] = append(adj[e.Child], halfEdge{edge: i, target: e.Parent, forward: false})
	}
	return adj
}
