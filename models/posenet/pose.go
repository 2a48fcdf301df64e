package posenet

import "github.com/nvr-ai/go-pose/images"

// Part is one located body part of a pose.
type Part struct {
	Type     Keypoint        `json:"-"`
	Name     string          `json:"part"`
	Position images.Vector2D `json:"position"`
	Score    float32         `json:"score"`
}

// Pose is one decoded person. Parts is indexed by Keypoint.
type Pose struct {
	Parts []Part     `json:"keypoints"`
	Score float32    `json:"score"`
	Box   images.Box `json:"box"`
	// Root is the candidate the pose was grown from. Its cell is in grid
	// coordinates even after rescaling.
	Root Candidate `json:"root"`
}

// Part returns the part of type k.
func (p Pose) Part(k Keypoint) (Part, bool) {
	if k < 0 || int(k) >= len(p.Parts) {
		return Part{}, false
	}
	return p.Parts[k], true
}

// AdjacentParts returns the endpoints of every skeleton edge whose parts both
// score at least minConfidence, in edge table order.
//
// Arguments:
//   - s: The skeleton the pose was decoded with.
//   - minConfidence: Minimum score for both endpoints.
//
// Returns:
//   - [][2]Part: Parent and child of each confident edge.
func (p Pose) AdjacentParts(s *Skeleton, minConfidence float32) [][2]Part {
	var pairs [][2]Part
	for _, e := range s.Edges {
		parent, ok := p.Part(e.Parent)
		if !ok {
			continue
		}
		child, ok := p.Part(e.Child)
		if !ok {
			continue
		}
		if parent.Score >= minConfidence && child.Score >= minConfidence {
			pairs = append(pairs, [2]Part{parent, child})
		}
	}
	return pairs
}

// boundingBox returns the box enclosing every part position.
func boundingBox(parts []Part) images.Box {
	points := make([]images.Vector2D, len(parts))
	for i, part := range parts {
		points[i] = part.Position
	}
	return images.BoundingBox(points)
}
