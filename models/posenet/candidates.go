package posenet

import (
	"github.com/nvr-ai/go-pose/models/postprocess"
	"github.com/pkg/errors"
)

// Candidate is a local heatmap maximum that may seed a pose.
type Candidate struct {
	Score float32  `json:"score"`
	Y     int      `json:"y"`
	X     int      `json:"x"`
	Type  Keypoint `json:"type"`
}

func candidateScore(c Candidate) float32 { return c.Score }

// buildCandidateQueue enqueues every cell whose score is above threshold and
// is a maximum of its keypoint channel within the square window of the given
// radius. The queue is sized to rows*cols*K so it can never overflow.
func buildCandidateQueue(scores *Grid, threshold float32, radius int) (*postprocess.MaxHeap[Candidate], error) {
	height, width, numKeypoints := scores.Shape()
	queue := postprocess.NewMaxHeap(height*width*numKeypoints, candidateScore)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for k := 0; k < numKeypoints; k++ {
				score := scores.At(y, x, k)
				if !(score > threshold) {
					continue
				}
				if !scoreIsMaximumInLocalWindow(scores, k, score, y, x, radius) {
					continue
				}
				c := Candidate{Score: score, Y: y, X: x, Type: Keypoint(k)}
				if err := queue.Enqueue(c); err != nil {
					return nil, errors.Wrap(err, "build candidate queue")
				}
			}
		}
	}
	return queue, nil
}

// scoreIsMaximumInLocalWindow reports whether no cell of channel k within the
// window scores strictly higher. Equal neighbours do not disqualify.
func scoreIsMaximumInLocalWindow(scores *Grid, k int, score float32, y, x, radius int) bool {
	height, width, _ := scores.Shape()

	yStart, yEnd := max(y-radius, 0), min(y+radius+1, height)
	xStart, xEnd := max(x-radius, 0), min(x+radius+1, width)
	for wy := yStart; wy < yEnd; wy++ {
		for wx := xStart; wx < xEnd; wx++ {
			if scores.At(wy, wx, k) > score {
				return false
			}
		}
	}
	return true
}
