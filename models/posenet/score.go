package posenet

import (
	"github.com/nvr-ai/go-pose/images"
	"gonum.org/v1/gonum/stat"
)

// meanScore averages the scores of the given keypoints.
func meanScore(parts []Part, keypoints []Keypoint) float32 {
	if len(keypoints) == 0 {
		return 0
	}
	scores := make([]float64, len(keypoints))
	for i, k := range keypoints {
		scores[i] = float64(parts[k].Score)
	}
	return float32(stat.Mean(scores, nil))
}

// softNMSScore sums the scores of keypoints not already claimed by an
// accepted pose and divides by the number of keypoints considered.
func softNMSScore(accepted []Pose, squaredNMSRadius float32, parts []Part, keypoints []Keypoint) float32 {
	if len(keypoints) == 0 {
		return 0
	}
	var total float32
	for _, k := range keypoints {
		if !withinNMSRadius(accepted, squaredNMSRadius, parts[k].Position, k) {
			total += parts[k].Score
		}
	}
	return total / float32(len(keypoints))
}

// withinNMSRadius reports whether any accepted pose has a part of type k at
// squared distance at most squaredNMSRadius from p.
func withinNMSRadius(accepted []Pose, squaredNMSRadius float32, p images.Vector2D, k Keypoint) bool {
	for _, pose := range accepted {
		if images.SquaredDistance(p, pose.Parts[k].Position) <= squaredNMSRadius {
			return true
		}
	}
	return false
}

// overlapFraction returns the share of keypoints, present in both poses,
// whose positions are closer than the NMS radius.
func overlapFraction(a, b []Part, squaredNMSRadius float32, keypoints []Keypoint) float32 {
	common, overlapping := 0, 0
	for _, k := range keypoints {
		if int(k) >= len(a) || int(k) >= len(b) {
			continue
		}
		common++
		if images.SquaredDistance(a[k].Position, b[k].Position) < squaredNMSRadius {
			overlapping++
		}
	}
	if common == 0 {
		return 0
	}
	return float32(overlapping) / float32(common)
}
