package posenet

// DecodeSinglePose returns the single best pose of a frame: each part is the
// highest scoring cell of its channel, refined by its offset. Ties go to the
// first cell in row-major order. Displacement grids are not used.
//
// Arguments:
//   - out: The network outputs of one frame.
//
// Returns:
//   - Pose: The pose in frame pixels, scored by the mean of the scored parts.
//     Root is the strongest of the per-part maxima.
//   - error: ErrShapeMismatch if the grids do not match the skeleton,
//     ErrNonFiniteOutput if they hold NaN or infinite values.
func (d *Decoder) DecodeSinglePose(out Outputs) (Pose, error) {
	if err := out.validate(d.skeleton, false); err != nil {
		return Pose{}, err
	}

	w := newWalker(d.skeleton, d.adjacency, out, d.config.OutputStride, d.config.OffsetRefineSteps)
	height, width, numKeypoints := out.Scores.Shape()
	parts := make([]Part, numKeypoints)

	var root Candidate
	for k := 0; k < numKeypoints; k++ {
		best := Candidate{Score: out.Scores.At(0, 0, k), Type: Keypoint(k)}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if s := out.Scores.At(y, x, k); s > best.Score {
					best = Candidate{Score: s, Y: y, X: x, Type: Keypoint(k)}
				}
			}
		}
		parts[k] = w.rootPart(best)
		if k == 0 || best.Score > root.Score {
			root = best
		}
	}

	pose := Pose{
		Parts: parts,
		Score: meanScore(parts, d.scoreKeypoints),
		Box:   boundingBox(parts),
		Root:  root,
	}
	scaled, err := ScaleAndFlipPoses([]Pose{pose}, d.config.scaling())
	if err != nil {
		return Pose{}, err
	}
	return scaled[0], nil
}
