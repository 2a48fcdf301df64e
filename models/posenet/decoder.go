package posenet

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Decoder turns network outputs into poses. It holds only immutable
// configuration and is safe for concurrent use; every decode call allocates
// its own queue and scratch space.
type Decoder struct {
	config    Config
	skeleton  *Skeleton
	adjacency [][]halfEdge

	scoreKeypoints   []Keypoint
	overlapKeypoints []Keypoint

	logger    logrus.FieldLogger
	debugMode bool
}

// Option customizes a Decoder.
type Option func(*Decoder)

// WithSkeleton decodes with a part graph other than COCOSkeleton.
func WithSkeleton(s *Skeleton) Option {
	return func(d *Decoder) { d.skeleton = s }
}

// WithLogger sets the logger used for debug output.
// A nil logger keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDebug logs the outcome of every candidate at debug level.
func WithDebug(enabled bool) Option {
	return func(d *Decoder) { d.debugMode = enabled }
}

// NewDecoder validates config against the skeleton and returns a decoder.
//
// Arguments:
//   - config: Decoder configuration.
//   - opts: Optional skeleton, logger and debug settings.
//
// Returns:
//   - *Decoder: The decoder.
//   - error: ErrInvalidConfig or ErrInvalidSkeleton.
//
// @example
//
//	decoder, err := posenet.NewDecoder(posenet.DefaultConfig(), posenet.WithDebug(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	poses, err := decoder.DecodeMultiplePoses(outputs)
func NewDecoder(config Config, opts ...Option) (*Decoder, error) {
	d := &Decoder{
		config:   config,
		skeleton: COCOSkeleton(),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	if d.skeleton == nil {
		return nil, errors.Wrap(ErrInvalidSkeleton, "nil skeleton")
	}
	if err := d.skeleton.Validate(); err != nil {
		return nil, err
	}

	var err error
	if d.scoreKeypoints, err = d.resolveKeypoints(config.ScoreKeypoints); err != nil {
		return nil, errors.Wrap(err, "score keypoints")
	}
	if d.overlapKeypoints, err = d.resolveKeypoints(config.OverlapKeypoints); err != nil {
		return nil, errors.Wrap(err, "overlap keypoints")
	}
	d.adjacency = d.skeleton.adjacency()
	return d, nil
}

// Config returns the decoder configuration.
func (d *Decoder) Config() Config { return d.config }

// Skeleton returns the part graph the decoder walks.
func (d *Decoder) Skeleton() *Skeleton { return d.skeleton }

// resolveKeypoints maps part names to keypoints; no names means all parts.
func (d *Decoder) resolveKeypoints(names []string) ([]Keypoint, error) {
	if len(names) == 0 {
		all := make([]Keypoint, d.skeleton.NumKeypoints())
		for i := range all {
			all[i] = Keypoint(i)
		}
		return all, nil
	}

	out := make([]Keypoint, 0, len(names))
	for _, name := range names {
		k, ok := d.skeleton.Lookup(name)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidConfig, "unknown keypoint %q", name)
		}
		out = append(out, k)
	}
	return out, nil
}

// outcome is the result of processing one popped candidate.
type outcome int

const (
	// outcomeSuppressed: the root lies within the NMS radius of an accepted
	// part of the same type.
	outcomeSuppressed outcome = iota
	// outcomeAccepted: the pose was appended to the result.
	outcomeAccepted
	// outcomeDuplicate: the walked pose overlaps an accepted pose.
	outcomeDuplicate
)

func (o outcome) String() string {
	switch o {
	case outcomeSuppressed:
		return "suppressed"
	case outcomeAccepted:
		return "accepted"
	case outcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// assembly is the state of one multi-pose decoding call.
type assembly struct {
	decoder          *Decoder
	walker           *walker
	squaredNMSRadius float32
	accepted         []Pose
	arena            []Part
}

// step grows and judges the pose rooted at c.
func (a *assembly) step(c Candidate) (Pose, outcome) {
	root := a.walker.rootPart(c)
	if withinNMSRadius(a.accepted, a.squaredNMSRadius, root.Position, c.Type) {
		return Pose{}, outcomeSuppressed
	}

	for i := range a.arena {
		a.arena[i] = Part{}
	}
	a.walker.walk(root, a.arena)

	// The arena is reused; the pose gets its own parts.
	parts := make([]Part, len(a.arena))
	copy(parts, a.arena)
	pose := Pose{
		Parts: parts,
		Score: a.decoder.poseScore(a.accepted, a.squaredNMSRadius, parts),
		Box:   boundingBox(parts),
		Root:  c,
	}

	for _, existing := range a.accepted {
		fraction := overlapFraction(parts, existing.Parts, a.squaredNMSRadius, a.decoder.overlapKeypoints)
		if fraction > a.decoder.config.OverlapRatio {
			return pose, outcomeDuplicate
		}
	}
	return pose, outcomeAccepted
}

// DecodeMultiplePoses extracts up to MaxDetections poses from one frame.
//
// Candidates are processed in descending score order. Poses are returned in
// acceptance order with coordinates mapped to frame pixels; an empty slice
// means nobody was found.
//
// Arguments:
//   - out: The network outputs of one frame.
//
// Returns:
//   - []Pose: The accepted poses.
//   - error: ErrShapeMismatch if the grids do not match the skeleton,
//     ErrNonFiniteOutput if they hold NaN or infinite values.
func (d *Decoder) DecodeMultiplePoses(out Outputs) ([]Pose, error) {
	if err := out.validate(d.skeleton, true); err != nil {
		return nil, err
	}

	queue, err := buildCandidateQueue(out.Scores, d.config.ScoreThreshold, d.config.LocalMaximumRadius)
	if err != nil {
		return nil, err
	}
	candidates := queue.Size()

	a := &assembly{
		decoder:          d,
		walker:           newWalker(d.skeleton, d.adjacency, out, d.config.OutputStride, d.config.OffsetRefineSteps),
		squaredNMSRadius: d.config.NMSRadius * d.config.NMSRadius,
		accepted:         make([]Pose, 0, d.config.MaxDetections),
		arena:            make([]Part, d.skeleton.NumKeypoints()),
	}

	for len(a.accepted) < d.config.MaxDetections {
		c, ok := queue.DequeueMax()
		if !ok {
			break
		}

		pose, result := a.step(c)
		if d.debugMode {
			d.logger.WithFields(logrus.Fields{
				"keypoint": d.skeleton.Name(c.Type),
				"y":        c.Y,
				"x":        c.X,
				"score":    c.Score,
				"outcome":  result.String(),
			}).Debug("pose candidate")
		}
		if result == outcomeAccepted {
			a.accepted = append(a.accepted, pose)
		}
	}

	if d.debugMode {
		d.logger.WithFields(logrus.Fields{
			"candidates": candidates,
			"remaining":  queue.Size(),
			"poses":      len(a.accepted),
		}).Debug("decoded frame")
	}
	return ScaleAndFlipPoses(a.accepted, d.config.scaling())
}

// poseScore scores a walked pose with the configured mode.
func (d *Decoder) poseScore(accepted []Pose, squaredNMSRadius float32, parts []Part) float32 {
	if d.config.ScoreMode == ScoreModeSoftNMS {
		return softNMSScore(accepted, squaredNMSRadius, parts, d.scoreKeypoints)
	}
	return meanScore(parts, d.scoreKeypoints)
}
