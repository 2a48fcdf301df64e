package posenet

import (
	"os"

	"github.com/nvr-ai/go-pose/images"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ScoreMode selects how a pose's overall score is computed.
type ScoreMode string

const (
	// ScoreModeMean averages the scores of the scored parts.
	ScoreModeMean ScoreMode = "mean"
	// ScoreModeSoftNMS sums the scores of scored parts that are not within
	// the NMS radius of the same part of an accepted pose, divided by the
	// number of scored parts.
	ScoreModeSoftNMS ScoreMode = "soft-nms"
)

// Config controls candidate extraction, assembly and rescaling.
//
// Distances are in grid units, i.e. network input pixels divided by
// OutputStride.
type Config struct {
	// ScoreThreshold is the minimum heatmap score of a candidate, in (0, 1].
	ScoreThreshold float32 `json:"score_threshold" yaml:"score_threshold"`
	// LocalMaximumRadius is the half width of the window a candidate must
	// dominate in its own channel.
	LocalMaximumRadius int `json:"local_maximum_radius" yaml:"local_maximum_radius"`
	// NMSRadius is the minimum separation between two accepted parts of the
	// same type.
	NMSRadius float32 `json:"nms_radius" yaml:"nms_radius"`
	// MaxDetections caps the number of returned poses.
	MaxDetections int `json:"max_detections" yaml:"max_detections"`
	// OutputStride is the downsampling factor between input and grids.
	OutputStride int `json:"output_stride" yaml:"output_stride"`
	// OffsetRefineSteps is how often a displaced part is snapped to a cell
	// and refined with that cell's offset.
	OffsetRefineSteps int `json:"offset_refine_steps" yaml:"offset_refine_steps"`
	// OverlapRatio rejects a pose when more than this fraction of the parts
	// it shares with an accepted pose lie within NMSRadius. 1 disables it.
	OverlapRatio float32 `json:"overlap_ratio" yaml:"overlap_ratio"`
	// ScoreMode selects the pose scoring function.
	ScoreMode ScoreMode `json:"score_mode" yaml:"score_mode"`
	// ScoreKeypoints restricts pose scoring to these part names. Empty means
	// every part.
	ScoreKeypoints []string `json:"score_keypoints" yaml:"score_keypoints"`
	// OverlapKeypoints restricts the overlap check to these part names.
	// Empty means every part.
	OverlapKeypoints []string `json:"overlap_keypoints" yaml:"overlap_keypoints"`

	// InputResolution is the network input size. Required for flipping and
	// for mapping to OriginalResolution.
	InputResolution images.Resolution `json:"input_resolution" yaml:"input_resolution"`
	// OriginalResolution is the source frame size. Zero keeps poses in
	// network input pixels.
	OriginalResolution images.Resolution `json:"original_resolution" yaml:"original_resolution"`
	// Padding is the letterbox border added to the source frame.
	Padding images.Padding `json:"padding" yaml:"padding"`
	// FlipHorizontal mirrors poses, for mirrored camera input.
	FlipHorizontal bool `json:"flip_horizontal" yaml:"flip_horizontal"`
}

// DefaultConfig returns the PoseNet multi-person defaults for a stride 16
// network: a 20 pixel NMS radius expressed in grid units.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold:     0.5,
		LocalMaximumRadius: 1,
		NMSRadius:          20.0 / 16,
		MaxDetections:      10,
		OutputStride:       16,
		OffsetRefineSteps:  2,
		OverlapRatio:       0.5,
		ScoreMode:          ScoreModeMean,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
//
// Arguments:
//   - path: Path to the YAML file.
//
// Returns:
//   - Config: The merged configuration.
//   - error: A read, parse or validation error.
//
// @example
// cfg, err := posenet.LoadConfig("posenet.yaml")
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every numeric range. Keypoint names are checked against a
// skeleton by NewDecoder.
func (c Config) Validate() error {
	switch {
	case !(c.ScoreThreshold > 0 && c.ScoreThreshold <= 1):
		return errors.Wrapf(ErrInvalidConfig, "score threshold %v not in (0, 1]", c.ScoreThreshold)
	case c.LocalMaximumRadius <= 0:
		return errors.Wrapf(ErrInvalidConfig, "local maximum radius %d must be positive", c.LocalMaximumRadius)
	case !(c.NMSRadius > 0):
		return errors.Wrapf(ErrInvalidConfig, "nms radius %v must be positive", c.NMSRadius)
	case c.MaxDetections <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max detections %d must be positive", c.MaxDetections)
	case c.OutputStride <= 0:
		return errors.Wrapf(ErrInvalidConfig, "output stride %d must be positive", c.OutputStride)
	case c.OffsetRefineSteps <= 0:
		return errors.Wrapf(ErrInvalidConfig, "offset refine steps %d must be positive", c.OffsetRefineSteps)
	case !(c.OverlapRatio >= 0 && c.OverlapRatio <= 1):
		return errors.Wrapf(ErrInvalidConfig, "overlap ratio %v not in [0, 1]", c.OverlapRatio)
	case c.ScoreMode != ScoreModeMean && c.ScoreMode != ScoreModeSoftNMS:
		return errors.Wrapf(ErrInvalidConfig, "unknown score mode %q", c.ScoreMode)
	}

	if c.InputResolution.Width < 0 || c.InputResolution.Height < 0 ||
		c.OriginalResolution.Width < 0 || c.OriginalResolution.Height < 0 {
		return errors.Wrap(ErrInvalidConfig, "negative resolution")
	}
	if c.Padding.Top < 0 || c.Padding.Bottom < 0 || c.Padding.Left < 0 || c.Padding.Right < 0 {
		return errors.Wrap(ErrInvalidConfig, "negative padding")
	}
	return c.scaling().Validate()
}

// scaling returns the rescaling parameters carried by the config.
func (c Config) scaling() Scaling {
	return Scaling{
		OutputStride:   c.OutputStride,
		Input:          c.InputResolution,
		Original:       c.OriginalResolution,
		Padding:        c.Padding,
		FlipHorizontal: c.FlipHorizontal,
	}
}
