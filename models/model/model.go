// Package model - Descriptors for the pose estimation networks whose outputs
// are decoded by this module.
package model

import (
	"github.com/pkg/errors"
)

// Name is the unique identifier of a model.
type Name string

const (
	// ModelNamePoseNet is the PoseNet bottom-up multi-person pose model.
	ModelNamePoseNet Name = "posenet"
)

// Architecture is the backbone a PoseNet checkpoint was trained with.
type Architecture string

const (
	// ArchitectureMobileNetV1 is the lightweight MobileNetV1 backbone.
	ArchitectureMobileNetV1 Architecture = "MobileNetV1"
	// ArchitectureResNet50 is the ResNet50 backbone.
	ArchitectureResNet50 Architecture = "ResNet50"
)

// ErrUnsupportedModel is returned for unknown architectures or strides.
var ErrUnsupportedModel = errors.New("unsupported model")

// OutputNames are the graph output names holding each decoder input.
type OutputNames struct {
	Heatmaps         string `json:"heatmaps" yaml:"heatmaps"`
	Offsets          string `json:"offsets" yaml:"offsets"`
	DisplacementsFwd string `json:"displacements_fwd" yaml:"displacements_fwd"`
	DisplacementsBwd string `json:"displacements_bwd" yaml:"displacements_bwd"`
}

// Config describes a pose model checkpoint.
type Config struct {
	Name         Name         `json:"name" yaml:"name"`
	Architecture Architecture `json:"architecture" yaml:"architecture"`
	Path         string       `json:"path" yaml:"path"`
	OutputStride int          `json:"output_stride" yaml:"output_stride"`
	Precision    Precision    `json:"precision" yaml:"precision"`
	Outputs      OutputNames  `json:"outputs" yaml:"outputs"`
}

// DefaultOutputNames returns the output names of the published PoseNet
// checkpoints for the given architecture.
//
// Arguments:
//   - arch: The backbone architecture.
//
// Returns:
//   - OutputNames: The graph output names.
//   - error: ErrUnsupportedModel for unknown architectures.
func DefaultOutputNames(arch Architecture) (OutputNames, error) {
	switch arch {
	case ArchitectureMobileNetV1:
		return OutputNames{
			Heatmaps:         "MobilenetV1/heatmap_2/BiasAdd",
			Offsets:          "MobilenetV1/offset_2/BiasAdd",
			DisplacementsFwd: "MobilenetV1/displacement_fwd_2/BiasAdd",
			DisplacementsBwd: "MobilenetV1/displacement_bwd_2/BiasAdd",
		}, nil
	case ArchitectureResNet50:
		return OutputNames{
			Heatmaps:         "float_heatmaps",
			Offsets:          "float_short_offsets",
			DisplacementsFwd: "resnet_v1_50/displacement_fwd_2/BiasAdd",
			DisplacementsBwd: "resnet_v1_50/displacement_bwd_2/BiasAdd",
		}, nil
	default:
		return OutputNames{}, errors.Wrapf(ErrUnsupportedModel, "architecture %q", arch)
	}
}

// ValidOutputStrides returns the output strides a backbone is published with.
func ValidOutputStrides(arch Architecture) []int {
	switch arch {
	case ArchitectureMobileNetV1:
		return []int{8, 16, 32}
	case ArchitectureResNet50:
		return []int{16, 32}
	default:
		return nil
	}
}

// NewConfig returns a PoseNet config with the default output names filled in.
//
// Arguments:
//   - arch: The backbone architecture.
//   - outputStride: The network output stride.
//
// Returns:
//   - Config: The model config.
//   - error: ErrUnsupportedModel if the pair is not published.
//
// @example
// cfg, err := model.NewConfig(model.ArchitectureMobileNetV1, 16)
func NewConfig(arch Architecture, outputStride int) (Config, error) {
	names, err := DefaultOutputNames(arch)
	if err != nil {
		return Config{}, err
	}
	c := Config{
		Name:         ModelNamePoseNet,
		Architecture: arch,
		OutputStride: outputStride,
		Precision:    PrecisionFP32,
		Outputs:      names,
	}
	return c, c.Validate()
}

// Validate checks the architecture and stride combination.
func (c Config) Validate() error {
	strides := ValidOutputStrides(c.Architecture)
	if strides == nil {
		return errors.Wrapf(ErrUnsupportedModel, "architecture %q", c.Architecture)
	}
	for _, s := range strides {
		if s == c.OutputStride {
			return nil
		}
	}
	return errors.Wrapf(ErrUnsupportedModel, "output stride %d for %s, want one of %v",
		c.OutputStride, c.Architecture, strides)
}
