// Package model - Model options.
package model

// Precision is the numeric format of the decoder input tensors.
type Precision string

const (
	// PrecisionFP32 is 32-bit floating point output.
	PrecisionFP32 Precision = "FP32"
	// PrecisionFP16 is 16-bit floating point output, common on NPU runtimes.
	PrecisionFP16 Precision = "FP16"
)
