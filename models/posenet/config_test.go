package posenet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/go-pose/images"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(1.25), cfg.NMSRadius)
	assert.Equal(t, 16, cfg.OutputStride)
	assert.Equal(t, ScoreModeMean, cfg.ScoreMode)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero threshold", func(c *Config) { c.ScoreThreshold = 0 }},
		{"Threshold above one", func(c *Config) { c.ScoreThreshold = 1.5 }},
		{"Zero local maximum radius", func(c *Config) { c.LocalMaximumRadius = 0 }},
		{"Negative nms radius", func(c *Config) { c.NMSRadius = -1 }},
		{"Zero max detections", func(c *Config) { c.MaxDetections = 0 }},
		{"Zero output stride", func(c *Config) { c.OutputStride = 0 }},
		{"Zero refine steps", func(c *Config) { c.OffsetRefineSteps = 0 }},
		{"Overlap ratio above one", func(c *Config) { c.OverlapRatio = 1.1 }},
		{"Unknown score mode", func(c *Config) { c.ScoreMode = "max" }},
		{"Negative padding", func(c *Config) { c.Padding.Left = -2 }},
		{"Flip without input", func(c *Config) { c.FlipHorizontal = true }},
		{"Original without input", func(c *Config) {
			c.OriginalResolution = images.Resolution{Width: 640, Height: 480}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

const sampleConfig = `
score_threshold: 0.3
nms_radius: 2
max_detections: 5
score_mode: soft-nms
score_keypoints: [nose, leftEye]
input_resolution: {width: 257, height: 257}
original_resolution: {width: 1280, height: 720}
padding: {top: 280}
flip_horizontal: true
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, float32(0.3), cfg.ScoreThreshold)
	assert.Equal(t, float32(2), cfg.NMSRadius)
	assert.Equal(t, 5, cfg.MaxDetections)
	assert.Equal(t, ScoreModeSoftNMS, cfg.ScoreMode)
	assert.Equal(t, []string{"nose", "leftEye"}, cfg.ScoreKeypoints)
	assert.Equal(t, images.Resolution{Width: 1280, Height: 720}, cfg.OriginalResolution)
	assert.Equal(t, 280, cfg.Padding.Top)
	assert.True(t, cfg.FlipHorizontal)

	// Unset keys keep their defaults.
	assert.Equal(t, 16, cfg.OutputStride)
	assert.Equal(t, 2, cfg.OffsetRefineSteps)

	_, err = ParseConfig([]byte("score_threshold: 2"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = ParseConfig([]byte("score_threshold: [1"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posenet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxDetections)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
