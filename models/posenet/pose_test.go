package posenet

import (
	"encoding/json"
	"testing"

	"github.com/nvr-ai/go-pose/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoseAdjacentParts(t *testing.T) {
	s := forkSkeleton()
	pose := Pose{Parts: []Part{
		{Type: 0, Name: "a", Score: 0.9},
		{Type: 1, Name: "b", Score: 0.2},
		{Type: 2, Name: "c", Score: 0.7},
	}}

	pairs := pose.AdjacentParts(s, 0.5)
	require.Len(t, pairs, 1)
	assert.Equal(t, "a", pairs[0][0].Name)
	assert.Equal(t, "c", pairs[0][1].Name)

	assert.Len(t, pose.AdjacentParts(s, 0.1), 2)

	_, ok := pose.Part(5)
	assert.False(t, ok)
}

func TestPoseJSON(t *testing.T) {
	pose := Pose{
		Parts: []Part{{Type: Nose, Name: "nose", Position: images.Vector2D{Y: 1, X: 2}, Score: 0.5}},
		Score: 0.5,
	}
	raw, err := json.Marshal(pose)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	parts := decoded["keypoints"].([]any)
	require.Len(t, parts, 1)
	part := parts[0].(map[string]any)
	assert.Equal(t, "nose", part["part"])
	assert.NotContains(t, part, "Type")
}
