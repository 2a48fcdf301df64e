// Package util - Loading of recorded network outputs.
package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TensorDump is one recorded output tensor. FP32 values are stored in Data,
// FP16 values as raw IEEE 754 half precision bits in Raw.
type TensorDump struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data,omitempty"`
	Raw   []uint16  `json:"raw,omitempty"`
}

// FrameDump holds the network outputs recorded for one frame.
type FrameDump struct {
	// Precision is "FP32" or "FP16".
	Precision string `json:"precision"`
	// Layout is "HWC" or "CHW".
	Layout string `json:"layout"`
	// Outputs are keyed by graph output name.
	Outputs map[string]TensorDump `json:"outputs"`
}

// FrameFile represents a recorded frame file.
type FrameFile struct {
	// Path is the path to the frame file.
	Path string
	// Frame is the frame number parsed from the file name.
	Frame int
	// Dump is the decoded file content.
	Dump FrameDump
}

// LoadDirectoryFrames reads every frame-N.json file from a directory.
//
// Arguments:
// - dir: Directory path containing frame files.
//
// Returns:
// - []FrameFile: The frames, ordered by frame number.
// - error: Error if a file cannot be read or parsed.
func LoadDirectoryFrames(dir string) ([]FrameFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read frame directory")
	}

	var frames []FrameFile
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" || !strings.HasPrefix(file.Name(), "frame-") {
			continue
		}

		path := filepath.Join(dir, file.Name())
		frame, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(file.Name(), "frame-"), ".json"))
		if err != nil {
			return nil, errors.Wrapf(err, "frame number of %s", file.Name())
		}
		dump, err := LoadFrame(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, FrameFile{
			Path:  path,
			Frame: frame,
			Dump:  dump,
		})
	}

	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Frame < frames[j].Frame
	})

	return frames, nil
}

// LoadFrame reads a single frame file.
func LoadFrame(path string) (FrameDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FrameDump{}, errors.Wrap(err, "read frame")
	}
	var dump FrameDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return FrameDump{}, errors.Wrapf(err, "parse %s", path)
	}
	return dump, nil
}
