package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/nvr-ai/go-pose/models/model"
	"github.com/nvr-ai/go-pose/models/posenet"
	"github.com/nvr-ai/go-pose/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
)

// frameResult is written to stdout as one JSON line per frame.
type frameResult struct {
	Frame int            `json:"frame"`
	Poses []posenet.Pose `json:"poses"`
}

func main() {
	var (
		configFile = flag.String("config", "", "Path to decoder configuration file (YAML)")
		framesDir  = flag.String("frames", "", "Directory of frame-N.json output dumps")
		arch       = flag.String("arch", string(model.ArchitectureMobileNetV1), "Backbone architecture (MobileNetV1, ResNet50)")
		single     = flag.Bool("single", false, "Decode a single pose per frame")
		verbose    = flag.Bool("verbose", false, "Log every pose candidate")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *framesDir == "" {
		logger.Fatal("Frames directory is required (-frames)")
	}

	cfg := posenet.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = posenet.LoadConfig(*configFile)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load config")
		}
	}

	modelConfig, err := model.NewConfig(model.Architecture(*arch), cfg.OutputStride)
	if err != nil {
		logger.WithError(err).Fatal("Unsupported model")
	}

	decoder, err := posenet.NewDecoder(cfg, posenet.WithLogger(logger), posenet.WithDebug(*verbose))
	if err != nil {
		logger.WithError(err).Fatal("Failed to create decoder")
	}

	frames, err := util.LoadDirectoryFrames(*framesDir)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load frames")
	}
	logger.WithFields(logrus.Fields{
		"frames":       len(frames),
		"architecture": modelConfig.Architecture,
		"stride":       modelConfig.OutputStride,
	}).Info("decoding")

	written := decodeFrames(decoder, frames, modelConfig.Outputs, *single, json.NewEncoder(os.Stdout), logger)
	logger.WithFields(logrus.Fields{
		"frames":  len(frames),
		"written": written,
	}).Info("done")
}

// decodeFrames writes one result per decodable frame and returns how many
// were written. Frames that fail to bind, decode or encode are logged and
// skipped.
func decodeFrames(
	decoder *posenet.Decoder,
	frames []util.FrameFile,
	names model.OutputNames,
	single bool,
	enc *json.Encoder,
	logger logrus.FieldLogger,
) int {
	written := 0
	for _, frame := range frames {
		log := logger.WithField("frame", frame.Frame)

		poses, err := decodeFrame(decoder, frame.Dump, names, single)
		if err != nil {
			log.WithError(err).Error("Skipping frame")
			continue
		}
		if err := enc.Encode(frameResult{Frame: frame.Frame, Poses: poses}); err != nil {
			log.WithError(err).Error("Failed to write result")
			continue
		}
		written++
	}
	return written
}

// decodeFrame binds a recorded frame and decodes it.
func decodeFrame(decoder *posenet.Decoder, dump util.FrameDump, names model.OutputNames, single bool) ([]posenet.Pose, error) {
	out, err := outputsFromDump(dump, names)
	if err != nil {
		return nil, err
	}
	if !single {
		return decoder.DecodeMultiplePoses(out)
	}
	pose, err := decoder.DecodeSinglePose(out)
	if err != nil {
		return nil, err
	}
	return []posenet.Pose{pose}, nil
}

// dumpTensor presents a recorded FP32 tensor like a runtime output.
type dumpTensor struct {
	data  []float32
	shape ort.Shape
}

func (d dumpTensor) GetData() []float32  { return d.data }
func (d dumpTensor) GetShape() ort.Shape { return d.shape }

func parseLayout(s string) (posenet.Layout, error) {
	switch strings.ToUpper(s) {
	case "", "HWC", "NHWC":
		return posenet.LayoutHWC, nil
	case "CHW", "NCHW":
		return posenet.LayoutCHW, nil
	default:
		return 0, errors.Errorf("unknown layout %q", s)
	}
}

// outputsFromDump binds the tensors of a recorded frame to decoder inputs.
func outputsFromDump(dump util.FrameDump, names model.OutputNames) (posenet.Outputs, error) {
	layout, err := parseLayout(dump.Layout)
	if err != nil {
		return posenet.Outputs{}, err
	}

	switch model.Precision(strings.ToUpper(dump.Precision)) {
	case "", model.PrecisionFP32:
		tensors := make(map[string]posenet.OutputTensor, len(dump.Outputs))
		for name, t := range dump.Outputs {
			tensors[name] = dumpTensor{data: t.Data, shape: toShape(t.Shape)}
		}
		return posenet.OutputsFromTensors(tensors, names, layout)

	case model.PrecisionFP16:
		var out posenet.Outputs
		bind := []struct {
			name string
			dst  **posenet.Grid
		}{
			{names.Heatmaps, &out.Scores},
			{names.Offsets, &out.Offsets},
			{names.DisplacementsFwd, &out.DisplacementsFwd},
			{names.DisplacementsBwd, &out.DisplacementsBwd},
		}
		for _, b := range bind {
			t, ok := dump.Outputs[b.name]
			if !ok {
				return posenet.Outputs{}, errors.Errorf("output %q missing", b.name)
			}
			g, err := posenet.GridFromFloat16(t.Raw, t.Shape, layout)
			if err != nil {
				return posenet.Outputs{}, errors.Wrapf(err, "output %q", b.name)
			}
			*b.dst = g
		}
		return out, nil

	default:
		return posenet.Outputs{}, errors.Errorf("unknown precision %q", dump.Precision)
	}
}

func toShape(dims []int) ort.Shape {
	shape := make(ort.Shape, len(dims))
	for i, d := range dims {
		shape[i] = int64(d)
	}
	return shape
}
