package posenet

import (
	"testing"

	"github.com/nvr-ai/go-pose/images"
)

// BenchmarkDecodeMultiplePoses decodes a 33x33 COCO frame, the grid size of a
// 513 pixel input at stride 16.
func BenchmarkDecodeMultiplePoses(b *testing.B) {
	cfg := DefaultConfig()
	cfg.InputResolution = images.Resolution{Width: 513, Height: 513}
	cfg.OriginalResolution = images.Resolution{Width: 1280, Height: 720}
	d := newTestDecoder(b, cfg, COCOSkeleton())
	out := randomFrame(42, 33, 33).outputs(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := d.DecodeMultiplePoses(out); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecodeSinglePose measures the per-part argmax path on the same frame.
func BenchmarkDecodeSinglePose(b *testing.B) {
	d := newTestDecoder(b, DefaultConfig(), COCOSkeleton())
	out := randomFrame(42, 33, 33).outputs(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := d.DecodeSinglePose(out); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBuildCandidateQueue isolates local maximum extraction.
func BenchmarkBuildCandidateQueue(b *testing.B) {
	scores := randomFrame(42, 33, 33).outputs(b).Scores

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := buildCandidateQueue(scores, 0.5, 1); err != nil {
			b.Fatal(err)
		}
	}
}
