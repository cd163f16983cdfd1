package denoise

import (
	"math"
	"testing"

	"github.com/rxgate/rxgate/pkg/dsp/gen"
)

func power(buf []float32) float64 {
	var sum float64
	for _, s := range buf {
		sum += float64(s) * float64(s)
	}
	return sum / float64(len(buf))
}

func TestTonePassesThrough(t *testing.T) {
	g := NewSpectralGate(0.05)

	// 1 kHz sits on bin 64 of a 512-point block at 8 kHz.
	in := make([]float32, 512)
	gen.NewTone(8000, 1000, 0.5).Fill(in)

	out := make([]float32, len(in))
	g.WorkBuffer(in, out)

	if rel := math.Abs(power(out)-power(in)) / power(in); rel > 0.05 {
		t.Errorf("tone power changed by %f, want < 0.05", rel)
	}
}

func TestNoiseIsAttenuated(t *testing.T) {
	g := NewSpectralGate(0.2)

	in := make([]float32, 512)
	gen.NewTone(8000, 1000, 0.5).Fill(in)
	gen.NewNoise(0.05, 7).MixBuffer(in)

	out := make([]float32, len(in))
	g.WorkBuffer(in, out)

	if power(out) >= power(in) {
		t.Errorf("expected output power %f below input power %f", power(out), power(in))
	}
}

func TestSilenceStaysSilent(t *testing.T) {
	g := NewSpectralGate(0)

	in := make([]float32, 64)
	out := make([]float32, 64)
	g.WorkBuffer(in, out)

	for i, s := range out {
		if s != 0 {
			t.Fatalf("expected silence, got %f at %d", s, i)
		}
	}
}
