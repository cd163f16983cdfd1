package fir

import (
	"math"
	"testing"
)

// frequencyResponse evaluates |H(f)| of a real tap set at the given
// frequency.
func frequencyResponse(taps []float32, sampleRate, freq float64) float64 {
	var re, im float64
	for i, tap := range taps {
		phase := -2 * math.Pi * freq * float64(i) / sampleRate
		re += float64(tap) * math.Cos(phase)
		im += float64(tap) * math.Sin(phase)
	}
	return math.Hypot(re, im)
}

func TestMakeLowPass(t *testing.T) {
	taps := MakeLowPass(1.0, 8000, 300, 100, Hamming)

	if len(taps)%2 != 1 {
		t.Fatalf("expected odd tap count, got %d", len(taps))
	}
	if got := frequencyResponse(taps, 8000, 0); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("DC gain = %f, want 1.0", got)
	}
	if got := frequencyResponse(taps, 8000, 2000); got > 0.01 {
		t.Errorf("stopband gain at 2 kHz = %f, want < 0.01", got)
	}
}

func TestMakeHighPass(t *testing.T) {
	taps := MakeHighPass(1.0, 8000, 300, 100, Hamming)

	if got := frequencyResponse(taps, 8000, 4000); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("Nyquist gain = %f, want 1.0", got)
	}
	if got := frequencyResponse(taps, 8000, 0); got > 0.01 {
		t.Errorf("DC gain = %f, want < 0.01", got)
	}
}

func TestMakeBandPass(t *testing.T) {
	taps := MakeBandPass(1.0, 8000, 300, 3400, 100, Hamming)

	if got := frequencyResponse(taps, 8000, 1850); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("band center gain = %f, want 1.0", got)
	}
	if got := frequencyResponse(taps, 8000, 50); got > 0.02 {
		t.Errorf("low stopband gain = %f, want < 0.02", got)
	}
}
