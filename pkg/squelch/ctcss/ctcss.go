// Package ctcss implements a sub-audible tone squelch detector. It opens
// the squelch only when the configured CTCSS tone carries most of the power
// in the sub-audio band.
package ctcss

import (
	"math"

	segdsp "github.com/racerxdl/segdsp/dsp"
	"github.com/rxgate/rxgate/pkg/dsp/fir"
	"github.com/rxgate/rxgate/pkg/squelch"
)

const (
	// CTCSS tones live between 67 and 254.1 Hz.
	bandCutoff          = 300.0
	bandTransitionWidth = 100.0

	// DefaultThreshold is the tone-to-band power ratio required to open.
	// 1.0 means the whole band is the tone; voice leakage below 300 Hz
	// typically keeps the ratio under 0.3 when no tone is present.
	DefaultThreshold = 0.5
)

// Detector runs demodulated audio through a low-pass filter isolating the
// sub-audio band and evaluates a Goertzel accumulator at the tone frequency
// over fixed windows of a quarter second.
type Detector struct {
	sampleRate int
	toneFreq   float64
	threshold  float64
	windowSize int
	coeff      float64

	taps    []float32
	filter  *segdsp.FloatFirFilter
	filtBuf []float32
	window  []float32
}

func New(sampleRate int, toneFreq, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	taps := fir.MakeLowPass(1.0, float64(sampleRate), bandCutoff, bandTransitionWidth, fir.Hamming)
	return &Detector{
		sampleRate: sampleRate,
		toneFreq:   toneFreq,
		threshold:  threshold,
		windowSize: sampleRate / 4,
		coeff:      2 * math.Cos(2*math.Pi*toneFreq/float64(sampleRate)),
		taps:       taps,
		filter:     segdsp.MakeFloatFirFilter(taps),
	}
}

func (d *Detector) ToneFreq() float64 {
	return d.toneFreq
}

func (d *Detector) ProcessSamples(samples []float32, state squelch.StateSetter) int {
	if want := d.filter.PredictOutputSize(len(samples)); len(d.filtBuf) < want {
		d.filtBuf = make([]float32, want)
	}
	n := d.filter.WorkBuffer(samples, d.filtBuf)
	d.window = append(d.window, d.filtBuf[:n]...)

	for len(d.window) >= d.windowSize {
		state.SetOpen(d.evaluate(d.window[:d.windowSize]))
		d.window = d.window[d.windowSize:]
	}

	return len(samples)
}

// evaluate reports whether the tone dominates one detection window.
func (d *Detector) evaluate(window []float32) bool {
	var s1, s2, total float64
	for _, x := range window {
		cur := float64(x)
		s0 := cur + d.coeff*s1 - s2
		s2 = s1
		s1 = s0
		total += cur * cur
	}
	if total < 1e-12 {
		return false
	}

	power := s1*s1 + s2*s2 - d.coeff*s1*s2

	// A pure tone at toneFreq yields a ratio of 1.
	ratio := 2 * power / (float64(len(window)) * total)
	return ratio >= d.threshold
}

func (d *Detector) Reset() {
	d.window = d.window[:0]
	d.filter = segdsp.MakeFloatFirFilter(d.taps)
}
