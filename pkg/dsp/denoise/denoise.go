// Package denoise implements a spectral noise gate. Each block is
// transformed, bins well below the strongest component are zeroed, and the
// block is transformed back.
package denoise

import (
	dspfft "github.com/mjibson/go-dsp/fft"
)

const DefaultThreshold = 0.05

// SpectralGate zeroes FFT bins whose magnitude falls below threshold times
// the peak bin magnitude.
type SpectralGate struct {
	threshold float64
	f64Buf    []float64
}

func NewSpectralGate(threshold float64) *SpectralGate {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &SpectralGate{threshold: threshold}
}

func (g *SpectralGate) WorkBuffer(input, output []float32) int {
	if len(g.f64Buf) != len(input) {
		g.f64Buf = make([]float64, len(input))
	}
	allZero := true
	for i := 0; i < len(input); i++ {
		g.f64Buf[i] = float64(input[i])
		if input[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		copy(output, input)
		return len(input)
	}

	result := dspfft.FFTReal(g.f64Buf)

	var peak float64
	mags := make([]float64, len(result))
	for i, c := range result {
		mags[i] = real(c)*real(c) + imag(c)*imag(c)
		if mags[i] > peak {
			peak = mags[i]
		}
	}

	cut := g.threshold * g.threshold * peak
	for i := range result {
		if mags[i] < cut {
			result[i] = 0
		}
	}

	inverse := dspfft.IFFT(result)
	for i := 0; i < len(input); i++ {
		output[i] = float32(real(inverse[i]))
	}

	return len(input)
}

func (g *SpectralGate) PredictOutputSize(inputSize int) int {
	return inputSize
}
