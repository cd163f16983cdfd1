// Package fir designs real FIR filter taps (windowed sinc) for the audio
// filtering stages ahead of the squelch detectors.
package fir

import "math"

func computeNTaps(sampleRate, transitionWidth float64, winType WindowType) int {
	maxAttenuation := windowMaxAttenuation[winType]
	ntaps := int(float64(maxAttenuation) * sampleRate / (22.0 * transitionWidth))
	ntaps |= 1 // make odd

	return ntaps
}

func MakeLowPass(gain, sampleRate, cutFrequency, transitionWidth float64, winType WindowType) []float32 {
	nTaps := computeNTaps(sampleRate, transitionWidth, winType)
	taps := make([]float32, nTaps)
	w := windowFuncs[winType](nTaps)

	M := (nTaps - 1) / 2
	fwT0 := 2 * math.Pi * cutFrequency / sampleRate

	for i := -M; i <= M; i++ {
		if i == 0 {
			taps[i+M] = float32(fwT0 / math.Pi * float64(w[i+M]))
		} else {
			fi := float64(i)
			taps[i+M] = float32(math.Sin(fi*fwT0) / (fi * math.Pi) * float64(w[i+M]))
		}
	}

	// Normalize for unity gain at DC.
	fmax := float64(taps[M])
	for i := 1; i <= M; i++ {
		fmax += 2 * float64(taps[i+M])
	}
	gain /= fmax

	for i := 0; i < nTaps; i++ {
		taps[i] = float32(float64(taps[i]) * gain)
	}

	return taps
}

func MakeHighPass(gain, sampleRate, cutFrequency, transitionWidth float64, winType WindowType) []float32 {
	nTaps := computeNTaps(sampleRate, transitionWidth, winType)
	taps := make([]float32, nTaps)
	w := windowFuncs[winType](nTaps)

	M := (nTaps - 1) / 2
	fwT0 := 2 * math.Pi * cutFrequency / sampleRate

	for i := -M; i <= M; i++ {
		if i == 0 {
			taps[i+M] = float32((1 - fwT0/math.Pi) * float64(w[i+M]))
		} else {
			fi := float64(i)
			taps[i+M] = float32(-math.Sin(fi*fwT0) / (fi * math.Pi) * float64(w[i+M]))
		}
	}

	// Normalize for unity gain at the Nyquist frequency.
	fmax := float64(taps[M])
	for i := 1; i <= M; i++ {
		fmax += 2 * float64(taps[i+M]) * math.Cos(float64(i)*math.Pi)
	}
	gain /= fmax

	for i := 0; i < nTaps; i++ {
		taps[i] = float32(float64(taps[i]) * gain)
	}

	return taps
}

func MakeBandPass(gain, sampleRate, lowCut, highCut, transitionWidth float64, winType WindowType) []float32 {
	nTaps := computeNTaps(sampleRate, transitionWidth, winType)
	taps := make([]float32, nTaps)
	w := windowFuncs[winType](nTaps)

	M := (nTaps - 1) / 2
	fwT0 := 2 * math.Pi * lowCut / sampleRate
	fwT1 := 2 * math.Pi * highCut / sampleRate

	for i := -M; i <= M; i++ {
		fi := float64(i)
		if i == 0 {
			taps[i+M] = float32((fwT1 - fwT0) / math.Pi * float64(w[i+M]))
		} else {
			taps[i+M] = float32(
				(math.Sin(fi*fwT1) - math.Sin(fi*fwT0)) /
					(fi * math.Pi) *
					float64(w[i+M]))
		}
	}

	// Normalize for unity gain at the center of the band.
	fmax := float64(taps[M])
	for i := 1; i <= M; i++ {
		fmax += 2 * float64(taps[i+M]) * math.Cos(float64(i)*(fwT0+fwT1)*0.5)
	}
	gain /= fmax

	for i := 0; i < nTaps; i++ {
		taps[i] = float32(float64(taps[i]) * gain)
	}

	return taps
}
