package gen

import (
	"math"
	"math/rand"
)

const tau float64 = math.Pi * 2

// Tone is a phase-accumulating sine oscillator.
type Tone struct {
	sampleRate     int
	frequency      float64
	amplitude      float64
	phase          float64
	phaseIncrement float64
}

func NewTone(sampleRate int, frequency, amplitude float64) *Tone {
	return &Tone{
		sampleRate:     sampleRate,
		frequency:      frequency,
		amplitude:      amplitude,
		phaseIncrement: frequency * tau / float64(sampleRate),
	}
}

func (t *Tone) incrementPhase() {
	t.phase += t.phaseIncrement
	if t.phase > tau {
		t.phase -= tau
	} else if t.phase < -tau {
		t.phase += tau
	}
}

// MixBuffer adds the next len(output) oscillator samples into output.
func (t *Tone) MixBuffer(output []float32) int {
	for i := 0; i < len(output); i++ {
		output[i] += float32(t.amplitude * math.Sin(t.phase))
		t.incrementPhase()
	}
	return len(output)
}

// Fill overwrites output with the next oscillator samples.
func (t *Tone) Fill(output []float32) int {
	for i := 0; i < len(output); i++ {
		output[i] = 0
	}
	return t.MixBuffer(output)
}

// Noise is a uniform white noise source.
type Noise struct {
	amplitude float64
	rng       *rand.Rand
}

func NewNoise(amplitude float64, seed int64) *Noise {
	return &Noise{
		amplitude: amplitude,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (n *Noise) MixBuffer(output []float32) int {
	for i := 0; i < len(output); i++ {
		output[i] += float32(n.amplitude * (n.rng.Float64()*2 - 1))
	}
	return len(output)
}
