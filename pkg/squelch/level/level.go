// Package level implements an RMS energy squelch detector.
package level

import (
	"math"

	"github.com/rxgate/rxgate/pkg/squelch"
)

const defaultAlpha = 0.01

// Detector tracks signal power with a single-pole average and reports open
// once the RMS level reaches the open threshold. It reports closed only
// after the level falls below the separate close threshold, so levels
// sitting between the two cause no raw decision at all.
type Detector struct {
	openThreshold  float64
	closeThreshold float64
	alpha          float64
	beta           float64
	average        float64
}

func New(openThreshold, closeThreshold, alpha float64) *Detector {
	if closeThreshold > openThreshold {
		closeThreshold = openThreshold
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = defaultAlpha
	}
	return &Detector{
		openThreshold:  openThreshold,
		closeThreshold: closeThreshold,
		alpha:          alpha,
		beta:           1 - alpha,
	}
}

// Level returns the current smoothed RMS estimate.
func (d *Detector) Level() float64 {
	return math.Sqrt(d.average)
}

func (d *Detector) ProcessSamples(samples []float32, state squelch.StateSetter) int {
	for _, s := range samples {
		cur := float64(s)
		d.average = d.beta*d.average + d.alpha*cur*cur
	}

	rms := math.Sqrt(d.average)
	switch {
	case rms >= d.openThreshold:
		state.SetOpen(true)
	case rms < d.closeThreshold:
		state.SetOpen(false)
	}

	return len(samples)
}

func (d *Detector) Reset() {
	d.average = 0
}
