// Package open provides a detector that always reports an open squelch,
// for channels that should be monitored unconditionally.
package open

import "github.com/rxgate/rxgate/pkg/squelch"

type Detector struct{}

func New() *Detector {
	return &Detector{}
}

func (d *Detector) ProcessSamples(samples []float32, state squelch.StateSetter) int {
	state.SetOpen(true)
	return len(samples)
}

func (d *Detector) Reset() {}
