package output

import (
	"context"

	"github.com/rxgate/rxgate/pkg/audio"
)

// AudioOutput handles gated audio segments that passed the squelch.
type AudioOutput interface {
	// Start receives a context and should run in a loop, terminating upon ctx closing or on any errors.
	Start(ctx context.Context) error
	// Receive returns a channel that receives tagged audio segment input.
	Receive() chan<- *audio.TaggedSegment
}
