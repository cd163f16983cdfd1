package source

import (
	"context"

	"github.com/rxgate/rxgate/pkg/audio"
)

// Source produces demodulated audio segments for the receiver.
type Source interface {
	Start(ctx context.Context, sampleRate int, samples chan *audio.SegmentFloat32) error
	Stop() error
}
