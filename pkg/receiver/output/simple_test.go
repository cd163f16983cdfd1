package output

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rxgate/rxgate/pkg/audio"
)

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *lockedWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Len()
}

func TestSimpleOutputWritesFilteredChannels(t *testing.T) {
	dest := &lockedWriter{}
	out := NewSimpleAudioOutput(dest, 8000, []string{"Rx1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		out.Start(ctx)
		close(done)
	}()

	seg := func(channel string, n int) *audio.TaggedSegment {
		return &audio.TaggedSegment{
			Channel: channel,
			Audio: &audio.SegmentFloat32{
				SampleRate:    8000,
				SegmentNumber: n,
				Data:          make([]float32, 512),
			},
		}
	}

	// The Rx2 segment must be dropped by the channel filter.
	out.Receive() <- seg("Rx2", 0)
	for i := 0; i < sampleBufferLength; i++ {
		out.Receive() <- seg("Rx1", i)
	}

	want := sampleBufferLength * 512 * 4
	deadline := time.After(5 * time.Second)
	for dest.Len() < want {
		select {
		case <-deadline:
			t.Fatalf("expected %d bytes written, got %d", want, dest.Len())
		case <-time.After(10 * time.Millisecond):
		}
	}

	if dest.Len() != want {
		t.Fatalf("expected exactly %d bytes, got %d", want, dest.Len())
	}

	cancel()
	<-done
}
