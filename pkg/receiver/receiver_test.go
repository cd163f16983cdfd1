package receiver

import (
	"context"
	"testing"
	"time"

	"github.com/rxgate/rxgate/pkg/audio"
	"github.com/rxgate/rxgate/pkg/dsp/gen"
	"github.com/rxgate/rxgate/pkg/receiver/config"
	"github.com/rxgate/rxgate/pkg/receiver/output"
	"github.com/rxgate/rxgate/pkg/squelch"
)

func TestNewDetector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Channel
		wantErr bool
	}{
		{"level", config.Channel{Name: "a", SquelchType: squelch.TypeLevel, OpenThreshold: 0.1, CloseThreshold: 0.05}, false},
		{"ctcss", config.Channel{Name: "b", SquelchType: squelch.TypeCTCSS, ToneFreq: 123.0}, false},
		{"level missing threshold", config.Channel{Name: "a2", SquelchType: squelch.TypeLevel}, true},
		{"ctcss missing tone", config.Channel{Name: "c", SquelchType: squelch.TypeCTCSS}, true},
		{"open", config.Channel{Name: "d", SquelchType: squelch.TypeOpen}, false},
		{"default open", config.Channel{Name: "e"}, false},
		{"unknown", config.Channel{Name: "f", SquelchType: "vox"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det, err := newDetector(tt.cfg, 8000)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newDetector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && det == nil {
				t.Fatal("newDetector() returned nil detector")
			}
		})
	}
}

type scriptedSource struct {
	segments []*audio.SegmentFloat32
}

func (s *scriptedSource) Start(ctx context.Context, sampleRate int, samples chan *audio.SegmentFloat32) error {
	for _, seg := range s.segments {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case samples <- seg:
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *scriptedSource) Stop() error { return nil }

type captureOutput struct {
	recv chan *audio.TaggedSegment
	got  chan *audio.TaggedSegment
}

func newCaptureOutput() *captureOutput {
	return &captureOutput{
		recv: make(chan *audio.TaggedSegment, 64),
		got:  make(chan *audio.TaggedSegment, 64),
	}
}

func (c *captureOutput) Receive() chan<- *audio.TaggedSegment { return c.recv }

func (c *captureOutput) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case seg := <-c.recv:
			c.got <- seg
		}
	}
}

func TestReceiverGatesAudio(t *testing.T) {
	const sampleRate = 8000

	quiet := &audio.SegmentFloat32{SampleRate: sampleRate, Data: make([]float32, 512)}

	segments := []*audio.SegmentFloat32{quiet, quiet}
	tone := gen.NewTone(sampleRate, 1000, 0.5)
	for i := 0; i < 10; i++ {
		seg := &audio.SegmentFloat32{
			SampleRate:    sampleRate,
			SegmentNumber: i + 2,
			Data:          make([]float32, 512),
		}
		tone.Fill(seg.Data)
		segments = append(segments, seg)
	}

	out := newCaptureOutput()
	r, err := NewReceiver(&scriptedSource{segments: segments}, Options{
		SampleRate: sampleRate,
		Channels: []config.Channel{{
			Name:           "Rx1",
			SquelchType:    squelch.TypeLevel,
			OpenThreshold:  0.1,
			CloseThreshold: 0.05,
		}},
		AudioOutputs: []output.AudioOutput{out},
	})
	if err != nil {
		t.Fatalf("NewReceiver() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	select {
	case seg := <-out.got:
		if seg.Channel != "Rx1" {
			t.Errorf("Channel = %q, want Rx1", seg.Channel)
		}
		if len(seg.Audio.Data) == 0 {
			t.Error("expected gated audio samples")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for gated audio")
	}

	cancel()
	<-done
}
