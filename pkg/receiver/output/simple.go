package output

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"time"

	"github.com/rxgate/rxgate/pkg/audio"
	"golang.org/x/sync/errgroup"
)

const sampleBufferLength int = 8

// SimpleAudioOutput writes gated little-endian float32 PCM for selected
// channels to an io.Writer, batching a few segments at a time.
type SimpleAudioOutput struct {
	dest          io.Writer
	recvChan      chan *audio.TaggedSegment
	outChan       chan *audio.TaggedSegment
	sampleRate    int
	channelFilter map[string]struct{}
}

func NewSimpleAudioOutput(dest io.Writer, sampleRate int, channels []string) *SimpleAudioOutput {
	ret := &SimpleAudioOutput{
		dest:          dest,
		sampleRate:    sampleRate,
		recvChan:      make(chan *audio.TaggedSegment, sampleBufferLength),
		outChan:       make(chan *audio.TaggedSegment, sampleBufferLength),
		channelFilter: make(map[string]struct{}),
	}

	for _, ch := range channels {
		ret.channelFilter[ch] = struct{}{}
	}

	return ret
}

func (s *SimpleAudioOutput) Receive() chan<- *audio.TaggedSegment {
	return s.recvChan
}

func (s *SimpleAudioOutput) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	sampleLen := 512
	singleSampleWaitTime := time.Duration(1000 / float64(s.sampleRate) * float64(time.Millisecond))

	// Concurrently filter incoming segments to only get what we are looking for.
	for i := 0; i < 4; i++ {
		eg.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()

				case ts := <-s.recvChan:
					if _, ok := s.channelFilter[ts.Channel]; !ok {
						continue
					}

					select {
					case <-ctx.Done():
						return ctx.Err()
					case s.outChan <- ts:
					}

				}
			}
		})
	}

	eg.Go(func() error {
		var b *bytes.Buffer
		bufNum := 0

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()

			case <-time.After(singleSampleWaitTime * time.Duration(sampleLen*(sampleBufferLength-bufNum))):
				if bufNum > 0 {
					if _, err := b.WriteTo(s.dest); err != nil {
						return err
					}
					b.Reset()
					bufNum = 0
				}

			case outBuf := <-s.outChan:
				sampleLen = len(outBuf.Audio.Data)
				if b == nil {
					b = bytes.NewBuffer(make([]byte, 0, sampleLen*4*sampleBufferLength+1))
				}

				if err := binary.Write(b, binary.LittleEndian, outBuf.Audio.Data); err != nil {
					return err
				}

				bufNum++
				if bufNum == sampleBufferLength {
					if _, err := b.WriteTo(s.dest); err != nil {
						return err
					}
					b.Reset()
					bufNum = 0
				}

			}

		}

	})

	return eg.Wait()
}
