// Package synth generates bursts of voice-band tone with an optional CTCSS
// subtone over a noise floor. Useful for exercising the squelch path with
// no radio attached.
package synth

import (
	"context"
	"time"

	"github.com/rxgate/rxgate/pkg/audio"
	"github.com/rxgate/rxgate/pkg/dsp/gen"
)

const blockSize = 512

type SynthSource struct {
	voiceFreq  float64
	toneFreq   float64
	burstOn    time.Duration
	burstOff   time.Duration
	noiseLevel float64
}

func NewSynthSource(voiceFreq, ctcssFreq float64, burstOn, burstOff time.Duration) *SynthSource {
	return &SynthSource{
		voiceFreq:  voiceFreq,
		toneFreq:   ctcssFreq,
		burstOn:    burstOn,
		burstOff:   burstOff,
		noiseLevel: 0.01,
	}
}

func (s *SynthSource) Start(ctx context.Context, sampleRate int, samples chan *audio.SegmentFloat32) error {
	voice := gen.NewTone(sampleRate, s.voiceFreq, 0.4)
	noise := gen.NewNoise(s.noiseLevel, time.Now().UnixNano())

	var subtone *gen.Tone
	if s.toneFreq > 0 {
		subtone = gen.NewTone(sampleRate, s.toneFreq, 0.15)
	}

	onSamples := int(s.burstOn.Seconds() * float64(sampleRate))
	offSamples := int(s.burstOff.Seconds() * float64(sampleRate))

	timeBetween := time.Duration(blockSize) * time.Second / time.Duration(sampleRate)
	tick := time.NewTicker(timeBetween)
	defer tick.Stop()

	segNum := 0
	pos := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			seg := &audio.SegmentFloat32{
				SampleRate:    sampleRate,
				SegmentNumber: segNum,
				Data:          make([]float32, blockSize),
			}
			segNum++

			noise.MixBuffer(seg.Data)
			if pos < onSamples {
				voice.MixBuffer(seg.Data)
				if subtone != nil {
					subtone.MixBuffer(seg.Data)
				}
			}

			pos += blockSize
			if pos >= onSamples+offSamples {
				pos = 0
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case samples <- seg:
			}
		}
	}
}

func (s *SynthSource) Stop() error {
	return nil
}
