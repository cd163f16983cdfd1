package receiver

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	segdsp "github.com/racerxdl/segdsp/dsp"
	"github.com/rxgate/rxgate/pkg/audio"
	"github.com/rxgate/rxgate/pkg/dsp/agc"
	"github.com/rxgate/rxgate/pkg/dsp/chain"
	"github.com/rxgate/rxgate/pkg/dsp/denoise"
	"github.com/rxgate/rxgate/pkg/dsp/fir"
	"github.com/rxgate/rxgate/pkg/monitor"
	"github.com/rxgate/rxgate/pkg/receiver/config"
	"github.com/rxgate/rxgate/pkg/squelch"
	"github.com/rxgate/rxgate/pkg/squelch/ctcss"
	"github.com/rxgate/rxgate/pkg/squelch/level"
	"github.com/rxgate/rxgate/pkg/squelch/open"
)

// Channel runs the squelch decision for one logical receiver and, while
// open, shapes the audio that goes to the outputs.
type Channel struct {
	Name string

	cfg      config.Channel
	sq       *squelch.Squelch
	proc     *chain.Chain
	inPlot   *monitor.LevelPlotter
	specPlot *monitor.SpectrumPlotter
}

func newDetector(cfg config.Channel, sampleRate int) (squelch.Detector, error) {
	switch cfg.SquelchType {
	case squelch.TypeLevel:
		if cfg.OpenThreshold <= 0 {
			return nil, fmt.Errorf("channel %s: level squelch requires open_threshold", cfg.Name)
		}
		return level.New(cfg.OpenThreshold, cfg.CloseThreshold, 0), nil
	case squelch.TypeCTCSS:
		if cfg.ToneFreq <= 0 {
			return nil, fmt.Errorf("channel %s: ctcss squelch requires tone_freq", cfg.Name)
		}
		return ctcss.New(sampleRate, cfg.ToneFreq, cfg.ToneThreshold), nil
	case squelch.TypeOpen, "":
		return open.New(), nil
	default:
		return nil, fmt.Errorf("channel %s: unknown squelch type %s", cfg.Name, cfg.SquelchType)
	}
}

func (ch *Channel) init(r *Receiver) error {
	rate := r.opts.SampleRate

	det, err := newDetector(ch.cfg, rate)
	if err != nil {
		return err
	}

	ch.sq = squelch.New(ch.cfg.Name, det)
	if r.opts.Values != nil {
		if err := ch.sq.Initialize(r.opts.Values, ch.cfg.Name); err != nil {
			return err
		}
	}

	r.logger.Info().
		Str("channel", ch.cfg.Name).
		Str("squelch_type", string(ch.cfg.SquelchType)).
		Int("hangtime_samples", ch.sq.Hangtime()).
		Int("sample_rate", rate).
		Msg("initializing channel")

	ch.sq.Notify(func(isOpen bool) {
		r.logger.Info().
			Str("channel", ch.cfg.Name).
			Bool("open", isOpen).
			Msg("squelch transition")

		go r.writeAPI.WritePoint(influxdb2.NewPoint("squelch.transition",
			map[string]string{
				"channel": ch.cfg.Name,
			},
			map[string]interface{}{
				"open": func() int {
					if isOpen {
						return 1
					}
					return 0
				}(),
			}, time.Now()))
	})

	ch.proc = chain.New(ch.cfg.Name)

	if ch.cfg.Denoise {
		ch.proc.AddBlock(chain.NewBlock(
			"spectral_gate",
			"Spectral Gate",
			rate,
			rate,
			denoise.NewSpectralGate(denoise.DefaultThreshold),
		))
	}

	// Strip sub-audible tones and HF junk from what goes out.
	gatedPlot := monitor.NewLevelPlotter("03. Gated Audio", rate/10)
	ch.proc.AddBlock(chain.NewBlock(
		"voice_band",
		"Voice Bandpass",
		rate,
		rate,
		segdsp.MakeFloatFirFilter(
			fir.MakeBandPass(1.15, float64(rate), 300, 3400, 100, fir.Hamming),
		),
	))

	ch.proc.AddBlock(chain.NewBlock(
		"agc",
		"RMS AGC",
		rate,
		rate,
		agc.NewRMS(0.01, 0.5),
		chain.WithTap(gatedPlot),
	))

	if r.monitorServer != nil {
		ch.inPlot = monitor.NewLevelPlotter("01. Audio In", rate/10)
		ch.specPlot = monitor.NewSpectrumPlotter("02. Spectrum", 1024, rate)

		r.monitorServer.Register(ch.cfg.Name, ch.inPlot)
		r.monitorServer.Register(ch.cfg.Name, ch.specPlot)
		r.monitorServer.Register(ch.cfg.Name, gatedPlot)
		r.monitorServer.RegisterState(ch.sq)
	}

	return nil
}

func (r *Receiver) processChannel(ctx context.Context, buf *audio.SegmentFloat32, ch *Channel) error {
	start := time.Now()
	metrics := map[string]interface{}{
		"sample_length": len(buf.Data),
		"sample_bytes":  len(buf.Data) * 4,
	}

	defer func() {
		metrics["duration"] = time.Since(start).Microseconds()

		go r.writeAPI.WritePoint(influxdb2.NewPoint("channel.processed",
			map[string]string{
				"channel": ch.cfg.Name,
			},
			metrics, time.Now()))
	}()

	if ch.inPlot != nil {
		ch.inPlot.AppendFloat(buf.Data)
		ch.specPlot.AppendFloat(buf.Data)
	}

	ch.sq.AudioIn(buf.Data)

	isOpen := ch.sq.IsOpen()
	metrics["squelch_open"] = func() int {
		if isOpen {
			return 1
		}
		return 0
	}()
	if !isOpen {
		return nil
	}

	samples, err := ch.proc.Process(buf.Data, metrics)
	if err != nil {
		return err
	}

	out := &audio.SegmentFloat32{
		SampleRate:    buf.SampleRate,
		SegmentNumber: buf.SegmentNumber,
		Data:          make([]float32, len(samples)),
	}
	copy(out.Data, samples)

	select {
	case r.outputChan <- &audio.TaggedSegment{
		Channel: ch.cfg.Name,
		Audio:   out,
	}:
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
