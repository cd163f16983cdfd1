package receiver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"
	"github.com/rxgate/rxgate/pkg/audio"
	"github.com/rxgate/rxgate/pkg/monitor"
	"github.com/rxgate/rxgate/pkg/receiver/config"
	"github.com/rxgate/rxgate/pkg/receiver/output"
	"github.com/rxgate/rxgate/pkg/receiver/source"
	"github.com/rxgate/rxgate/pkg/squelch"
	"github.com/rxgate/rxgate/pkg/util"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	SampleRate   int
	Channels     []config.Channel
	AudioOutputs []output.AudioOutput

	// Values feeds raw per-channel settings (SQL_HANGTIME) into squelch
	// initialization. *config.Config satisfies this.
	Values squelch.ValueSource
}

// Receiver fans demodulated audio out to every configured channel, runs
// each channel's squelch, and forwards open audio to the outputs.
type Receiver struct {
	source        source.Source
	opts          Options
	writeAPI      api.WriteAPI
	rawSampleChan chan *audio.SegmentFloat32
	outputChan    chan *audio.TaggedSegment
	monitorServer *monitor.Server
	channels      []*Channel
	logger        zerolog.Logger

	cancel context.CancelFunc
	ctx    context.Context
}

type ReceiverOption func(r *Receiver) error

func WithInfluxDB(influxClient api.WriteAPI) ReceiverOption {
	return func(r *Receiver) error {
		r.writeAPI = influxClient
		return nil
	}
}

func WithMonitorServer(monitorServer *monitor.Server) ReceiverOption {
	return func(r *Receiver) error {
		r.monitorServer = monitorServer
		return nil
	}
}

func WithLogger(logger zerolog.Logger) ReceiverOption {
	return func(r *Receiver) error {
		r.logger = logger
		return nil
	}
}

func NewReceiver(src source.Source, options Options, opts ...ReceiverOption) (*Receiver, error) {
	r := &Receiver{
		source:        src,
		opts:          options,
		rawSampleChan: make(chan *audio.SegmentFloat32, 1),
		outputChan:    make(chan *audio.TaggedSegment),
		writeAPI:      &util.MockWriteAPI{}, // overwritten with option
		logger:        log.Logger,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.opts.SampleRate == 0 {
		return nil, fmt.Errorf("must specify sample rate")
	}
	if len(r.opts.Channels) == 0 {
		return nil, fmt.Errorf("must specify at least one channel")
	}

	return r, nil
}

func (r *Receiver) Stop() error {
	r.cancel()
	if r.monitorServer != nil {
		r.monitorServer.Stop(context.TODO())
	}
	return r.source.Stop()
}

func (r *Receiver) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	r.ctx, r.cancel = context.WithCancel(ctx)

	for _, cfg := range r.opts.Channels {
		ch := &Channel{Name: cfg.Name, cfg: cfg}
		if err := ch.init(r); err != nil {
			return err
		}
		r.channels = append(r.channels, ch)
	}

	eg.Go(func() error {
		return r.source.Start(r.ctx, r.opts.SampleRate, r.rawSampleChan)
	})

	if r.monitorServer != nil {
		eg.Go(func() error {
			return r.monitorServer.Run(r.ctx)
		})
	}

	for i := 0; i < runtime.NumCPU(); i++ {
		eg.Go(r.outputSegments)
	}

	eg.Go(r.processRawSegments)

	for _, out := range r.opts.AudioOutputs {
		thisOutput := out
		eg.Go(func() error {
			return thisOutput.Start(r.ctx)
		})
	}

	r.logger.Info().
		Int("sample_rate", r.opts.SampleRate).
		Int("channels", len(r.channels)).
		Msg("Starting")

	return eg.Wait()
}

func (r *Receiver) outputSegments() error {
	for {
		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		case buf := <-r.outputChan:

			skippedOutputs := 0
			for _, out := range r.opts.AudioOutputs {
				select {
				case out.Receive() <- buf:
					// We will not wait on blocked channels.
				default:
					skippedOutputs++
				}
			}

			go r.writeAPI.WritePoint(influxdb2.NewPoint("audio.output",
				map[string]string{
					"channel": buf.Channel,
				},
				map[string]interface{}{
					"samples_written": len(buf.Audio.Data),
					"bytes_written":   len(buf.Audio.Data) * 4,
					"skipped_outputs": skippedOutputs,
				}, time.Now()))

		}
	}
}

func (r *Receiver) processRawSegments() error {
	for {
		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		case buf := <-r.rawSampleChan:

			eg, ctx := errgroup.WithContext(r.ctx)

			for _, ch := range r.channels {
				thisChannel := ch
				eg.Go(func() error {
					return r.processChannel(ctx, buf, thisChannel)
				})
			}

			if err := eg.Wait(); err != nil {
				return err
			}
		}
	}
}
