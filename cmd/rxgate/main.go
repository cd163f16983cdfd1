package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/rxgate/rxgate/pkg/monitor"
	"github.com/rxgate/rxgate/pkg/receiver"
	"github.com/rxgate/rxgate/pkg/receiver/config"
	"github.com/rxgate/rxgate/pkg/receiver/output"
	"github.com/rxgate/rxgate/pkg/receiver/source"
	fileSource "github.com/rxgate/rxgate/pkg/receiver/source/file"
	"github.com/rxgate/rxgate/pkg/receiver/source/synth"
	"golang.org/x/sync/errgroup"
)

const (
	fileBlockSize   = 512
	synthVoiceFreq  = 1000.0
	synthCTCSSFreq  = 123.0
	synthBurstOn    = time.Second * 5
	synthBurstOff   = time.Second * 5
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	configFile := flag.String("config", "rxgate.yaml", "YAML config file")

	flag.Parse()
	if configFile == nil {
		flag.Usage()
		os.Exit(1)
	}

	configContents, err := os.ReadFile(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading config file")
	}
	var opts config.Config
	if err := yaml.Unmarshal(configContents, &opts); err != nil {
		log.Fatal().Err(err).Msg("error unmarshaling yaml file")
	}

	var src source.Source

	if opts.PlaybackLocation != "" {
		opts.Source = "file"
	}

	switch opts.Source {
	case "file":
		log.Info().Str("source", "file").Str("path", opts.PlaybackLocation).Msg("initializing source...")
		src, err = fileSource.NewFileSource(opts.PlaybackLocation, fileBlockSize)
		if err != nil {
			log.Fatal().Str("source", "file").Err(err).Msg("failed to init file reader")
		}
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	default:
		log.Info().Str("source", "synth").Msg("initializing source...")
		src = synth.NewSynthSource(synthVoiceFreq, synthCTCSSFreq, synthBurstOn, synthBurstOff)
	}

	monitorServer := monitor.NewServer(opts.MonitorServer.Port, opts.MonitorServer.UpdateInterval)

	influxWriteAPI := influxdb2.NewClient(opts.InfluxDB.Host, "").WriteAPI(opts.InfluxDB.Organization, opts.InfluxDB.Bucket)

	rec, err := receiver.NewReceiver(src,
		receiver.Options{
			SampleRate: opts.SampleRate,
			Channels:   opts.Channels,
			Values:     &opts,
			AudioOutputs: []output.AudioOutput{
				output.NewOpusFrameUDPOutput(opts.OutputDestinations, opts.SampleRate, influxWriteAPI),
			},
		}, receiver.WithInfluxDB(
			influxWriteAPI,
		),
		receiver.WithMonitorServer(monitorServer),
		receiver.WithLogger(log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create receiver")
	}

	eg, ctx := errgroup.WithContext(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	eg.Go(func() error {

		select {
		case <-sigChan:
		case <-ctx.Done():
		}

		return rec.Stop()
	})

	eg.Go(func() error {
		return rec.Start(ctx)
	})

	if err := eg.Wait(); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("exited program")
	}
}
