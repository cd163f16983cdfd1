package output

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"
	"github.com/rs/zerolog/log"
	"github.com/rxgate/rxgate/pkg/audio"
	"github.com/rxgate/rxgate/pkg/audio/pb"
	"github.com/rxgate/rxgate/pkg/receiver/config"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/proto"
)

const receiveChannels = 8

// OpusFrameUDPOutput encodes gated audio to Opus and sends length-prefixed
// frames to every configured destination.
type OpusFrameUDPOutput struct {
	dests      []config.OutputDestination
	sampleRate int
	recvChan   chan *audio.TaggedSegment
	opusChan   chan *audio.FrameOpus
	mu         sync.Mutex
	encoders   map[string]*OpusEncoder
	metrics    api.WriteAPI
}

func NewOpusFrameUDPOutput(dests []config.OutputDestination, sampleRate int, metrics api.WriteAPI) *OpusFrameUDPOutput {
	return &OpusFrameUDPOutput{
		dests:      dests,
		sampleRate: sampleRate,
		recvChan:   make(chan *audio.TaggedSegment, receiveChannels),
		encoders:   make(map[string]*OpusEncoder),
		opusChan:   make(chan *audio.FrameOpus),
		metrics:    metrics,
	}
}

func (s *OpusFrameUDPOutput) Receive() chan<- *audio.TaggedSegment {
	return s.recvChan
}

func (s *OpusFrameUDPOutput) getEncoder(channel string) (*OpusEncoder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc, ok := s.encoders[channel]
	if ok {
		return enc, false, nil
	}

	enc, err := NewOpusEncoder(s.sampleRate, channel, s.opusChan)
	if err != nil {
		return nil, false, err
	}
	s.encoders[channel] = enc
	return enc, true, nil
}

// marshalFrame wraps the protobuf-encoded frame with a uint16 length prefix
// so receivers can validate datagram boundaries.
func marshalFrame(f *audio.FrameOpus) ([]byte, error) {
	encoded, err := proto.Marshal(f.ToProtobuf())
	if err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	if err := binary.Write(&msg, binary.LittleEndian, uint16(len(encoded))); err != nil {
		return nil, err
	}
	if _, err := msg.Write(encoded); err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

func unmarshalFrame(b []byte) (*audio.FrameOpus, error) {
	if len(b) < 2 {
		return nil, errors.New("short frame")
	}
	bodyLen := int(binary.LittleEndian.Uint16(b))
	b = b[2:]
	if len(b) < bodyLen {
		return nil, errors.New("truncated frame")
	}

	var p pb.FrameOpus
	if err := proto.Unmarshal(b[:bodyLen], &p); err != nil {
		return nil, err
	}
	return audio.FrameOpusFromProtobuf(&p), nil
}

func (s *OpusFrameUDPOutput) Start(ctx context.Context) error {

	eg, ctx := errgroup.WithContext(ctx)

	const numListeners int = 4

	destAddrs := make([]*net.UDPAddr, 0, len(s.dests))
	for _, dest := range s.dests {

		ips, err := net.LookupIP(dest.Host)
		if err != nil {
			return err
		}
		if len(ips) == 0 {
			return fmt.Errorf("no IPs returned for %s", dest.Host)
		}

		destAddr := &net.UDPAddr{IP: ips[0], Port: dest.Port}
		destAddrs = append(destAddrs, destAddr)
		log.Info().IPAddr("dest_ip", destAddr.IP).Int("port", dest.Port).Msg("stream output starting")
	}

	for i := 0; i < numListeners; i++ {
		eg.Go(func() error {

			conn, err := net.ListenUDP("udp", nil)
			if err != nil {
				return err
			}
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case frame := <-s.opusChan:

					encoded, err := marshalFrame(frame)
					if err != nil {
						log.Warn().Err(err).Msg("error marshaling frame")
						continue
					}

					success := true
					var bytesWritten int
					for _, destAddr := range destAddrs {
						bytesWritten, err = conn.WriteToUDP(encoded, destAddr)
						if err != nil {
							log.Error().Err(err).Msg("error writing")
							success = false
						}
					}

					go s.metrics.WritePoint(influxdb2.NewPoint("opus.sent_frame",
						map[string]string{
							"channel": frame.Channel,
						},
						map[string]interface{}{
							"bytes_written":  bytesWritten,
							"frame_length":   len(frame.Data),
							"encoded_length": len(encoded),
							"sent": func() int {
								if success {
									return 1
								}
								return 0
							}(),
							"dropped": func() int {
								if success {
									return 0
								}
								return 1
							}(),
						}, time.Now()))
				}
			}
		})
	}

	for i := 0; i < numListeners; i++ {

		eg.Go(func() error {

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()

				case ts := <-s.recvChan:

					enc, created, err := s.getEncoder(ts.Channel)
					if err != nil {
						return err
					}
					if created {
						eg.Go(func() error {
							return enc.Start(ctx)
						})
					}

					select {
					case <-ctx.Done():
						return ctx.Err()
					case enc.ReceiveChannel() <- ts:
					}

				}
			}
		})
	}

	return eg.Wait()
}
