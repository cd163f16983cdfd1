package audio

import (
	"time"

	"github.com/rxgate/rxgate/pkg/audio/pb"
)

// SegmentFloat32 is one block of mono PCM samples from a receiver channel.
type SegmentFloat32 struct {
	SampleRate    int
	SegmentNumber int
	Data          []float32
}

// TaggedSegment couples a PCM segment with the receiver channel that
// produced it.
type TaggedSegment struct {
	Channel string
	Audio   *SegmentFloat32
}

// FrameOpus is a batch of encoded Opus data plus routing metadata.
type FrameOpus struct {
	Channel                  string
	Data                     []byte
	SegmentNumber            int
	SampleLengthMicroseconds int
	Timestamp                time.Time
}

func (f *FrameOpus) ToProtobuf() *pb.FrameOpus {
	return &pb.FrameOpus{
		Channel:        f.Channel,
		Data:           f.Data,
		SegmentNumber:  int64(f.SegmentNumber),
		SampleLengthUs: int64(f.SampleLengthMicroseconds),
		TimestampUs:    f.Timestamp.UnixMicro(),
	}
}

func FrameOpusFromProtobuf(p *pb.FrameOpus) *FrameOpus {
	return &FrameOpus{
		Channel:                  p.Channel,
		Data:                     p.Data,
		SegmentNumber:            int(p.SegmentNumber),
		SampleLengthMicroseconds: int(p.SampleLengthUs),
		Timestamp:                time.UnixMicro(p.TimestampUs).UTC(),
	}
}
