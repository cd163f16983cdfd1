package output

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/rxgate/rxgate/pkg/audio"
	"github.com/rxgate/rxgate/pkg/audio/pb"
	"google.golang.org/protobuf/proto"
)

func TestFrameRoundTrip(t *testing.T) {
	in := &audio.FrameOpus{
		Channel:                  "Rx1",
		Data:                     []byte{0xde, 0xad, 0xbe, 0xef},
		SegmentNumber:            42,
		SampleLengthMicroseconds: 40000,
		Timestamp:                time.UnixMicro(1700000000000000).UTC(),
	}

	b, err := marshalFrame(in)
	if err != nil {
		t.Fatalf("marshalFrame() error = %v", err)
	}

	out, err := unmarshalFrame(b)
	if err != nil {
		t.Fatalf("unmarshalFrame() error = %v", err)
	}

	if out.Channel != in.Channel {
		t.Errorf("Channel = %q, want %q", out.Channel, in.Channel)
	}
	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", out.Timestamp, in.Timestamp)
	}
	if out.SampleLengthMicroseconds != in.SampleLengthMicroseconds {
		t.Errorf("SampleLengthMicroseconds = %d, want %d", out.SampleLengthMicroseconds, in.SampleLengthMicroseconds)
	}
	if out.SegmentNumber != in.SegmentNumber {
		t.Errorf("SegmentNumber = %d, want %d", out.SegmentNumber, in.SegmentNumber)
	}
	if string(out.Data) != string(in.Data) {
		t.Errorf("Data = %x, want %x", out.Data, in.Data)
	}
}

func TestFrameBodyIsProtobuf(t *testing.T) {
	in := &audio.FrameOpus{
		Channel:                  "Rx2",
		Data:                     []byte{7, 8, 9},
		SegmentNumber:            3,
		SampleLengthMicroseconds: 40000,
		Timestamp:                time.UnixMicro(1700000000000000).UTC(),
	}

	b, err := marshalFrame(in)
	if err != nil {
		t.Fatalf("marshalFrame() error = %v", err)
	}

	bodyLen := int(binary.LittleEndian.Uint16(b))
	if bodyLen != len(b)-2 {
		t.Fatalf("length prefix = %d, want %d", bodyLen, len(b)-2)
	}

	var p pb.FrameOpus
	if err := proto.Unmarshal(b[2:], &p); err != nil {
		t.Fatalf("body is not a valid protobuf message: %v", err)
	}
	if p.Channel != "Rx2" {
		t.Errorf("Channel = %q, want %q", p.Channel, "Rx2")
	}
	if p.SegmentNumber != 3 || p.SampleLengthUs != 40000 {
		t.Errorf("frame fields = (%d, %d), want (3, 40000)", p.SegmentNumber, p.SampleLengthUs)
	}
	if p.TimestampUs != in.Timestamp.UnixMicro() {
		t.Errorf("TimestampUs = %d, want %d", p.TimestampUs, in.Timestamp.UnixMicro())
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	in := &audio.FrameOpus{Channel: "Rx1", Data: []byte{1, 2, 3}, Timestamp: time.Now()}
	b, err := marshalFrame(in)
	if err != nil {
		t.Fatalf("marshalFrame() error = %v", err)
	}

	for _, cut := range []int{0, 1, 2, len(b) / 2} {
		if _, err := unmarshalFrame(b[:cut]); err == nil {
			t.Errorf("expected error for %d-byte prefix", cut)
		}
	}
}
