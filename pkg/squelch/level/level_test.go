package level

import (
	"testing"

	"github.com/rxgate/rxgate/pkg/dsp/gen"
	"github.com/rxgate/rxgate/pkg/squelch"
)

func TestOpensOnToneClosesOnSilence(t *testing.T) {
	det := New(0.1, 0.05, 0.05)
	sq := squelch.New("rx", det)

	tone := gen.NewTone(8000, 1000, 0.5)
	buf := make([]float32, 256)

	// A sustained tone must open the squelch.
	for i := 0; i < 10; i++ {
		tone.Fill(buf)
		sq.AudioIn(buf)
	}
	if !sq.IsOpen() {
		t.Fatalf("expected open on tone, level = %f", det.Level())
	}

	// Silence must close it again once the average decays.
	silence := make([]float32, 256)
	for i := 0; i < 20; i++ {
		sq.AudioIn(silence)
	}
	if sq.IsOpen() {
		t.Fatalf("expected closed on silence, level = %f", det.Level())
	}
}

func TestHysteresisHoldsBetweenThresholds(t *testing.T) {
	det := New(0.1, 0.05, 0.05)
	sq := squelch.New("rx", det)
	var edges []bool
	sq.Notify(func(open bool) { edges = append(edges, open) })

	loud := gen.NewTone(8000, 1000, 0.5)
	mid := gen.NewTone(8000, 1000, 0.1)
	buf := make([]float32, 256)

	for i := 0; i < 10; i++ {
		loud.Fill(buf)
		sq.AudioIn(buf)
	}
	// RMS of a 0.1 amplitude sine is ~0.07: between the thresholds, so
	// the detector reports nothing and the squelch stays open.
	for i := 0; i < 40; i++ {
		mid.Fill(buf)
		sq.AudioIn(buf)
	}

	if !sq.IsOpen() {
		t.Fatal("expected still open between thresholds")
	}
	if len(edges) != 1 {
		t.Fatalf("expected only the open edge, got %v", edges)
	}
}

func TestResetClearsAverage(t *testing.T) {
	det := New(0.1, 0.05, 0.05)
	sq := squelch.New("rx", det)

	tone := gen.NewTone(8000, 1000, 0.5)
	buf := make([]float32, 256)
	for i := 0; i < 10; i++ {
		tone.Fill(buf)
		sq.AudioIn(buf)
	}
	if det.Level() == 0 {
		t.Fatal("expected nonzero level before reset")
	}

	sq.Reset()
	if det.Level() != 0 {
		t.Fatalf("expected zero level after reset, got %f", det.Level())
	}
}
