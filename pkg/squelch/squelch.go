package squelch

import (
	"strconv"
)

// Configured SQL_HANGTIME values are expressed in milliseconds at an
// 8 kHz block cadence, so one configured unit is 8 samples.
const hangtimeScale = 8

// StateSetter carries raw open/closed decisions from a Detector back into
// the squelch state machine.
type StateSetter interface {
	SetOpen(open bool)
}

// Detector judges whether a block of demodulated audio contains a valid
// signal. ProcessSamples may call state.SetOpen any number of times while
// inspecting a block and returns the number of samples it consumed, which
// may be less than len(samples) if it buffers internally.
type Detector interface {
	ProcessSamples(samples []float32, state StateSetter) int
	Reset()
}

// ValueSource looks up raw per-receiver configuration values.
type ValueSource interface {
	GetValue(section, key string) (string, bool)
}

// Squelch debounces the raw open/closed decisions of a Detector with a
// hangtime countdown measured in samples.
//
// A Squelch is owned by a single goroutine per receiver channel. AudioIn
// must be called serially and in chronological order; no internal locking
// is performed.
type Squelch struct {
	name         string
	detector     Detector
	open         bool
	hangtime     int
	hangtimeLeft int
	listeners    []func(open bool)
}

func New(name string, det Detector) *Squelch {
	return &Squelch{
		name:     name,
		detector: det,
		hangtime: 1,
	}
}

func (s *Squelch) Name() string {
	return s.name
}

// Initialize picks up SQL_HANGTIME for the named receiver section. A
// missing or unparseable value leaves the current hangtime in place.
func (s *Squelch) Initialize(cfg ValueSource, rxName string) error {
	if value, ok := cfg.GetValue(rxName, "SQL_HANGTIME"); ok {
		if hang, err := strconv.Atoi(value); err == nil {
			s.SetHangtime(hang * hangtimeScale)
		}
	}
	return nil
}

// SetHangtime sets how many samples the squelch hangs open after the
// detector reports closed. Values below 1 clamp to 1.
func (s *Squelch) SetHangtime(hangSamples int) {
	if hangSamples < 1 {
		hangSamples = 1
	}
	s.hangtime = hangSamples
}

func (s *Squelch) Hangtime() int {
	return s.hangtime
}

// Reset restarts the detection algorithm from scratch. The debounced state
// and any running hang countdown are left alone: clearing detector state is
// not itself a squelch transition, so nothing is notified here.
func (s *Squelch) Reset() {
	s.detector.Reset()
}

// AudioIn feeds one block of samples through the detector and then advances
// the hang countdown by the block length. Returns the number of samples the
// detector consumed.
func (s *Squelch) AudioIn(samples []float32) int {
	n := s.detector.ProcessSamples(samples, s)
	if s.hangtimeLeft > 0 {
		s.hangtimeLeft -= len(samples)
		if s.hangtimeLeft <= 0 {
			s.open = false
			s.emit(false)
		}
	}
	return n
}

// IsOpen reports the debounced state: open, or still hanging open.
func (s *Squelch) IsOpen() bool {
	return s.open || s.hangtimeLeft > 0
}

// Notify registers a listener for debounced transitions. Listeners run
// synchronously on the caller's stack, in registration order, exactly once
// per edge.
func (s *Squelch) Notify(fn func(open bool)) {
	s.listeners = append(s.listeners, fn)
}

// SetOpen reports a raw detector decision.
//
// A raw open cancels any pending hang countdown and, if the squelch was not
// already open, flips it open and notifies. A raw close only arms the hang
// countdown; the actual close transition happens in AudioIn once the
// countdown expires. A raw close while already hanging does not restart the
// countdown.
func (s *Squelch) SetOpen(open bool) {
	if open {
		s.hangtimeLeft = 0
		if !s.open {
			s.open = true
			s.emit(true)
		}
	} else if s.open && s.hangtimeLeft <= 0 {
		s.hangtimeLeft = s.hangtime
	}
}

func (s *Squelch) emit(open bool) {
	for _, fn := range s.listeners {
		fn(open)
	}
}
