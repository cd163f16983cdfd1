package config

import (
	"testing"

	"github.com/rxgate/rxgate/pkg/squelch"
	"gopkg.in/yaml.v2"
)

const sampleConfig = `
sample_rate: 8000
source: synth
channels:
  - name: Rx1
    squelch_type: level
    open_threshold: 0.1
    close_threshold: 0.05
    values:
      SQL_HANGTIME: "25"
  - name: Rx2
    squelch_type: ctcss
    tone_freq: 123.0
output_destinations:
  - host: localhost
    port: 9000
`

func TestUnmarshal(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(sampleConfig), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	if cfg.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", cfg.SampleRate)
	}
	if len(cfg.Channels) != 2 {
		t.Fatalf("len(Channels) = %d, want 2", len(cfg.Channels))
	}
	if cfg.Channels[0].SquelchType != squelch.TypeLevel {
		t.Errorf("SquelchType = %s, want level", cfg.Channels[0].SquelchType)
	}
	if cfg.Channels[1].ToneFreq != 123.0 {
		t.Errorf("ToneFreq = %f, want 123.0", cfg.Channels[1].ToneFreq)
	}
	if len(cfg.OutputDestinations) != 1 || cfg.OutputDestinations[0].Port != 9000 {
		t.Errorf("unexpected output destinations: %+v", cfg.OutputDestinations)
	}
}

func TestGetValue(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(sampleConfig), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	tests := []struct {
		name    string
		section string
		key     string
		want    string
		wantOK  bool
	}{
		{"present", "Rx1", "SQL_HANGTIME", "25", true},
		{"missing key", "Rx1", "SQL_DELAY", "", false},
		{"no values map", "Rx2", "SQL_HANGTIME", "", false},
		{"unknown section", "Rx9", "SQL_HANGTIME", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.GetValue(tt.section, tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("GetValue(%s, %s) = (%q, %v), want (%q, %v)",
					tt.section, tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
