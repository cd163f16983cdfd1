package config

import (
	"time"

	"github.com/rxgate/rxgate/pkg/squelch"
)

type Config struct {
	SampleRate         int                 `yaml:"sample_rate"`
	Source             string              `yaml:"source"`
	PlaybackLocation   string              `yaml:"playback_location"`
	Channels           []Channel           `yaml:"channels"`
	OutputDestinations []OutputDestination `yaml:"output_destinations"`
	MonitorServer      struct {
		Port           int           `yaml:"port"`
		UpdateInterval time.Duration `yaml:"update_interval_ms"`
	} `yaml:"monitor_server"`
	InfluxDB struct {
		Host         string `yaml:"host"`
		Organization string `yaml:"organization"`
		Bucket       string `yaml:"bucket"`
	}
}

type OutputDestination struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Channel struct {
	Name           string            `yaml:"name"`
	SquelchType    squelch.Type      `yaml:"squelch_type"`
	OpenThreshold  float64           `yaml:"open_threshold"`
	CloseThreshold float64           `yaml:"close_threshold"`
	ToneFreq       float64           `yaml:"tone_freq"`
	ToneThreshold  float64           `yaml:"tone_threshold"`
	Denoise        bool              `yaml:"denoise"`
	Values         map[string]string `yaml:"values"`
}

// GetValue looks up a raw setting in the named channel section. Squelch
// initialization reads SQL_HANGTIME through this.
func (c *Config) GetValue(section, key string) (string, bool) {
	for _, ch := range c.Channels {
		if ch.Name == section {
			v, ok := ch.Values[key]
			return v, ok
		}
	}
	return "", false
}
