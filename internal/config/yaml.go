// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nicochatzi/rume"
)

// Config holds all runtime configuration, loaded with three-layer
// precedence: defaults, then a YAML file, then environment variable
// overrides. The only CLI flag, --config in cmd/rume, chooses the file;
// no flag overrides individual values.
type Config struct {
	Debug     bool            `yaml:"debug"`
	LogLevel  string          `yaml:"log_level"`
	Command   string          `yaml:"command,omitempty"` // A one-off command to execute. e.g., "list" to list available audio devices.
	Audio     AudioConfig     `yaml:"audio"`
	Graph     GraphConfig     `yaml:"graph"`
	Recording RecordingConfig `yaml:"recording"`
	Transport TransportConfig `yaml:"transport"`
}

// AudioConfig selects and configures the physical device the engine
// reads from. It is deliberately distinct from GraphConfig below: one
// describes the host I/O layer, the other the graph engine's own
// operating parameters.
type AudioConfig struct {
	InputDevice       int     `yaml:"input_device"`
	OutputDevice      int     `yaml:"output_device"`
	SampleRate        float64 `yaml:"sample_rate"`
	FramesPerBuffer   int     `yaml:"frames_per_buffer"`
	LowLatency        bool    `yaml:"low_latency"`
	InputChannels     int     `yaml:"input_channels"`
	OutputChannels    int     `yaml:"output_channels"`
	UseDefaultDevices bool    `yaml:"use_default_devices"`
	FFTWindow         string  `yaml:"fft_window"`
}

// GraphConfig carries the signal chain's own AudioConfig: sample rate,
// buffer size, and channel count, as handed to Chain.Prepare.
type GraphConfig struct {
	SampleRate  int `yaml:"sample_rate"`
	BufferSize  int `yaml:"buffer_size"`
	NumChannels int `yaml:"num_channels"`
}

// ToAudioConfig converts the loaded GraphConfig into the engine's
// rume.AudioConfig.
func (g GraphConfig) ToAudioConfig() rume.AudioConfig {
	return rume.AudioConfig{
		SampleRate:  g.SampleRate,
		BufferSize:  g.BufferSize,
		NumChannels: g.NumChannels,
	}
}

type RecordingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	OutputDir   string  `yaml:"output_dir"`
	Format      string  `yaml:"format"`
	BitDepth    int     `yaml:"bit_depth"`
	MaxDuration int     `yaml:"max_duration_seconds"`
	SilenceTh   float64 `yaml:"silence_threshold"`
}

// TransportConfig configures the control-thread telemetry broadcaster.
type TransportConfig struct {
	Enabled     bool          `yaml:"enabled"`
	ListenAddr  string        `yaml:"listen_addr"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// LoadConfig reads path (or, if empty, the first of a small set of
// conventional candidate paths found on disk), applies environment
// overrides, and validates the result. An empty path with no candidate
// found returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Config{
		Debug:    false,
		LogLevel: "info",
		Audio: AudioConfig{
			InputDevice:       -1,
			OutputDevice:      -1,
			SampleRate:        44100,
			FramesPerBuffer:   1024,
			LowLatency:        false,
			InputChannels:     2,
			OutputChannels:    2,
			UseDefaultDevices: true,
			FFTWindow:         "Hann",
		},
		Graph: GraphConfig{
			SampleRate:  48000,
			BufferSize:  64,
			NumChannels: 2,
		},
		Recording: RecordingConfig{
			Enabled:     false,
			OutputDir:   "./recordings",
			Format:      "wav",
			BitDepth:    16,
			MaxDuration: 0, // unlimited
			SilenceTh:   0.01,
		},
		Transport: TransportConfig{
			Enabled:     false,
			ListenAddr:  ":8080",
			MinInterval: 33 * time.Millisecond, // ~30Hz
		},
	}

	if path == "" {
		candidates := []string{"config.yaml"}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return &cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Graph.SampleRate <= 0 {
		return fmt.Errorf("graph.sample_rate must be positive")
	}
	if c.Graph.BufferSize <= 0 {
		return fmt.Errorf("graph.buffer_size must be positive")
	}
	if c.Graph.NumChannels <= 0 {
		return fmt.Errorf("graph.num_channels must be positive")
	}
	if c.Transport.Enabled && c.Transport.ListenAddr == "" {
		return fmt.Errorf("transport.listen_addr must be set when transport is enabled")
	}
	return nil
}

func (cfg *Config) applyEnvOverrides() {
	// ENV_{...}
	// These are general overrides.

	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = bVal
			log.Printf("Config: Overriding debug from env: %v", bVal)
		}
	}

	// ENV_TRANSPORT_{...}
	// These are specific to the telemetry transport layer.

	if val, ok := os.LookupEnv("ENV_TRANSPORT_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Transport.Enabled = bVal
			log.Printf("Config: Overriding transport.enabled from env: %v", bVal)
		}
	}
	if val, ok := os.LookupEnv("ENV_TRANSPORT_LISTEN_ADDR"); ok {
		cfg.Transport.ListenAddr = val
		log.Printf("Config: Overriding transport.listen_addr from env: %s", val)
	}
	if val, ok := os.LookupEnv("ENV_TRANSPORT_MIN_INTERVAL"); ok {
		if dur, err := time.ParseDuration(val); err == nil {
			cfg.Transport.MinInterval = dur
			log.Printf("Config: Overriding transport.min_interval from env: %s", dur)
		}
	}
}
