// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Fields missing from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	// Mixer
	if cfg.Mixer.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("mixer.sample_rate must be positive, got %d", cfg.Mixer.SampleRate))
	}
	if cfg.Mixer.MaxChannels <= 0 {
		errs = append(errs, fmt.Errorf("mixer.max_channels must be positive, got %d", cfg.Mixer.MaxChannels))
	}
	if cfg.Mixer.BufferMS < 0 {
		errs = append(errs, fmt.Errorf("mixer.buffer_ms must not be negative, got %d", cfg.Mixer.BufferMS))
	}

	// Scheduler
	if cfg.Scheduler.Channels <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.channels must be positive, got %d", cfg.Scheduler.Channels))
	} else if cfg.Mixer.MaxChannels > 0 && cfg.Scheduler.Channels > cfg.Mixer.MaxChannels {
		errs = append(errs, fmt.Errorf("scheduler.channels %d exceeds mixer.max_channels %d", cfg.Scheduler.Channels, cfg.Mixer.MaxChannels))
	}
	if cfg.Scheduler.ScreenWidth < 0 {
		errs = append(errs, fmt.Errorf("scheduler.screen_width must not be negative, got %g", cfg.Scheduler.ScreenWidth))
	}
	if cfg.Scheduler.Volume < 0 || cfg.Scheduler.Volume > 1 {
		errs = append(errs, fmt.Errorf("scheduler.volume must be within [0, 1], got %g", cfg.Scheduler.Volume))
	}

	// Sounds
	seen := make(map[string]int, len(cfg.Sounds))
	for i, s := range cfg.Sounds {
		prefix := fmt.Sprintf("sounds[%d]", i)
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", prefix))
		} else if j, dup := seen[s.Name]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate name %q (first defined at sounds[%d])", prefix, s.Name, j))
		} else {
			seen[s.Name] = i
		}
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("%s: path is required", prefix))
		}
		if s.Priority < 0 || s.Priority > 2 {
			errs = append(errs, fmt.Errorf("%s: priority must be 0, 1 or 2, got %d", prefix, s.Priority))
		}
		if v := s.Gain(); v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s: volume must be within [0, 1], got %g", prefix, v))
		}
		if s.FadeInMS < 0 {
			errs = append(errs, fmt.Errorf("%s: fade_in_ms must not be negative, got %d", prefix, s.FadeInMS))
		}
		if s.PanX != nil && cfg.Scheduler.ScreenWidth <= 0 {
			errs = append(errs, fmt.Errorf("%s: pan_x needs a positive scheduler.screen_width", prefix))
		}
	}

	return errors.Join(errs...)
}
