// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML description of a sound system: output
// format, how many channels the scheduler owns, and the named sounds it can
// trigger.
package config

import (
	"log/slog"
	"time"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l to a slog level. Unknown or empty levels map to Info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the root of the configuration file.
type Config struct {
	LogLevel  LogLevel        `yaml:"log_level"`
	Mixer     MixerConfig     `yaml:"mixer"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Sounds    []SoundConfig   `yaml:"sounds"`
}

// MixerConfig describes the software mixer and the device it feeds.
type MixerConfig struct {
	// SampleRate is the output rate in Hz. Every sound is resampled to it.
	SampleRate int `yaml:"sample_rate"`

	// MaxChannels is the number of voices the mixer can play at once.
	MaxChannels int `yaml:"max_channels"`

	// BufferMS is the device buffer length. Zero lets the driver choose.
	BufferMS int `yaml:"buffer_ms"`
}

// SchedulerConfig describes the channels reserved by the scheduler.
type SchedulerConfig struct {
	// Channels is how many mixer channels the scheduler reserves.
	Channels int `yaml:"channels"`

	// ScreenWidth is the width used to turn a horizontal position into a
	// stereo pan. Zero disables panning.
	ScreenWidth float64 `yaml:"screen_width"`

	// Volume is the master volume. It scales the configured volume of
	// every triggered sound.
	Volume float64 `yaml:"volume"`
}

// SoundConfig is one named, triggerable sound.
type SoundConfig struct {
	Name     string   `yaml:"name"`
	Path     string   `yaml:"path"`
	Priority int      `yaml:"priority"`
	Loop     bool     `yaml:"loop"`
	Volume   *float64 `yaml:"volume"`
	FadeInMS int      `yaml:"fade_in_ms"`
	PanX     *float64 `yaml:"pan_x"`
	Owner    string   `yaml:"owner"`
}

// Gain is the configured volume, 1.0 when unset.
func (s SoundConfig) Gain() float64 {
	if s.Volume == nil {
		return 1
	}
	return *s.Volume
}

// FadeIn is the configured fade-in as a duration.
func (s SoundConfig) FadeIn() time.Duration {
	return time.Duration(s.FadeInMS) * time.Millisecond
}

// Default returns a configuration with no sounds.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Mixer: MixerConfig{
			SampleRate:  44100,
			MaxChannels: 32,
			BufferMS:    50,
		},
		Scheduler: SchedulerConfig{
			Channels:    8,
			ScreenWidth: 800,
			Volume:      1,
		},
	}
}

// Sound returns the sound entry called name.
func (c *Config) Sound(name string) (SoundConfig, bool) {
	for _, s := range c.Sounds {
		if s.Name == name {
			return s, true
		}
	}
	return SoundConfig{}, false
}
