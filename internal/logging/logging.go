// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logging configures the process wide zerolog logger.
//
// Libraries do not log. Commands call Configure once at startup, then use
// Logger to get the configured logger.
//
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables overriding the profile defaults. Levels use the
// zerolog names, booleans are parsed with strconv.ParseBool.
//
const (
	EnvLogLevel     = "LEDSPI_LOG_LEVEL"
	EnvLogTimestamp = "LEDSPI_LOG_TIMESTAMP"
	EnvLogNoColor   = "LEDSPI_LOG_NOCOLOR"
)

// Profile selects the default logger configuration.
//
type Profile int

// Logger profiles. Runtime logs at info level with timestamps, Test at
// debug level without.
//
const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the logger configuration. A nil Output writes to stderr.
//
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Output    io.Writer
}

var (
	configureOnce sync.Once
	mu            sync.Mutex
	logger        = zerolog.Nop()
)

// ConfigureRuntime configures the logger for commands.
//
func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

// ConfigureTests configures the logger for tests.
//
func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure sets up the logger for the given profile, with overrides from
// the environment. Only the first call has an effect.
//
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := DefaultConfig(profile)
		applyEnvOverrides(&cfg)
		set(New(cfg))
	})
}

// SetLevel changes the level of the configured logger.
//
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
}

// Logger returns the configured logger. It discards everything until
// Configure is called.
//
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func set(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// DefaultConfig returns the configuration of the given profile, before
// environment overrides.
//
func DefaultConfig(profile Profile) Config {
	cfg := Config{Output: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

// New returns a console logger for cfg.
//
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	cw := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.TimeOnly,
	}
	if !cfg.Timestamp {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	l := zerolog.New(cw).Level(cfg.Level)
	if cfg.Timestamp {
		l = l.With().Timestamp().Logger()
	}
	return l
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel parses a level name. It returns false for empty or unknown
// names.
//
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
