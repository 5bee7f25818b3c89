// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the ledspi TOML configuration file.
//
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/ledspi"
	"github.com/db47h/ledspi/internal/logging"
	"github.com/db47h/ledspi/spi"
	"github.com/db47h/ledspi/ws2811"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config is the content of a configuration file. Each field maps to a TOML
// table of the same name.
//
type Config struct {
	Project Project `toml:"project"`
	Design  Design  `toml:"design"`
	Sim     Sim     `toml:"sim"`
	Log     Log     `toml:"log"`
}

// Project holds the Tiny Tapeout project information, used when rendering
// the Verilog wrapper.
//
type Project struct {
	TopModule string `toml:"top_module"`
	Author    string `toml:"author"`
	Title     string `toml:"title"`
	License   string `toml:"license"`
	Year      int    `toml:"year"`
}

// Design holds the parameters of the LED design. The bit cell timing is
// given in clock cycles.
//
type Design struct {
	WordWidth    int `toml:"word_width"`
	Channels     int `toml:"channels"`
	MaxWordWidth int `toml:"max_word_width"`
	HighCycles   int `toml:"high_cycles"`
	LowCycles    int `toml:"low_cycles"`
}

// Sim holds the simulation parameters.
//
type Sim struct {
	StepsPerCycle uint  `toml:"steps_per_cycle"`
	Workers       int   `toml:"workers"`
	Command       uint8 `toml:"command"`
	GapCycles     int   `toml:"gap_cycles"`
	MaxCycles     int   `toml:"max_cycles"`
}

// Log holds the logging parameters. An empty level leaves the default in
// place.
//
type Log struct {
	Level string `toml:"level"`
}

// Default returns the default configuration: the canonical design simulated
// with enough idle cycles between transactions for every word to reach its
// channel.
//
func Default() Config {
	d := ledspi.DefaultDesign
	return Config{
		Project: Project{
			TopModule: "tt_um_ws2812_spi",
			Title:     "SPI to 8x WS2812 LED strips",
			License:   "Apache-2.0",
			Year:      2024,
		},
		Design: Design{
			WordWidth:    d.WordWidth,
			Channels:     d.Channels,
			MaxWordWidth: d.MaxWordWidth,
			HighCycles:   d.Timing.High,
			LowCycles:    d.Timing.Low,
		},
		Sim: Sim{
			StepsPerCycle: ledspi.MinStepsPerCycle,
			Workers:       1,
			Command:       0x01,
			GapCycles:     d.WordCycles() / d.Channels,
			MaxCycles:     10000000,
		},
	}
}

// Load reads the configuration file at path. Settings missing from the file
// keep their default value. Unknown keys are an error.
//
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config parse failed (%s)", path)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, errors.Errorf("config %s: unknown keys %s", path, strings.Join(names, ", "))
	}
	if meta.IsDefined("project", "top_module") {
		cfg.Project.TopModule = strings.TrimSpace(cfg.Project.TopModule)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// LedDesign returns the design parameters as a ledspi.Design.
//
func (c Config) LedDesign() ledspi.Design {
	return ledspi.Design{
		WordWidth:    c.Design.WordWidth,
		Channels:     c.Design.Channels,
		MaxWordWidth: c.Design.MaxWordWidth,
		Timing:       ws2811.Timing{High: c.Design.HighCycles, Low: c.Design.LowCycles},
	}
}

// LogLevel returns the configured log level and false if none is set.
//
func (c Config) LogLevel() (zerolog.Level, bool) {
	return logging.ParseLevel(c.Log.Level)
}

// Validate checks every section and returns the first problem found.
//
func (c Config) Validate() error {
	if !isVerilogIdent(c.Project.TopModule) {
		return errors.Errorf("project: invalid top module name %q", c.Project.TopModule)
	}
	if err := c.LedDesign().Validate(); err != nil {
		return err
	}
	if c.Sim.StepsPerCycle < ledspi.MinStepsPerCycle {
		return errors.Errorf("sim: need at least %d steps per cycle, got %d", ledspi.MinStepsPerCycle, c.Sim.StepsPerCycle)
	}
	if c.Sim.GapCycles < 0 {
		return errors.Errorf("sim: invalid gap %d", c.Sim.GapCycles)
	}
	if c.Sim.MaxCycles <= 0 {
		return errors.Errorf("sim: invalid max cycles %d", c.Sim.MaxCycles)
	}
	if c.Log.Level != "" {
		if _, ok := c.LogLevel(); !ok {
			return errors.Errorf("log: invalid level %q", c.Log.Level)
		}
	}
	return nil
}

// FrameCycles returns the number of clock cycles used by one transaction
// with the configured gap.
//
func (c Config) FrameCycles() int {
	return 1 + spi.CommandBits + 2 + c.Design.WordWidth + 2 + c.Sim.GapCycles
}

func isVerilogIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '$'):
		default:
			return false
		}
	}
	return true
}
