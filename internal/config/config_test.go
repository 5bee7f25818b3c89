package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/ledspi"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledspi.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	if diff := cmp.Diff(ledspi.DefaultDesign, cfg.LedDesign()); diff != "" {
		t.Fatalf("design (-want +got):\n%s", diff)
	}
	// one frame per channel must cover the time needed to stream a word.
	if n := cfg.FrameCycles() * cfg.Design.Channels; n < ledspi.DefaultDesign.WordCycles() {
		t.Fatalf("default gap too short: %d cycles per round, need %d", n, ledspi.DefaultDesign.WordCycles())
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[project]
top_module = "tt_um_leds"
author = "someone"

[design]
channels = 4
high_cycles = 2
low_cycles = 1

[sim]
workers = 2
command = 0x42

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	exp := Default()
	exp.Project.TopModule = "tt_um_leds"
	exp.Project.Author = "someone"
	exp.Design.Channels = 4
	exp.Design.HighCycles, exp.Design.LowCycles = 2, 1
	exp.Sim.Workers = 2
	exp.Sim.Command = 0x42
	exp.Log.Level = "debug"
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
	if lvl, ok := cfg.LogLevel(); !ok || lvl != zerolog.DebugLevel {
		t.Fatalf("unexpected log level %v, %v", lvl, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	td := []struct {
		name string
		body string
		err  string
	}{
		{"syntax", "[design\n", "config parse failed"},
		{"unknown_key", "[design]\nwidth = 3\n", "unknown keys design.width"},
		{"bad_width", "[design]\nword_width = 40\n", "invalid maximum word width"},
		{"bad_timing", "[design]\nhigh_cycles = 16\nlow_cycles = 32\n", "invalid bit timing"},
		{"bad_steps", "[sim]\nsteps_per_cycle = 4\n", "steps per cycle"},
		{"bad_module", "[project]\ntop_module = \"9lives\"\n", "invalid top module name"},
		{"bad_level", "[log]\nlevel = \"loud\"\n", "invalid level"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, d.body))
			if err == nil || !strings.Contains(err.Error(), d.err) {
				t.Fatalf("expected error containing %q, got %v", d.err, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error")
	}
}
