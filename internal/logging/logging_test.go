package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	td := []struct {
		in  string
		lvl zerolog.Level
		ok  bool
	}{
		{"", zerolog.InfoLevel, false},
		{" Debug ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, d := range td {
		lvl, ok := ParseLevel(d.in)
		if lvl != d.lvl || ok != d.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; expected %v, %v", d.in, lvl, ok, d.lvl, d.ok)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "1")
	cfg := DefaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv(EnvLogTimestamp, "maybe")
	cfg = DefaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if !cfg.Timestamp {
		t.Fatal("invalid boolean must not override the default")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: zerolog.InfoLevel, NoColor: true, Output: &buf})
	l.Debug().Msg("hidden")
	l.Info().Int("channel", 3).Msg("word delivered")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "word delivered") || !strings.Contains(out, "channel=3") {
		t.Fatalf("unexpected output %q", out)
	}
}
