package ws2811_test

import (
	"strings"
	"testing"

	"github.com/db47h/ledspi/ws2811"
)

// wave builds a waveform from a string: '#' is high, '.' is low.
func wave(s string) []bool {
	l := make([]bool, len(s))
	for i, r := range s {
		l[i] = r == '#'
	}
	return l
}

func TestDecode(t *testing.T) {
	td := []struct {
		name  string
		wave  string
		width int
		words []uint64
		err   string
	}{
		{"empty", "....", 2, nil, ""},
		{"two_words", "..##.#..##.##.#..#....", 2, []uint64{1, 3, 0}, ""},
		{"bad_high", "###...", 1, nil, "cycle 0: bit cell high for 3 cycles"},
		{"cut_short", "#.#..", 2, nil, "cycle 0: bit cell cut short at cycle 2"},
		{"incomplete", "##.#..##.", 2, []uint64{1}, "incomplete word: 1 bits of 2"},
		{"bad_width", "", 0, nil, "invalid word width 0"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			words, err := ws2811.Decode(wave(d.wave), ws2811.Timing2x1, d.width)
			if d.err == "" && err != nil || d.err != "" && (err == nil || !strings.Contains(err.Error(), d.err)) {
				t.Fatalf("got error %v, expected %q", err, d.err)
			}
			if len(words) != len(d.words) {
				t.Fatalf("got %v, expected %v", words, d.words)
			}
			for i := range words {
				if words[i] != d.words[i] {
					t.Fatalf("got %v, expected %v", words, d.words)
				}
			}
		})
	}
}

func TestTiming_Validate(t *testing.T) {
	for _, tm := range []ws2811.Timing{{1, 1}, {1, 2}, {2, 0}} {
		if err := tm.Validate(); err == nil {
			t.Errorf("timing %v: expected an error", tm)
		}
	}
	if err := ws2811.Timing32x16.Validate(); err != nil {
		t.Error(err)
	}
}
