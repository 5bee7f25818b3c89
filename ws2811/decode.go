// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ws2811

import (
	"github.com/pkg/errors"
)

// Decode decodes a waveform sampled once per clock cycle into words of the
// given width, the first bit cell of a word being its LSB. Low levels before the first bit cell and after the last one
// are ignored.
//
// It returns the words decoded so far and an error if a bit cell has an
// unexpected high time, if a bit cell is cut short by the next one, or if the
// last word is incomplete.
//
func Decode(levels []bool, t Timing, width int) ([]uint64, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || width > 64 {
		return nil, errors.Errorf("invalid word width %d", width)
	}
	var (
		words []uint64
		word  uint64
		bits  int
	)
	cell := t.Cell()
	for i := 0; i < len(levels); {
		if !levels[i] {
			i++
			continue
		}
		start := i
		for i < len(levels) && levels[i] {
			i++
		}
		var bit uint64
		switch high := i - start; high {
		case t.High:
			bit = 1
		case t.Low:
		default:
			return words, errors.Errorf("cycle %d: bit cell high for %d cycles", start, high)
		}
		// the next cell may not start before the end of this one.
		end := start + cell
		for ; i < end && i < len(levels); i++ {
			if levels[i] {
				return words, errors.Errorf("cycle %d: bit cell cut short at cycle %d", start, i)
			}
		}
		word |= bit << uint(bits)
		bits++
		if bits == width {
			words = append(words, word)
			word, bits = 0, 0
		}
	}
	if bits != 0 {
		return words, errors.Errorf("incomplete word: %d bits of %d", bits, width)
	}
	return words, nil
}
