// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package ws2811 implements a WS2811/WS2812 LED strip encoder.
//
// Each bit of a data word is sent LSB first as a bit cell of High+Low clock
// cycles. The output is high for the first High cycles of the cell for a 1
// bit, or for the first Low cycles for a 0 bit, and low for the remainder of
// the cell.
//
package ws2811

import (
	"github.com/pkg/errors"
)

// Timing is the bit cell timing, in clock cycles.
//
type Timing struct {
	High int
	Low  int
}

// Bit cell timings.
//
var (
	// Timing32x16 is the timing of the composed design.
	Timing32x16 = Timing{High: 32, Low: 16}
	// Timing2x1 is the timing of an early revision, running on a slower clock.
	Timing2x1 = Timing{High: 2, Low: 1}
)

// Cell returns the length of a bit cell.
//
func (t Timing) Cell() int { return t.High + t.Low }

// threshold returns the number of high cycles for the given bit value.
func (t Timing) threshold(bit bool) int {
	if bit {
		return t.High
	}
	return t.Low
}

// Validate checks that 0 < Low < High.
//
func (t Timing) Validate() error {
	if t.Low <= 0 || t.High <= t.Low {
		return errors.Errorf("invalid bit timing %d:%d, need 0 < low < high", t.High, t.Low)
	}
	return nil
}

// State is the state of an Encoder.
//
type State uint8

// Encoder states.
//
const (
	Idle State = iota
	Streaming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Streaming:
		return "STREAMING"
	}
	return "State(?)"
}

// Input is the set of input signals sampled by an Encoder on each clock edge.
//
type Input struct {
	Reset  bool
	Enable bool
	Data   uint64
	Width  int
}

// Encoder is the register state of a single channel encoder.
//
// Encoder values are immutable: Next returns the state for the next clock
// cycle.
//
type Encoder struct {
	timing Timing
	state  State
	word   uint64 // holding register
	bit    int    // index of the bit being sent, 0 is the LSB
	cycle  int    // cycle within the current bit cell
}

// NewEncoder returns an idle encoder using the given timing.
//
func NewEncoder(t Timing) Encoder {
	return Encoder{timing: t}
}

// Next returns the encoder state after the next clock edge.
//
// An idle encoder latches Data when Enable is high and starts streaming it.
// Once the last bit cell of a word ends, the encoder latches a new word if
// Enable is still high, or goes back to IDLE. Enable is ignored at any other
// time: a word is never interrupted.
//
func (e Encoder) Next(in Input) Encoder {
	if in.Reset {
		return Encoder{timing: e.timing}
	}
	switch e.state {
	case Idle:
		if in.Enable && in.Width > 0 {
			e.state = Streaming
			e.word = in.Data
			e.bit, e.cycle = 0, 0
		}
	case Streaming:
		if e.cycle < e.timing.Cell()-1 {
			e.cycle++
			break
		}
		e.cycle = 0
		e.bit++
		if e.bit < in.Width {
			break
		}
		e.bit = 0
		if in.Enable {
			e.word = in.Data
		} else {
			e.state = Idle
		}
	}
	return e
}

// Bit returns the value of the bit being sent. Bits past the given word width
// read as 0.
//
func (e Encoder) Bit(width int) bool {
	if e.bit >= width || e.bit >= 64 {
		return false
	}
	return e.word>>uint(e.bit)&1 != 0
}

// Out returns the level of the encoder output.
//
func (e Encoder) Out(width int) bool {
	if e.state != Streaming {
		return false
	}
	return e.cycle < e.timing.threshold(e.Bit(width))
}

// State returns the current state.
//
func (e Encoder) State() State { return e.state }

// Idle returns true if the encoder is not streaming.
//
func (e Encoder) Idle() bool { return e.state == Idle }

// Position returns the index of the bit being sent (0 is the LSB) and the
// cycle within its bit cell.
//
func (e Encoder) Position() (bit, cycle int) { return e.bit, e.cycle }
