// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package spi implements a command-prefixed SPI slave receiver.
//
// Each chip select assertion carries one 8 bits command followed by one data
// word of a configurable width, both sent MSB first. Transactions cut short
// by a chip select release are silently dropped.
//
package spi

// CommandBits is the size of the command that prefixes every transaction.
//
const CommandBits = 8

// WidthBits is the size of the word width parameter bus.
//
const WidthBits = 6

// State is the state of a Receiver.
//
type State uint8

// Receiver states.
//
const (
	Idle State = iota
	ReceiveCommand
	Processing
	ShiftData
	Stall
)

var stateNames = [...]string{
	Idle:           "IDLE",
	ReceiveCommand: "RECEIVE_COMMAND",
	Processing:     "PROCESSING",
	ShiftData:      "SHIFT_DATA",
	Stall:          "STALL",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

// Input is the set of input signals sampled by a Receiver on each clock edge.
//
type Input struct {
	Reset bool
	CS    bool // chip select, active high
	COPI  bool // serial data in
	Width int  // data word width in bits
}

// Receiver is the register state of the SPI command interface. The zero
// value is a receiver in IDLE state accepting words of up to 64 bits.
//
// Receiver values are immutable: Next returns the state for the next clock
// cycle.
//
type Receiver struct {
	state    State
	maxWidth int
	count    int    // bits received in the current phase
	cmdReg   uint8  // command shift register
	wordReg  uint64 // data shift register
	command  uint8
	cmdReady bool
	word     uint64
	complete bool
}

// NewReceiver returns an idle Receiver accepting words of up to maxWidth
// bits. maxWidth must be in the range [1, 64].
//
func NewReceiver(maxWidth int) Receiver {
	if maxWidth <= 0 || maxWidth > 64 {
		panic("invalid maximum word width")
	}
	return Receiver{maxWidth: maxWidth}
}

func (r Receiver) width(w int) int {
	m := r.maxWidth
	if m == 0 {
		m = 64
	}
	if w > m {
		return m
	}
	if w < 0 {
		return 0
	}
	return w
}

// Next returns the receiver state after the next clock edge.
//
func (r Receiver) Next(in Input) Receiver {
	// pulses last for one cycle unless set again below.
	r.cmdReady, r.complete = false, false

	if in.Reset {
		return Receiver{maxWidth: r.maxWidth}
	}

	var bit uint8
	if in.COPI {
		bit = 1
	}

	switch r.state {
	case Idle:
		r.count, r.cmdReg, r.wordReg = 0, 0, 0
		if in.CS {
			r.state = ReceiveCommand
		}

	case ReceiveCommand:
		if r.count < CommandBits {
			if !in.CS {
				r.state = Idle
				break
			}
			r.count++
			r.cmdReg = r.cmdReg<<1 | bit
			break
		}
		r.count = 0
		r.cmdReady = true
		r.command = r.cmdReg
		r.state = Processing

	case Processing:
		r.state = ShiftData

	case ShiftData:
		w := r.width(in.Width)
		if r.count < w {
			if !in.CS {
				r.state = Idle
				break
			}
			r.count++
			r.wordReg = r.wordReg<<1 | uint64(bit)
			break
		}
		r.count = 0
		r.complete = true
		r.word = r.wordReg & mask(w)
		r.state = Stall

	case Stall:
		if !in.CS {
			r.state = Idle
		}
	}
	return r
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// State returns the current state.
//
func (r Receiver) State() State { return r.state }

// Command returns the last command received.
//
func (r Receiver) Command() uint8 { return r.command }

// CommandReady is true during the cycle following the reception of a full
// command.
//
func (r Receiver) CommandReady() bool { return r.cmdReady }

// Word returns the last word received. It is only meaningful when
// WordComplete is true.
//
func (r Receiver) Word() uint64 { return r.word }

// WordComplete is true for a single cycle once a full data word has been
// received.
//
func (r Receiver) WordComplete() bool { return r.complete }

// Idle returns true if the receiver is waiting for a transaction.
//
func (r Receiver) Idle() bool { return r.state == Idle }

// Stalled returns true if the receiver will not accept data until chip select
// is released.
//
func (r Receiver) Stalled() bool { return r.state == Stall }
