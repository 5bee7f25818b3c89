// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package blinky implements the classic blinking LED: a free running counter
// whose most significant bit drives the LED.
//
package blinky

import (
	"strconv"

	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/pkg/errors"
)

// Bits is the default counter size. At 12 MHz, the LED toggles about every
// 0.7 seconds.
//
const Bits = 24

// New returns a blinky chip with a counter of the given size. The LED toggles
// every 2^(bits-1) clock cycles.
//
//	Inputs: rst
//	Outputs: led
//
func New(bits int) (hwsim.NewPartFn, error) {
	if bits < 2 || bits > 64 {
		return nil, errors.Errorf("invalid counter size %d", bits)
	}
	msb := strconv.Itoa(bits - 1)
	low := "out[0.." + strconv.Itoa(bits-2) + "]=cnt[0.." + strconv.Itoa(bits-2) + "]"
	return hwsim.Chip("BLINKY", "rst", "led",
		hwlib.Counter(bits, 0)("rst=rst, inc=true, "+low+", out["+msb+"]=led"),
	)
}

// HalfPeriod returns the number of clock cycles between two LED toggles.
//
func HalfPeriod(bits int) uint64 {
	return 1 << uint(bits-1)
}
