// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ledspi/hwsim"
)

// Counter returns a clocked counter. The counter value is updated on the
// raising edge of the clock and wraps to 0 after modulo-1. A modulo of 0 makes
// it wrap after 2^bits-1.
//
//	Inputs: rst, inc
//	Outputs: out[bits]
//	Function: if rst { out(t) = 0 } else if inc { out(t) = (out(t-1) + 1) % modulo }
//
func Counter(bits int, modulo uint64) hwsim.NewPartFn {
	if bits <= 0 || bits > 64 {
		panic("invalid counter size " + strconv.Itoa(bits))
	}
	mask := ^uint64(0) >> uint(64-bits)
	last := mask
	if modulo != 0 && modulo-1 < mask {
		last = modulo - 1
	}
	return (&hwsim.PartSpec{
		Name:    "Counter" + strconv.Itoa(bits),
		Inputs:  []string{pRst, pInc},
		Outputs: bus(bits, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			rst, inc, out := s.Pin(pRst), s.Pin(pInc), s.Bus(pOut, bits)
			var v uint64
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if c.AtTick() {
						switch {
						case c.Get(rst):
							v = 0
						case !c.Get(inc):
						case v >= last:
							v = 0
						default:
							v++
						}
					}
					SetUint64(c, out, v)
				}}
		}}).NewPart
}
