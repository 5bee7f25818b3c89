// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ledspi/hwsim"
)

// Uint64 reads the given pins as an unsigned integer, pins[0] being the least
// significant bit.
//
func Uint64(c *hwsim.Circuit, pins []int) uint64 {
	var v uint64
	for i := len(pins) - 1; i >= 0; i-- {
		v <<= 1
		if c.Get(pins[i]) {
			v |= 1
		}
	}
	return v
}

// SetUint64 drives pins with the bits of v, pins[0] getting the least
// significant bit. Bits of v past len(pins) are ignored.
//
func SetUint64(c *hwsim.Circuit, pins []int, v uint64) {
	for _, p := range pins {
		c.Set(p, v&1 != 0)
		v >>= 1
	}
}

// pins returns the pin names of a part side: the bare name for single pins
// (bits == 0), a bus otherwise.
func pins(name string, bits int) []string {
	if bits == 0 {
		return []string{name}
	}
	return bus(bits, name)
}

func partName(name string, bits int) string {
	if bits == 0 {
		return name
	}
	return name + strconv.Itoa(bits)
}

// source returns a part driving out[bits], or out if bits is 0, from f.
func source(name string, bits int, f func() uint64) hwsim.NewPartFn {
	outs := pins(pOut, bits)
	spec := &hwsim.PartSpec{
		Name:    partName(name, bits),
		Outputs: outs,
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			ps := make([]int, len(outs))
			for i, o := range outs {
				ps[i] = s.Pin(o)
			}
			return []hwsim.Component{func(c *hwsim.Circuit) { SetUint64(c, ps, f()) }}
		},
	}
	return spec.NewPart
}

// sink returns a part calling f with the value of in[bits], or in if bits is
// 0, on every simulation step.
func sink(name string, bits int, f func(uint64)) hwsim.NewPartFn {
	ins := pins(pIn, bits)
	spec := &hwsim.PartSpec{
		Name:   partName(name, bits),
		Inputs: ins,
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			ps := make([]int, len(ins))
			for i, n := range ins {
				ps[i] = s.Pin(n)
			}
			return []hwsim.Component{func(c *hwsim.Circuit) { f(Uint64(c, ps)) }}
		},
	}
	return spec.NewPart
}

// Input returns a single pin driven by f. Test benches use it to feed chip
// select and serial data into a design.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) hwsim.NewPartFn {
	return source("Input", 0, func() uint64 {
		if f() {
			return 1
		}
		return 0
	})
}

// Output returns a probe: f is called with the state of in on every
// simulation step.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) hwsim.NewPartFn {
	return sink("Output", 0, func(v uint64) { f(v != 0) })
}

// InputN returns a bus of the given size driven by f.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() uint64) hwsim.NewPartFn {
	return source("Input", bits, f)
}

// OutputN returns a bus probe of the given size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(uint64)) hwsim.NewPartFn {
	return sink("Output", bits, f)
}

// ConstN returns a bus tied to v, like the word width parameter of the
// design. Bits of v above bits are ignored.
//
//	Outputs: out[bits]
//	Function: out = v
//
func ConstN(bits int, v uint64) hwsim.NewPartFn {
	return source("Const", bits, func() uint64 { return v })
}
