// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/ledspi/hwsim"
)

// unary and binary gates are single component parts whose output follows
// their inputs within the same simulation step.

func unary(name string, op func(bool) bool) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  []string{pIn},
		Outputs: []string{pOut},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in, out := s.Pin(pIn), s.Pin(pOut)
			return []hwsim.Component{func(c *hwsim.Circuit) {
				c.Set(out, op(c.Get(in)))
			}}
		},
	}
}

func binary(name string, op func(a, b bool) bool) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  []string{pA, pB},
		Outputs: []string{pOut},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
			return []hwsim.Component{func(c *hwsim.Circuit) {
				c.Set(out, op(c.Get(a), c.Get(b)))
			}}
		},
	}
}

var (
	notSpec  = unary("NOT", func(in bool) bool { return !in })
	andSpec  = binary("AND", func(a, b bool) bool { return a && b })
	nandSpec = binary("NAND", func(a, b bool) bool { return !(a && b) })
	orSpec   = binary("OR", func(a, b bool) bool { return a || b })
)

// Not returns an inverter. The ledspi top level uses it to turn the active low
// reset of the tile into the active high reset of the design.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hwsim.Part { return notSpec.NewPart(w) }

// And returns a two input AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) hwsim.Part { return andSpec.NewPart(w) }

// Nand returns a two input NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) hwsim.Part { return nandSpec.NewPart(w) }

// Or returns a two input OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) hwsim.Part { return orSpec.NewPart(w) }
