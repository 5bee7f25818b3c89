// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

// A Component is the update function of a part. It is called once per
// simulation step, reads wire states with Circuit.Get and drives its outputs
// with Circuit.Set.
//
// Every output must be driven on every call: the circuit keeps two wire
// frames and swaps them after each step, so an output left alone would
// revert to the value it had two steps earlier.
//
type Component func(c *Circuit)

// A MountFn binds a part to the wires of its host and returns the part's
// components. It looks up wire numbers with the Socket methods and captures
// them, together with any register state, in the returned closures:
//
//	Mount: func(s *Socket) []Component {
//		rst, out := s.Pin("rst"), s.Bus("out", 8)
//		var v uint64
//		return []Component{func(c *Circuit) {
//			if c.AtTick() {
//				v++
//				if c.Get(rst) {
//					v = 0
//				}
//			}
//			hwlib.SetUint64(c, out, v)
//		}}
//	}
//
// Registers must only change at a clock edge (Circuit.AtTick or
// Circuit.AtTock) for the part to behave as synchronous logic.
//
type MountFn func(s *Socket) []Component

// A PartSpec is the blueprint of a part: its name, pin names and mount
// function. Its NewPart method is the NewPartFn used to place copies of the
// part in a chip:
//
//	var counterSpec = &PartSpec{Name: "CNT8", Inputs: IO("rst"), Outputs: IO("out[8]"), Mount: mountCounter}
//
//	chip, err := Chip("TWO", "rst", "a[8], b[8]",
//		counterSpec.NewPart("rst=rst, out=a"),
//		counterSpec.NewPart("rst=rst, out=b"),
//	)
//
type PartSpec struct {
	Name string
	// Input and output pin names. Bus pins are named "bus[0]", "bus[1]"...
	// IO builds these lists from declarations like "rst, data[24]".
	Inputs  []string
	Outputs []string
	Mount   MountFn
}

// NewPart returns a part placed with the given connections. See
// ParseConnections for the syntax. It panics if the connection string is
// malformed: connection strings are literals in the code that builds chips.
//
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(errors.Wrap(err, p.Name))
	}
	return Part{p, conns}
}

// A NewPartFn places a part in a chip with the given connections.
//
type NewPartFn func(connections string) Part

// A Part is a PartSpec placed in a chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a list of parts.
//
type Parts []Part
