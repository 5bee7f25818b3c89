// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strings"

	"github.com/pkg/errors"
)

// a wire connects a part pin to a wire in the host chip namespace.
type wire struct {
	pin  string
	name string
}

type subPart struct {
	spec  *PartSpec
	wires []wire
}

type chip struct {
	PartSpec
	parts []subPart
}

func (c *chip) mount(s *Socket) []Component {
	var cs []Component
	for _, p := range c.parts {
		sub := newSocket(s.c)
		for _, w := range p.wires {
			sub.m[w.pin] = s.wire(w.name)
		}
		// unconnected inputs read false, unconnected outputs get a private wire.
		for _, in := range p.spec.Inputs {
			if _, ok := sub.m[in]; !ok {
				sub.m[in] = cstFalse
			}
		}
		for _, out := range p.spec.Outputs {
			if _, ok := sub.m[out]; !ok {
				sub.m[out] = s.c.allocPin()
			}
		}
		cs = append(cs, p.spec.Mount(sub)...)
	}
	return cs
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip. See ParseIOSpec for the syntax of inputs and
// outputs.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Chip checks the wiring: every part pin name must exist, an internal wire
// must be driven by exactly one output and outputs cannot drive constants or
// chip inputs.
//
func Chip(name string, inputs, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	isInput := make(map[string]bool, len(ins))
	for _, in := range ins {
		isInput[in] = true
	}
	// wire name -> name of the pin driving it
	drivers := make(map[string]string)
	type read struct{ pin, wire string }
	var reads []read

	c := &chip{PartSpec: PartSpec{Name: name, Inputs: ins, Outputs: outs}}
	for _, p := range parts {
		ws, err := p.wires()
		if err != nil {
			return nil, err
		}
		for _, w := range ws {
			pn := p.Name + "." + w.pin
			if !p.isOutput(w.pin) {
				reads = append(reads, read{pn, w.name})
				continue
			}
			switch {
			case isConstant(w.name):
				return nil, errors.New(pn + ":" + w.name + ": output pin connected to constant " + w.name + " input")
			case isInput[w.name]:
				return nil, errors.New(pn + ":" + w.name + ": chip input pin used as output")
			case drivers[w.name] != "":
				return nil, errors.New(pn + ":" + w.name + ": output pin already used as output by " + drivers[w.name])
			}
			drivers[w.name] = pn
		}
		c.parts = append(c.parts, subPart{p.PartSpec, ws})
	}

	for _, r := range reads {
		if isConstant(r.wire) || isInput[r.wire] || drivers[r.wire] != "" {
			continue
		}
		return nil, errors.New("pin " + r.wire + " not connected to any output (read by " + r.pin + ")")
	}

	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

// wires resolves the connections of p into individual pin to wire mappings.
func (p Part) wires() ([]wire, error) {
	var ws []wire
	seen := make(map[string]bool)
	for _, conn := range p.Conns {
		ks, bus, err := p.expandPin(conn.PP)
		if err != nil {
			return nil, errors.Wrap(err, p.Name)
		}
		vs, err := expandRange(conn.CP)
		if err != nil {
			return nil, errors.Wrap(err, p.Name)
		}
		// whole bus to bare wire name: wire becomes a bus of the same width,
		// including 1 bit buses.
		if bus && len(vs) == 1 && !isConstant(conn.CP) && !strings.ContainsRune(conn.CP, '[') {
			vs = make([]string, len(ks))
			for i := range vs {
				vs[i] = BusPinName(conn.CP, i)
			}
		}
		switch {
		case len(ks) == len(vs):
			for i := range ks {
				ws = append(ws, wire{ks[i], vs[i]})
			}
		case len(vs) == 1:
			for _, k := range ks {
				ws = append(ws, wire{k, vs[0]})
			}
		default:
			return nil, errors.New("pin count mismatch in pin mapping " + p.Name + ": " + conn.PP + "=" + conn.CP)
		}
	}
	for _, w := range ws {
		if !p.hasPin(w.pin) {
			return nil, errors.New("invalid pin name " + w.pin + " for part " + p.Name)
		}
		if seen[w.pin] {
			return nil, errors.New("pin " + w.pin + " of part " + p.Name + " connected more than once")
		}
		seen[w.pin] = true
	}
	return ws, nil
}

// expandPin expands a part side pin name. A bare bus name expands to the
// whole bus.
func (p Part) expandPin(name string) (pins []string, bus bool, err error) {
	if strings.ContainsRune(name, '[') || p.hasPin(name) {
		pins, err = expandRange(name)
		return pins, false, err
	}
	n := p.busWidth(name)
	if n == 0 {
		return nil, false, errors.New("invalid pin name " + name + " for part " + p.Name)
	}
	pins = make([]string, n)
	for i := range pins {
		pins[i] = BusPinName(name, i)
	}
	return pins, true, nil
}

func (p Part) hasPin(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	return p.isOutput(name)
}

func (p Part) isOutput(name string) bool {
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p Part) busWidth(name string) int {
	n := 0
	for p.hasPin(BusPinName(name, n)) {
		n++
	}
	return n
}
