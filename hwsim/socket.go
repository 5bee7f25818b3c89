// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// Names of the wires available in every chip. Clk is driven by the circuit
// clock: high during the first half of each cycle.
//
const (
	False = "false"
	True  = "true"
	Clk   = "clk"
)

// wire numbers of the constants, allocated first in every circuit.
const (
	cstFalse = iota
	cstTrue
	cstClk
	cstCount
)

var constants = map[string]int{False: cstFalse, True: cstTrue, Clk: cstClk}

func isConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// A Socket is handed to PartSpec.Mount and resolves the pin names of the part
// being mounted to wire numbers in the circuit.
//
type Socket struct {
	m map[string]int
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	m := make(map[string]int, len(constants))
	for k, v := range constants {
		m[k] = v
	}
	return &Socket{m: m, c: c}
}

// Pin returns the wire connected to the named pin. It panics if the part has
// no such pin.
//
func (s *Socket) Pin(name string) int {
	if n, ok := s.m[name]; ok {
		return n
	}
	panic("no pin named " + name)
}

// Bus returns the wires connected to name[0] through name[bits-1].
//
func (s *Socket) Bus(name string, bits int) []int {
	ws := make([]int, 0, bits)
	for i := 0; i < bits; i++ {
		ws = append(ws, s.Pin(BusPinName(name, i)))
	}
	return ws
}

// wire returns the wire for the given chip-side name, allocating a new one
// on first use.
func (s *Socket) wire(name string) int {
	if n, ok := s.m[name]; ok {
		return n
	}
	n := s.c.allocPin()
	s.m[name] = n
	return n
}
