// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"context"
	"math/bits"

	"github.com/pkg/errors"
)

// Circuit is a runnable circuit simulation.
//
// Wire states are kept in two frames: components read the current frame (s0)
// and write the next one (s1). Step runs every component, then swaps the
// frames.
//
type Circuit struct {
	s0    []bool
	s1    []bool
	cs    []Component
	count int  // wire count
	spc   uint // steps per clock cycle, a power of two
	step  uint

	pool *pool
}

// NewCircuit builds a circuit from the given parts, wrapped into a top level
// chip with no inputs and no outputs.
//
// workers is the number of goroutines updating components. A value less or
// equal to 0 uses GOMAXPROCS goroutines.
//
// stepsPerCycle is the length of a clock cycle in simulation steps, rounded
// up to a power of two (minimum 2). Combinational paths get at most half a
// cycle to settle between a falling edge part and a raising edge part.
//
// Dispose must be called once the circuit is no longer needed.
//
func NewCircuit(workers int, stepsPerCycle uint, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}
	if stepsPerCycle < 2 {
		stepsPerCycle = 2
	}
	if stepsPerCycle&(stepsPerCycle-1) != 0 {
		stepsPerCycle = 1 << uint(bits.Len(stepsPerCycle))
	}

	c := &Circuit{count: cstCount, spc: stepsPerCycle}
	top, err := Chip("CIRCUIT", "", "", parts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	c.cs = append(top("").Mount(newSocket(c)), clock)
	c.s0 = make([]bool, c.count)
	c.s1 = make([]bool, c.count)
	c.s0[cstTrue], c.s1[cstTrue] = true, true
	c.s0[cstClk] = true

	c.pool = newPool(c, workers)
	return c, nil
}

// clock drives the clk wire: high during the first half of each cycle.
func clock(c *Circuit) {
	if c.s0[cstFalse] || !c.s0[cstTrue] {
		panic("true or false constants have been overwritten")
	}
	c.s1[cstClk] = (c.step+1)&(c.spc-1) < c.spc/2
}

// Dispose stops the worker goroutines.
//
func (c *Circuit) Dispose() {
	if c.pool != nil {
		c.pool.stop()
		c.pool = nil
	}
}

func (c *Circuit) allocPin() int {
	n := c.count
	c.count++
	return n
}

// Steps returns the number of steps run so far.
//
func (c *Circuit) Steps() uint { return c.step }

// Cycles returns the number of complete clock cycles run so far.
//
func (c *Circuit) Cycles() uint { return c.step / c.spc }

// SPC returns the number of steps per clock cycle.
//
func (c *Circuit) SPC() uint { return c.spc }

// Size returns the number of components in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }

// AtTick returns true on the first step of a clock cycle (raising edge of
// clk).
//
func (c *Circuit) AtTick() bool {
	return c.step&(c.spc-1) == 0
}

// AtTock returns true on the first step of the second half of a clock cycle
// (falling edge of clk).
//
func (c *Circuit) AtTock() bool {
	return c.step&(c.spc-1) == c.spc/2
}

// Get returns the current state of wire n.
//
func (c *Circuit) Get(n int) bool { return c.s0[n] }

// Set sets the state of wire n for the next step.
//
func (c *Circuit) Set(n int, s bool) { c.s1[n] = s }

// Toggle sets the state of wire n for the next step to the inverse of its
// current state.
//
func (c *Circuit) Toggle(n int) { c.s1[n] = !c.s0[n] }

// Step runs all components once and moves to the next step.
//
func (c *Circuit) Step() {
	c.pool.run()
	c.step++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation up to the falling edge of the clock.
//
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation up to the raising edge of the clock. Registers
// updated on the raising edge are then about to change.
//
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
//
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Run runs at most n clock cycles, calling fn after each one with the index
// of the cycle. It stops early when fn returns false, and returns the number
// of cycles run. It checks ctx for cancellation every 1024 cycles.
//
func (c *Circuit) Run(ctx context.Context, n int, fn func(cycle int) bool) (int, error) {
	for i := 0; i < n; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return i, errors.Wrapf(err, "cycle %d", i)
			}
		}
		c.TickTock()
		if fn != nil && !fn(i) {
			return i + 1, nil
		}
	}
	return n, nil
}
