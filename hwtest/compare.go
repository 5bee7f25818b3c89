// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides helpers to test parts built with hwsim.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/google/go-cmp/cmp"
)

// parts with more inputs than this are tested with random vectors.
const maxExhaustive = 12

// bench drives the inputs of two parts with the same vector and records the
// outputs of each.
type bench struct {
	in   map[string]bool
	outs [2]map[string]bool
}

func (b *bench) vector(names []string) string {
	var s strings.Builder
	for _, n := range names {
		if s.Len() > 0 {
			s.WriteString(", ")
		}
		fmt.Fprintf(&s, "%s=%v", n, b.in[n])
	}
	return s.String()
}

// ComparePart checks that two combinational parts with the same pin names
// produce the same outputs for the same inputs. want is the reference part.
//
// Every input combination is tried for parts with up to 12 inputs, 4096
// random vectors otherwise.
//
func ComparePart(t *testing.T, spc uint, want, got hwsim.NewPartFn) {
	t.Helper()

	ref, dut := want(""), got("")
	if d := cmp.Diff(ref.Inputs, dut.Inputs); d != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff(ref.Outputs, dut.Outputs); d != "" {
		t.Fatalf("outputs mismatch (-want +got):\n%s", d)
	}

	b := &bench{in: make(map[string]bool)}
	var parts hwsim.Parts
	for _, n := range ref.Inputs {
		n := n
		parts = append(parts, hwlib.Input(func() bool { return b.in[n] })("out="+n))
	}
	for i, f := range []hwsim.NewPartFn{want, got} {
		out := make(map[string]bool)
		b.outs[i] = out
		conns := make([]string, 0, len(ref.Inputs)+len(ref.Outputs))
		for _, n := range ref.Inputs {
			conns = append(conns, n+"="+n)
		}
		for _, o := range ref.Outputs {
			o, w := o, fmt.Sprintf("dut%d_%s", i, strings.NewReplacer("[", "_", "]", "").Replace(o))
			conns = append(conns, o+"="+w)
			parts = append(parts, hwlib.Output(func(v bool) { out[o] = v })("in="+w))
		}
		parts = append(parts, f(strings.Join(conns, ", ")))
	}

	c, err := hwsim.NewCircuit(1, spc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	try := func(set func(i int) bool) {
		t.Helper()
		for i, n := range ref.Inputs {
			b.in[n] = set(i)
		}
		c.TickTock()
		if d := cmp.Diff(b.outs[0], b.outs[1]); d != "" {
			t.Fatalf("%s: outputs differ (-want +got):\n%s", b.vector(ref.Inputs), d)
		}
	}

	if len(ref.Inputs) <= maxExhaustive {
		for v := 0; v < 1<<uint(len(ref.Inputs)); v++ {
			try(func(i int) bool { return v>>uint(i)&1 != 0 })
		}
		return
	}
	rnd := rand.New(rand.NewSource(int64(len(ref.Inputs))))
	for k := 0; k < 1<<maxExhaustive; k++ {
		try(func(int) bool { return rnd.Intn(2) == 1 })
	}
}
