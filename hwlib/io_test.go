package hwlib_test

import (
	"testing"
	"testing/quick"

	hw "github.com/db47h/ledspi/hwsim"
	hl "github.com/db47h/ledspi/hwlib"
)

func TestInputN(t *testing.T) {
	var in, out uint64
	c, err := hw.NewCircuit(1, testTPC,
		hl.InputN(16, func() uint64 { return in })("out[0..15]= t[0..15]"),
		hl.OutputN(16, func(n uint64) { out = n })("in = t"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	f := func(v uint16) bool {
		in = uint64(v)
		c.TickTock()
		return out == in
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestConstN(t *testing.T) {
	var out uint64
	c, err := hw.NewCircuit(1, testTPC,
		hl.ConstN(6, 24+64)("out=w"),
		hl.OutputN(6, func(n uint64) { out = n })("in=w"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.TickTock()
	if out != 24 {
		t.Fatalf("expected 24, got %d", out)
	}
}
