package blinky_test

import (
	"testing"

	"github.com/db47h/ledspi/blinky"
	hl "github.com/db47h/ledspi/hwlib"
	hw "github.com/db47h/ledspi/hwsim"
)

func TestBlinky(t *testing.T) {
	const bits = 4
	b, err := blinky.New(bits)
	if err != nil {
		t.Fatal(err)
	}
	var rst, led bool
	c, err := hw.NewCircuit(1, 8,
		hl.Input(func() bool { return rst })("out=rst"),
		b("rst=rst, led=led"),
		hl.Output(func(v bool) { led = v })("in=led"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	half := int(blinky.HalfPeriod(bits))
	var toggles []int
	prev := false
	for i := 0; i < 4*half; i++ {
		c.TickTock()
		if led != prev {
			toggles = append(toggles, i)
			prev = led
		}
	}
	// the counter reads 1 after the first cycle, so the msb is set after
	// cycle half-1.
	exp := []int{half - 1, 2*half - 1, 3*half - 1, 4*half - 1}
	if len(toggles) != len(exp) {
		t.Fatalf("expected toggles at %v, got %v", exp, toggles)
	}
	for i := range exp {
		if toggles[i] != exp[i] {
			t.Fatalf("expected toggles at %v, got %v", exp, toggles)
		}
	}

	rst = true
	c.TickTock()
	c.TickTock()
	if led {
		t.Fatal("expected led off after reset")
	}
}

func TestNew_invalid(t *testing.T) {
	for _, bits := range []int{-1, 0, 1, 65} {
		if _, err := blinky.New(bits); err == nil {
			t.Errorf("%d bits: expected an error", bits)
		}
	}
}
