package hwlib_test

import (
	"strings"
	"testing"

	hl "github.com/db47h/ledspi/hwlib"
	hw "github.com/db47h/ledspi/hwsim"
)

const testTPC = 8

// truthTable runs every input combination through gate and returns one string
// per output, with one '0' or '1' per combination. The first input is the
// most significant bit of the combination number.
func truthTable(t *testing.T, gate hw.NewPartFn) []string {
	t.Helper()
	spec := gate("").PartSpec
	var (
		in    uint64
		outs  = make([]bool, len(spec.Outputs))
		conns []string
		parts hw.Parts
	)
	for i, n := range spec.Inputs {
		bit := uint(len(spec.Inputs) - 1 - i)
		parts = append(parts, hl.Input(func() bool { return in>>bit&1 != 0 })("out="+n))
		conns = append(conns, n+"="+n)
	}
	for i, n := range spec.Outputs {
		o := &outs[i]
		parts = append(parts, hl.Output(func(v bool) { *o = v })("in="+n))
		conns = append(conns, n+"="+n)
	}
	c, err := hw.NewCircuit(1, testTPC, append(parts, gate(strings.Join(conns, ",")))...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	tables := make([]strings.Builder, len(outs))
	for in = 0; in < 1<<uint(len(spec.Inputs)); in++ {
		c.TickTock()
		for i, o := range outs {
			if o {
				tables[i].WriteByte('1')
			} else {
				tables[i].WriteByte('0')
			}
		}
	}
	r := make([]string, len(tables))
	for i := range tables {
		r[i] = tables[i].String()
	}
	return r
}

func TestGates(t *testing.T) {
	high, err := hw.Chip("HIGH", "a", "out", hl.And("a=true, b=true, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	low, err := hw.Chip("LOW", "a", "out", hl.Or("a=false, b=false, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	xor, err := hw.Chip("XOR", "a, b", "out",
		hl.Nand("a=a, b=b, out=ab"),
		hl.Nand("a=a, b=ab, out=w0"),
		hl.Nand("a=b, b=ab, out=w1"),
		hl.Nand("a=w0, b=w1, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name string
		gate hw.NewPartFn
		want []string
	}{
		{"not", hl.Not, []string{"10"}},
		{"and", hl.And, []string{"0001"}},
		{"nand", hl.Nand, []string{"1110"}},
		{"or", hl.Or, []string{"0111"}},
		{"xor", xor, []string{"0110"}},
		{"high", high, []string{"11"}},
		{"low", low, []string{"00"}},
		// inputs in, sel[0]
		{"dmux2", hl.DMuxNWay(2, 1), []string{"0010", "0001"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			got := truthTable(t, d.gate)
			for i := range d.want {
				if got[i] != d.want[i] {
					t.Errorf("output %d: got %s, want %s", i, got[i], d.want[i])
				}
			}
		})
	}
}
