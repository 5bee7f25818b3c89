package hwtest_test

import (
	"testing"

	hl "github.com/db47h/ledspi/hwlib"
	hw "github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/hwtest"
)

func TestComparePart(t *testing.T) {
	// De Morgan: a || b == !(!a && !b)
	or, err := hw.Chip("NAND_OR", "a, b", "out",
		hl.Not("in=a, out=na"),
		hl.Not("in=b, out=nb"),
		hl.Nand("a=na, b=nb, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 8, hl.Or, or)
}

func TestComparePart_bus(t *testing.T) {
	// two level demultiplexer against the flat one.
	dmux4, err := hw.Chip("DMUX4_TREE", "in, sel[2]", "out[4]",
		hl.DMuxNWay(2, 1)("in=in, sel[0]=sel[1], out[0]=lo, out[1]=hi"),
		hl.DMuxNWay(2, 1)("in=lo, sel[0]=sel[0], out[0]=out[0], out[1]=out[1]"),
		hl.DMuxNWay(2, 1)("in=hi, sel[0]=sel[0], out[0]=out[2], out[1]=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 8, hl.DMuxNWay(4, 2), dmux4)
}
