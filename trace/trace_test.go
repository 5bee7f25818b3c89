package trace_test

import (
	"strings"
	"testing"

	hl "github.com/db47h/ledspi/hwlib"
	hw "github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/trace"
	"github.com/google/go-cmp/cmp"
)

func record(t *testing.T, cycles int) *trace.Recorder {
	t.Helper()
	r := trace.New()
	c, err := hw.NewCircuit(1, 8,
		hl.Counter(2, 0)("inc=true, out=cnt"),
		r.Probe("cnt", 2)("in=cnt"),
		r.Probe("msb", 1)("in=cnt[1]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	for i := 0; i < cycles; i++ {
		c.TickTock()
		r.Sample()
	}
	return r
}

func TestRecorder(t *testing.T) {
	r := record(t, 6)
	if r.Cycles() != 6 {
		t.Fatalf("expected 6 cycles, got %d", r.Cycles())
	}
	cnt, err := r.Signal("cnt")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint64{1, 2, 3, 0, 1, 2}, cnt); diff != "" {
		t.Fatalf("cnt (-want +got):\n%s", diff)
	}
	msb, err := r.Levels("cnt", 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]bool{false, true, true, false, false, true}, msb); diff != "" {
		t.Fatalf("cnt[1] (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cnt", "msb"}, r.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if _, err := r.Signal("nope"); err == nil {
		t.Fatal("expected an error for an unknown signal")
	}
	if v, err := r.Last("cnt"); err != nil || v != 2 {
		t.Fatalf("expected last cnt 2, got %d, %v", v, err)
	}
	if _, err := r.Last("nope"); err == nil {
		t.Fatal("expected an error for the last sample of an unknown signal")
	}
	if _, err := trace.New().Last("cnt"); err == nil {
		t.Fatal("expected an error for an unknown signal on an empty recorder")
	}
	empty := trace.New()
	empty.Probe("x", 1)
	if _, err := empty.Last("x"); err == nil {
		t.Fatal("expected an error for a signal without samples")
	}
	if _, err := r.Levels("msb", 1); err == nil {
		t.Fatal("expected an error for an out of range bit")
	}
}

func TestRecorder_WriteVCD(t *testing.T) {
	r := record(t, 4)
	var sb strings.Builder
	if err := r.WriteVCD(&sb, "top", "1 us"); err != nil {
		t.Fatal(err)
	}
	exp := `$timescale 1 us $end
$scope module top $end
$var wire 2 ! cnt $end
$var wire 1 " msb $end
$upscope $end
$enddefinitions $end
#0
b1 !
0"
#1
b10 !
1"
#2
b11 !
#3
b0 !
0"
#4
`
	if diff := cmp.Diff(exp, sb.String()); diff != "" {
		t.Fatalf("VCD output (-want +got):\n%s", diff)
	}
}

func TestRecorder_duplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	r := trace.New()
	r.Probe("a", 1)
	r.Probe("a", 1)
}
