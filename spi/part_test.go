package spi_test

import (
	"testing"

	hl "github.com/db47h/ledspi/hwlib"
	hw "github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/spi"
	"github.com/db47h/ledspi/trace"
	"github.com/google/go-cmp/cmp"
)

func TestCommandInterface(t *testing.T) {
	m := newMaster(t, 24, 3)
	words := []uint64{0x123456, 0xFEDCBA, 0x000001}
	m.SendWords(0xA5, words...)

	rec := trace.New()
	c, err := hw.NewCircuit(2, 8,
		hl.Input(m.CS)("out=cs"),
		hl.Input(m.COPI)("out=copi"),
		hl.ConstN(spi.WidthBits, 24)("out=width"),
		spi.CommandInterface(32)("cs=cs, copi=copi, width=width, command=cmd, command_ready=ready, "+
			"word=word, word_complete=complete, idle=idle, stalled=stalled"),
		// raising edge parts must see each pulse exactly once.
		hl.Counter(8, 0)("inc=complete, out=nwords"),
		hl.Counter(8, 0)("inc=ready, out=ncmds"),
		rec.Probe("cmd", 8)("in=cmd"),
		rec.Probe("complete", 1)("in=complete"),
		rec.Probe("word", 32)("in=word"),
		rec.Probe("idle", 1)("in=idle"),
		rec.Probe("stalled", 1)("in=stalled"),
		rec.Probe("nwords", 8)("in=nwords"),
		rec.Probe("ncmds", 8)("in=ncmds"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for m.Pending() > 0 {
		c.TickTock()
		m.Advance()
		rec.Sample()
	}
	c.TickTock()
	rec.Sample()

	complete, _ := rec.Signal("complete")
	word, _ := rec.Signal("word")
	var got []uint64
	for i, v := range complete {
		if v != 0 {
			got = append(got, word[i])
		}
	}
	if diff := cmp.Diff(words, got); diff != "" {
		t.Fatalf("words (-want +got):\n%s", diff)
	}
	if idx := indexOf(complete, 1); idx != 35 {
		t.Fatalf("expected first word complete at cycle 35, got %d", idx)
	}
	nw, _ := rec.Signal("nwords")
	nc, _ := rec.Signal("ncmds")
	if n := nw[len(nw)-1]; n != 3 {
		t.Fatalf("expected 3 words counted on raising edges, got %d", n)
	}
	if n := nc[len(nc)-1]; n != 3 {
		t.Fatalf("expected 3 commands counted on raising edges, got %d", n)
	}
	cmd, _ := rec.Signal("cmd")
	if cmd[len(cmd)-1] != 0xA5 {
		t.Fatalf("expected command 0xA5, got %#x", cmd[len(cmd)-1])
	}
	idle, _ := rec.Signal("idle")
	if idle[len(idle)-1] != 1 {
		t.Fatal("expected IDLE at the end of the transactions")
	}
	stalled, _ := rec.Signal("stalled")
	if stalled[35] != 1 || stalled[36] != 0 {
		t.Fatalf("expected STALL for one cycle after the word, got %v", stalled[34:38])
	}
}

func indexOf(vs []uint64, v uint64) int {
	for i := range vs {
		if vs[i] == v {
			return i
		}
	}
	return -1
}

func TestMaster(t *testing.T) {
	if _, err := spi.NewMaster(65, 0); err == nil {
		t.Error("expected an error for a 65 bits word")
	}
	if _, err := spi.NewMaster(8, -1); err == nil {
		t.Error("expected an error for a negative gap")
	}
	m := newMaster(t, 4, 2)
	m.Send(spi.Transaction{Command: 0x81, Word: 0x9})
	if m.Pending() != m.FrameCycles() || m.FrameCycles() != 1+8+2+4+1+1+2 {
		t.Fatalf("unexpected frame length %d, %d pending", m.FrameCycles(), m.Pending())
	}
	var cs, copi []bool
	for m.Pending() > 0 {
		cs = append(cs, m.CS())
		copi = append(copi, m.COPI())
		m.Advance()
	}
	expCS := []bool{true, true, true, true, true, true, true, true, true, true, true, true, true, true, true, true, false, false, false}
	expCOPI := []bool{false, true, false, false, false, false, false, false, true, false, false, true, false, false, true, false, false, false, false}
	if diff := cmp.Diff(expCS, cs); diff != "" {
		t.Errorf("cs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(expCOPI, copi); diff != "" {
		t.Errorf("copi (-want +got):\n%s", diff)
	}
	if m.CS() || m.COPI() {
		t.Error("expected cs and copi low once the queue is empty")
	}
}
