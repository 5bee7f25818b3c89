// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledspi

import (
	"strconv"

	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/spi"
	"github.com/db47h/ledspi/ws2811"
	"github.com/pkg/errors"
)

// SelBits is the width of the channel selector.
//
const SelBits = 4

// MaxChannels is the maximum number of output channels.
//
const MaxChannels = 1 << SelBits

// MinStepsPerCycle is the minimum number of simulation steps per clock cycle
// for a circuit running a TOP chip. The word complete pulse crosses from the
// falling edge receiver to the raising edge encoders through the distributor
// logic and must settle within half a cycle.
//
const MinStepsPerCycle = 8

// Design holds the build parameters of the TOP chip.
//
type Design struct {
	WordWidth    int // width of the data words, in bits
	Channels     int // number of output channels
	MaxWordWidth int // width of the received word bus
	Timing       ws2811.Timing
}

// DefaultDesign is the canonical design: 24 bits words (one GRB pixel) sent
// round-robin to 8 channels.
//
var DefaultDesign = Design{
	WordWidth:    24,
	Channels:     8,
	MaxWordWidth: 32,
	Timing:       ws2811.Timing32x16,
}

// Validate checks the design parameters.
//
func (d Design) Validate() error {
	if d.WordWidth <= 0 || d.WordWidth >= 1<<spi.WidthBits {
		return errors.Errorf("invalid word width %d", d.WordWidth)
	}
	if d.MaxWordWidth < d.WordWidth || d.MaxWordWidth > 64 {
		return errors.Errorf("invalid maximum word width %d for %d bits words", d.MaxWordWidth, d.WordWidth)
	}
	if d.Channels <= 0 || d.Channels > MaxChannels {
		return errors.Errorf("invalid channel count %d", d.Channels)
	}
	return errors.Wrap(d.Timing.Validate(), "design")
}

// WordCycles returns the number of clock cycles needed by a channel to stream
// one word.
//
func (d Design) WordCycles() int {
	return d.WordWidth * d.Timing.Cell()
}

// Distributor returns the round-robin distributor for the given number of
// channels. Each strobe pulse is routed to the selected channel's enable
// output, and the selector advances to the next channel on the following
// raising edge of the clock.
//
//	Inputs: rst, strobe
//	Outputs: enable[channels], sel[4]
//
func Distributor(channels int) (hwsim.NewPartFn, error) {
	if channels <= 0 || channels > MaxChannels {
		return nil, errors.Errorf("invalid channel count %d", channels)
	}
	return hwsim.Chip("DISTRIBUTOR", "rst, strobe", "enable["+strconv.Itoa(channels)+"], sel["+strconv.Itoa(SelBits)+"]",
		hwlib.Counter(SelBits, uint64(channels))("rst=rst, inc=strobe, out=sel"),
		hwlib.DMuxNWay(channels, SelBits)("in=strobe, sel=sel, out=enable"),
	)
}

// New returns the TOP chip for the given design.
//
//	Inputs: rst, cs, copi
//	Outputs: out[Channels], ch_idle[Channels], idle, stalled, command[8],
//	         command_ready, word[MaxWordWidth], word_complete, sel[4]
//
// The word width is hardwired. The received word bus feeds all channels;
// only the channel whose enable input is high latches it.
//
func New(d Design) (hwsim.NewPartFn, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	dist, err := Distributor(d.Channels)
	if err != nil {
		return nil, err
	}
	n := strconv.Itoa(d.Channels)
	parts := hwsim.Parts{
		hwlib.ConstN(spi.WidthBits, uint64(d.WordWidth))("out=width"),
		spi.CommandInterface(d.MaxWordWidth)("rst=rst, cs=cs, copi=copi, width=width, " +
			"command=command, command_ready=command_ready, word=word, word_complete=word_complete, " +
			"idle=idle, stalled=stalled"),
		dist("rst=rst, strobe=word_complete, enable=enable, sel=sel"),
	}
	ch := ws2811.Channel(d.MaxWordWidth, d.Timing)
	for i := 0; i < d.Channels; i++ {
		is := strconv.Itoa(i)
		parts = append(parts, ch("rst=rst, enable=enable["+is+"], data=word, width=width, out=out["+is+"], idle=ch_idle["+is+"]"))
	}
	return hwsim.Chip("TOP", "rst, cs, copi",
		"out["+n+"], ch_idle["+n+"], idle, stalled, command[8], command_ready, "+
			"word["+strconv.Itoa(d.MaxWordWidth)+"], word_complete, sel["+strconv.Itoa(SelBits)+"]",
		parts...)
}
