// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sim runs the TOP chip against a stream of words sent by a
// simulated bus master and collects what each channel emits.
//
package sim

import (
	"context"
	"strconv"

	"github.com/db47h/ledspi"
	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/internal/config"
	"github.com/db47h/ledspi/spi"
	"github.com/db47h/ledspi/trace"
	"github.com/db47h/ledspi/ws2811"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Names of the signals recorded by Run.
//
const (
	SigCS           = "cs"
	SigCOPI         = "copi"
	SigIdle         = "idle"
	SigStalled      = "stalled"
	SigCommand      = "command"
	SigCommandReady = "command_ready"
	SigWord         = "word"
	SigWordComplete = "word_complete"
	SigSel          = "sel"
	SigOut          = "out"
	SigChIdle       = "ch_idle"
)

// Options configures a simulation run.
//
type Options struct {
	Design        ledspi.Design
	StepsPerCycle uint
	Workers       int
	Command       uint8
	Gap           int // idle cycles between transactions
	MaxCycles     int
	// Trace receives the traced signals. If nil, a private recorder is used.
	Trace *trace.Recorder
}

// OptionsFromConfig returns the run options set by cfg. Trace is left nil.
//
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Design:        cfg.LedDesign(),
		StepsPerCycle: cfg.Sim.StepsPerCycle,
		Workers:       cfg.Sim.Workers,
		Command:       cfg.Sim.Command,
		Gap:           cfg.Sim.GapCycles,
		MaxCycles:     cfg.Sim.MaxCycles,
	}
}

// A Delivery is a word handed over to a channel.
//
type Delivery struct {
	Cycle   int
	Channel int
	Word    uint64
}

// Result is the outcome of a simulation run.
//
type Result struct {
	Cycles    int // clock cycles run
	Commands  int // command_ready pulses
	Delivered []Delivery
	// Channels holds the words decoded from each channel output.
	Channels [][]uint64
	// Dropped is the number of delivered words that were not streamed
	// because their channel was busy.
	Dropped int
}

// ByChannel returns the delivered words grouped by channel.
//
func (r Result) ByChannel() map[int][]uint64 {
	g := lo.GroupBy(r.Delivered, func(d Delivery) int { return d.Channel })
	return lo.MapValues(g, func(ds []Delivery, _ int) []uint64 {
		return lo.Map(ds, func(d Delivery, _ int) uint64 { return d.Word })
	})
}

// Run sends each word in its own transaction and runs the circuit until all
// channels are done streaming.
//
func Run(ctx context.Context, opts Options, words []uint64, log zerolog.Logger) (Result, error) {
	d := opts.Design
	if err := d.Validate(); err != nil {
		return Result{}, err
	}
	if opts.StepsPerCycle < ledspi.MinStepsPerCycle {
		return Result{}, errors.Errorf("need at least %d steps per cycle", ledspi.MinStepsPerCycle)
	}
	if opts.MaxCycles <= 0 {
		return Result{}, errors.Errorf("invalid max cycles %d", opts.MaxCycles)
	}
	m, err := spi.NewMaster(d.WordWidth, opts.Gap)
	if err != nil {
		return Result{}, err
	}
	m.SendWords(opts.Command, words...)

	top, err := ledspi.New(d)
	if err != nil {
		return Result{}, err
	}
	rec := opts.Trace
	if rec == nil {
		rec = trace.New()
	}
	n := d.Channels
	chs := "[0.." + strconv.Itoa(n-1) + "]"
	c, err := hwsim.NewCircuit(opts.Workers, opts.StepsPerCycle,
		hwlib.Input(m.CS)("out=cs"),
		hwlib.Input(m.COPI)("out=copi"),
		top("cs=cs, copi=copi, out=out, ch_idle=ch_idle, idle=idle, stalled=stalled, command=command, "+
			"command_ready=command_ready, word=word, word_complete=word_complete, sel=sel"),
		rec.Probe(SigCS, 1)("in=cs"),
		rec.Probe(SigCOPI, 1)("in=copi"),
		rec.Probe(SigIdle, 1)("in=idle"),
		rec.Probe(SigStalled, 1)("in=stalled"),
		rec.Probe(SigCommand, spi.CommandBits)("in=command"),
		rec.Probe(SigCommandReady, 1)("in=command_ready"),
		rec.Probe(SigWord, d.MaxWordWidth)("in=word"),
		rec.Probe(SigWordComplete, 1)("in=word_complete"),
		rec.Probe(SigSel, ledspi.SelBits)("in=sel"),
		rec.Probe(SigOut, n)("in=out"+chs),
		rec.Probe(SigChIdle, n)("in=ch_idle"+chs),
	)
	if err != nil {
		return Result{}, errors.Wrap(err, "build circuit")
	}
	defer c.Dispose()

	log.Info().
		Int("words", len(words)).
		Int("channels", n).
		Int("word_width", d.WordWidth).
		Int("frame_cycles", m.FrameCycles()).
		Uint("spc", c.SPC()).
		Int("components", c.Size()).
		Msg("simulation started")

	var (
		res     Result
		done    bool
		lastErr error
	)
	allIdle := uint64(1)<<uint(n) - 1
	// last returns the latest sample of a signal. The first error is kept
	// and stops the run.
	last := func(name string) uint64 {
		v, err := rec.Last(name)
		if err != nil && lastErr == nil {
			lastErr = err
		}
		return v
	}
	_, err = c.Run(ctx, opts.MaxCycles, func(cycle int) bool {
		m.Advance()
		rec.Sample()
		res.Cycles++
		if last(SigCommandReady) != 0 {
			res.Commands++
			log.Debug().Int("cycle", cycle).Str("command", "0x"+strconv.FormatUint(last(SigCommand), 16)).Msg("command received")
		}
		if last(SigWordComplete) != 0 {
			dl := Delivery{Cycle: cycle, Channel: int(last(SigSel)), Word: last(SigWord)}
			res.Delivered = append(res.Delivered, dl)
			log.Debug().Int("cycle", cycle).Int("channel", dl.Channel).Str("word", "0x"+strconv.FormatUint(dl.Word, 16)).Msg("word delivered")
		}
		done = m.Pending() == 0 && last(SigChIdle) == allIdle && last(SigOut) == 0
		return !done && lastErr == nil
	})
	if err != nil {
		return res, err
	}
	if lastErr != nil {
		return res, errors.Wrap(lastErr, "read trace")
	}
	if !done {
		return res, errors.Errorf("simulation still running after %d cycles", res.Cycles)
	}

	res.Channels = make([][]uint64, n)
	for i := range res.Channels {
		levels, err := rec.Levels(SigOut, i)
		if err != nil {
			return res, err
		}
		ws, err := ws2811.Decode(levels, d.Timing, d.WordWidth)
		if err != nil {
			return res, errors.Wrapf(err, "channel %d", i)
		}
		res.Channels[i] = ws
	}
	res.Dropped = len(res.Delivered) - lo.SumBy(res.Channels, func(ws []uint64) int { return len(ws) })

	ev := log.Info()
	if res.Dropped > 0 {
		ev = log.Warn()
	}
	ev.Int("cycles", res.Cycles).
		Int("commands", res.Commands).
		Int("delivered", len(res.Delivered)).
		Int("dropped", res.Dropped).
		Msg("simulation done")
	return res, nil
}
