// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records the state of circuit wires once per clock cycle and
// exports the recorded traces in Value Change Dump format.
//
package trace

import (
	"bufio"
	"io"
	"strconv"

	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/pkg/errors"
)

type signal struct {
	name   string
	width  int
	cur    uint64
	values []uint64
}

// A Recorder samples named signals. Signals are attached to a circuit with
// the parts returned by Probe, then sampled by calling Sample once per clock
// cycle, usually right after Circuit.TickTock.
//
type Recorder struct {
	signals []*signal
	index   map[string]int
	cycles  int
}

// New returns a new empty Recorder.
//
func New() *Recorder {
	return &Recorder{index: make(map[string]int)}
}

// Probe returns a part that tracks the value of a signal of the given width.
// It panics if a signal with the same name is already registered.
//
//	Inputs: in[width] (or in if width is 1)
//
func (r *Recorder) Probe(name string, width int) hwsim.NewPartFn {
	if _, ok := r.index[name]; ok {
		panic("duplicate signal name " + name)
	}
	if width <= 0 || width > 64 {
		panic("invalid signal width " + strconv.Itoa(width))
	}
	s := &signal{name: name, width: width}
	r.index[name] = len(r.signals)
	r.signals = append(r.signals, s)
	if width == 1 {
		return hwlib.Output(func(v bool) {
			s.cur = 0
			if v {
				s.cur = 1
			}
		})
	}
	return hwlib.OutputN(width, func(v uint64) { s.cur = v })
}

// Sample records the current value of all signals.
//
func (r *Recorder) Sample() {
	for _, s := range r.signals {
		s.values = append(s.values, s.cur)
	}
	r.cycles++
}

// Cycles returns the number of samples taken.
//
func (r *Recorder) Cycles() int { return r.cycles }

// Names returns the signal names in registration order.
//
func (r *Recorder) Names() []string {
	ns := make([]string, len(r.signals))
	for i, s := range r.signals {
		ns[i] = s.name
	}
	return ns
}

// Signal returns the recorded values of the named signal.
//
func (r *Recorder) Signal(name string) ([]uint64, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, errors.Errorf("unknown signal %q", name)
	}
	return r.signals[i].values, nil
}

// Last returns the most recent sample of the named signal.
//
func (r *Recorder) Last(name string) (uint64, error) {
	vs, err := r.Signal(name)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, errors.Errorf("no samples for signal %q", name)
	}
	return vs[len(vs)-1], nil
}

// Levels returns the recorded levels of a single bit of the named signal.
//
func (r *Recorder) Levels(name string, bit int) ([]bool, error) {
	vs, err := r.Signal(name)
	if err != nil {
		return nil, err
	}
	if w := r.signals[r.index[name]].width; bit < 0 || bit >= w {
		return nil, errors.Errorf("bit %d out of range for %d bits signal %q", bit, w, name)
	}
	ls := make([]bool, len(vs))
	for i, v := range vs {
		ls[i] = v&(1<<uint(bit)) != 0
	}
	return ls, nil
}

// vcdID returns the VCD identifier code of the n-th signal.
func vcdID(n int) string {
	const base = '~' - '!' + 1
	var b []byte
	for {
		b = append(b, byte('!'+n%base))
		n /= base
		if n == 0 {
			break
		}
		n--
	}
	return string(b)
}

func vcdValue(v uint64, width int) string {
	if width == 1 {
		return strconv.FormatUint(v&1, 2)
	}
	return "b" + strconv.FormatUint(v, 2) + " "
}

// WriteVCD writes the recorded traces to w in Value Change Dump format. Each
// clock cycle is one time unit of the given timescale (like "1 us"). Signals
// are declared in a single scope named after module.
//
func (r *Recorder) WriteVCD(w io.Writer, module, timescale string) error {
	bw := bufio.NewWriter(w)
	p := func(s ...string) {
		for _, str := range s {
			bw.WriteString(str)
		}
		bw.WriteByte('\n')
	}
	p("$timescale ", timescale, " $end")
	p("$scope module ", module, " $end")
	for i, s := range r.signals {
		p("$var wire ", strconv.Itoa(s.width), " ", vcdID(i), " ", s.name, " $end")
	}
	p("$upscope $end")
	p("$enddefinitions $end")

	for c := 0; c < r.cycles; c++ {
		stamp := false
		for i, s := range r.signals {
			v := s.values[c]
			if c > 0 && s.values[c-1] == v {
				continue
			}
			if !stamp {
				p("#", strconv.Itoa(c))
				stamp = true
			}
			p(vcdValue(v, s.width), vcdID(i))
		}
	}
	p("#", strconv.Itoa(r.cycles))
	return errors.Wrap(bw.Flush(), "write VCD")
}
