// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ws2811

import (
	"strconv"

	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
)

// WidthBits is the size of the word width parameter bus.
//
const WidthBits = 6

// Channel returns a WS2811 channel encoder for words of up to maxWidth bits.
// The encoder is clocked on the raising edge. Its output is combinational and
// follows the registered state within the same cycle.
//
//	Inputs: rst, enable, data[maxWidth], width[6]
//	Outputs: out, idle
//
func Channel(maxWidth int, t Timing) hwsim.NewPartFn {
	if err := t.Validate(); err != nil {
		panic(err)
	}
	return (&hwsim.PartSpec{
		Name:    "WS2811",
		Inputs:  hwsim.IO("rst, enable, data[" + strconv.Itoa(maxWidth) + "], width[" + strconv.Itoa(WidthBits) + "]"),
		Outputs: hwsim.IO("out, idle"),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			rst, enable := s.Pin("rst"), s.Pin("enable")
			data, width := s.Bus("data", maxWidth), s.Bus("width", WidthBits)
			out, idle := s.Pin("out"), s.Pin("idle")

			e := NewEncoder(t)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					w := int(hwlib.Uint64(c, width))
					if w > maxWidth {
						w = maxWidth
					}
					if c.AtTick() {
						e = e.Next(Input{
							Reset:  c.Get(rst),
							Enable: c.Get(enable),
							Data:   hwlib.Uint64(c, data),
							Width:  w,
						})
					}
					c.Set(out, e.Out(w))
					c.Set(idle, e.Idle())
				}}
		}}).NewPart
}
