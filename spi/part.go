// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import (
	"strconv"

	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
)

// pin names
const (
	pRst          = "rst"
	pCS           = "cs"
	pCOPI         = "copi"
	pWidth        = "width"
	pCommand      = "command"
	pCommandReady = "command_ready"
	pWord         = "word"
	pWordComplete = "word_complete"
	pIdle         = "idle"
	pStalled      = "stalled"
)

// CommandInterface returns an SPI command interface accepting words of up to
// maxWidth bits.
//
// The receiver samples its inputs on the falling edge of the clock, half a
// cycle ahead of parts clocked on the raising edge. Its command and word
// outputs are registered and stay stable for a whole cycle, from one falling
// edge to the next, so that raising edge parts sample each pulse exactly once.
//
//	Inputs: rst, cs, copi, width[6]
//	Outputs: command[8], command_ready, word[maxWidth], word_complete, idle, stalled
//
func CommandInterface(maxWidth int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "SPICommandInterface" + strconv.Itoa(maxWidth),
		Inputs:  hwsim.IO("rst, cs, copi, width[" + strconv.Itoa(WidthBits) + "]"),
		Outputs: hwsim.IO("command[8], command_ready, word[" + strconv.Itoa(maxWidth) + "], word_complete, idle, stalled"),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			rst, cs, copi := s.Pin(pRst), s.Pin(pCS), s.Pin(pCOPI)
			width := s.Bus(pWidth, WidthBits)
			command, cmdReady := s.Bus(pCommand, CommandBits), s.Pin(pCommandReady)
			word, complete := s.Bus(pWord, maxWidth), s.Pin(pWordComplete)
			idle, stalled := s.Pin(pIdle), s.Pin(pStalled)

			r := NewReceiver(maxWidth)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if c.AtTock() {
						r = r.Next(Input{
							Reset: c.Get(rst),
							CS:    c.Get(cs),
							COPI:  c.Get(copi),
							Width: int(hwlib.Uint64(c, width)),
						})
					}
					hwlib.SetUint64(c, command, uint64(r.Command()))
					c.Set(cmdReady, r.CommandReady())
					hwlib.SetUint64(c, word, r.Word())
					c.Set(complete, r.WordComplete())
					c.Set(idle, r.Idle())
					c.Set(stalled, r.Stalled())
				}}
		}}).NewPart
}
