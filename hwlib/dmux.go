// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ledspi/hwsim"
)

// DMuxNWay returns a N-way demultiplexer. Selector values that do not map to
// an output select none.
//
//	Inputs: in, sel[selBits]
//	Outputs: out[ways]
//	Function: for i := range out { out[i] = in && sel == i }
//
func DMuxNWay(ways, selBits int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "DMux" + strconv.Itoa(ways) + "Way",
		Inputs:  append([]string{pIn}, bus(selBits, pSel)...),
		Outputs: bus(ways, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in, sel, out := s.Pin(pIn), s.Bus(pSel, selBits), s.Bus(pOut, ways)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					v := c.Get(in)
					n := Uint64(c, sel)
					for i, o := range out {
						c.Set(o, v && n == uint64(i))
					}
				}}
		}}).NewPart
}
