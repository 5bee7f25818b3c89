// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package tt packages the TOP chip for a Tiny Tapeout tile.
//
// A tile exposes 8 dedicated inputs, 8 dedicated outputs and 8 bidirectional
// IOs. The SPI bus is wired to ui_in[0] (cs) and ui_in[1] (copi), the LED
// channels to uo_out. Bidirectional IOs are unused and configured as inputs.
package tt

import (
	"io"
	"strconv"
	"text/template"

	"github.com/db47h/ledspi"
	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/internal/config"
	"github.com/pkg/errors"
)

// MaxChannels is the number of dedicated outputs of a tile.
const MaxChannels = 8

// Wrapper returns a chip with the pinout of a Tiny Tapeout tile around the
// TOP chip of the given design.
//
//	Inputs: ui_in[8], uio_in[8], ena, rst_n
//	Outputs: uo_out[8], uio_out[8], uio_oe[8]
//
func Wrapper(name string, d ledspi.Design) (hwsim.NewPartFn, error) {
	if d.Channels > MaxChannels {
		return nil, errors.Errorf("%d channels do not fit in %d outputs", d.Channels, MaxChannels)
	}
	top, err := ledspi.New(d)
	if err != nil {
		return nil, err
	}
	n := strconv.Itoa(d.Channels)
	parts := hwsim.Parts{
		hwlib.Not("in=rst_n, out=rst"),
		top("rst=rst, cs=ui_in[0], copi=ui_in[1], out=uo_out[0.." + strconv.Itoa(d.Channels-1) + "]"),
		hwlib.ConstN(8, 0)("out=uio_out"),
		hwlib.ConstN(8, 0)("out=uio_oe"),
	}
	if d.Channels < MaxChannels {
		parts = append(parts, hwlib.ConstN(MaxChannels-d.Channels, 0)("out=uo_out["+n+"..7]"))
	}
	return hwsim.Chip(name, "ui_in[8], uio_in[8], ena, rst_n", "uo_out[8], uio_out[8], uio_oe[8]", parts...)
}

var wrapperTmpl = template.Must(template.New("wrapper").Parse(`/*
 * Copyright (c) {{.Project.Year}} {{.Project.Author}}
 * SPDX-License-Identifier: {{.Project.License}}
 *
 * {{.Project.Title}}
 */

` + "`" + `default_nettype none

module {{.Project.TopModule}} (
    input  wire [7:0] ui_in,    // Dedicated inputs
    output wire [7:0] uo_out,   // Dedicated outputs
    input  wire [7:0] uio_in,   // IOs: Input path
    output wire [7:0] uio_out,  // IOs: Output path
    output wire [7:0] uio_oe,   // IOs: Enable path (active high: 0=input, 1=output)
    input  wire       ena,      // always 1 when the design is powered, so you can ignore it
    input  wire       clk,      // clock
    input  wire       rst_n     // reset_n - low to reset
);

  wire rst = !rst_n;

  top core (
    .clk(clk),
    .rst(rst),
    .cs(ui_in[0]),
    .copi(ui_in[1]),
    .out(uo_out[{{.MSB}}:0])
  );
{{if lt .Channels 8}}
  assign uo_out[7:{{.Channels}}] = {{.Unused}}'b0;
{{end}}
  // All other output pins must be assigned to 0 when not used
  assign uio_out = 8'b0;
  assign uio_oe  = 8'b0;

  // List all unused inputs to prevent warnings
  wire _unused = &{ena, ui_in[7:2], uio_in, 1'b0};

endmodule
`))

// Render writes the Verilog source of the tile wrapper to w. The wrapper
// instantiates the core module "top", whose ports are clk, rst, cs, copi and
// out[Channels].
//
func Render(w io.Writer, p config.Project, d ledspi.Design) error {
	if d.Channels <= 0 || d.Channels > MaxChannels {
		return errors.Errorf("%d channels do not fit in %d outputs", d.Channels, MaxChannels)
	}
	err := wrapperTmpl.Execute(w, struct {
		Project  config.Project
		Channels int
		MSB      int
		Unused   int
	}{p, d.Channels, d.Channels - 1, MaxChannels - d.Channels})
	return errors.Wrap(err, "render wrapper")
}
