/*
Package ledspi implements a small SPI to WS2811/WS2812 LED strip bridge as a
synchronous digital circuit running on the hwsim simulator.

A bus master sends transactions made of an 8 bits command followed by one
data word, one transaction per chip select assertion. Each received word is
handed, in strict round-robin order, to one of up to 16 output channels (8 in
the default design), which streams it to its LED strip as a WS2811 bit cell
waveform:

	cs, copi ──▶ spi.CommandInterface ──word, word_complete──▶ Distributor
	                                                              │ enable[i]
	                                                              ▼
	                                       ws2811.Channel ×N ──▶ out[N]

All parts share the circuit clock. The SPI receiver updates its registers on
the falling edge, the distributor and the channel encoders on the rising
edge, so that each word complete pulse is sampled exactly once by the
channel it is routed to.

The TOP chip returned by New can be composed with other parts like any hwsim
chip:

	top, err := ledspi.New(ledspi.DefaultDesign)
	if err != nil {
		// handle error
	}
	c, err := hwsim.NewCircuit(0, 8,
		hwlib.Input(func() bool { return m.CS() })("out=cs"),
		hwlib.Input(func() bool { return m.COPI() })("out=copi"),
		top("cs=cs, copi=copi, out=out"),
		hwlib.OutputN(8, func(v uint64) { leds = v })("in=out"),
	)

Words received while the selected channel is still streaming a previous word
are dropped: there is no buffering between the receiver and the channels.
*/
package ledspi
