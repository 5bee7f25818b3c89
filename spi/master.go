// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import (
	"github.com/pkg/errors"
)

// A Transaction is a command followed by a single data word.
//
type Transaction struct {
	Command uint8
	Word    uint64
}

type level struct {
	cs, copi bool
}

// Master is a bus master generating per-cycle chip select and data levels
// for a CommandInterface. Transactions are queued, then played one clock
// cycle at a time: read the levels with CS and COPI, run the clock for one
// cycle, then call Advance.
//
// The generated frames follow the receiver timing: one cycle for the
// receiver to leave IDLE, the command bits, two wait cycles, the data bits,
// one cycle for the completion pulse and one cycle with chip select released.
//
type Master struct {
	width int
	gap   int
	queue []level
}

// NewMaster returns a master sending words of the given width, followed by
// gap idle cycles with chip select released.
//
func NewMaster(width, gap int) (*Master, error) {
	if width < 0 || width > 64 {
		return nil, errors.Errorf("invalid word width %d", width)
	}
	if gap < 0 {
		return nil, errors.Errorf("invalid gap %d", gap)
	}
	return &Master{width: width, gap: gap}, nil
}

// FrameCycles returns the number of clock cycles used to send one
// transaction, including the trailing gap.
//
func (m *Master) FrameCycles() int {
	return 1 + CommandBits + 2 + m.width + 1 + 1 + m.gap
}

func (m *Master) push(cs, copi bool) {
	m.queue = append(m.queue, level{cs, copi})
}

func (m *Master) bits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		m.push(true, v>>uint(i)&1 != 0)
	}
}

// Send queues the given transactions.
//
func (m *Master) Send(txs ...Transaction) {
	for _, tx := range txs {
		m.push(true, false)
		m.bits(uint64(tx.Command), CommandBits)
		m.push(true, false)
		m.push(true, false)
		m.bits(tx.Word, m.width)
		m.push(true, false)
		m.push(false, false)
		m.Idle(m.gap)
	}
}

// SendWords queues one transaction per word, all with the same command.
//
func (m *Master) SendWords(cmd uint8, words ...uint64) {
	for _, w := range words {
		m.Send(Transaction{cmd, w})
	}
}

// Abort queues a transaction cut short after n bits (command and data bits
// counted together, wait cycles excluded), followed by one idle cycle.
//
func (m *Master) Abort(tx Transaction, n int) {
	m.push(true, false)
	for i := 0; i < n && i < CommandBits; i++ {
		m.push(true, tx.Command>>uint(CommandBits-1-i)&1 != 0)
	}
	if n >= CommandBits {
		m.push(true, false)
		m.push(true, false)
		for i := 0; i < n-CommandBits && i < m.width; i++ {
			m.push(true, tx.Word>>uint(m.width-1-i)&1 != 0)
		}
	}
	m.push(false, false)
}

// Idle queues n cycles with chip select released.
//
func (m *Master) Idle(n int) {
	for i := 0; i < n; i++ {
		m.push(false, false)
	}
}

// Raw queues a single cycle with the given levels.
//
func (m *Master) Raw(cs, copi bool) {
	m.push(cs, copi)
}

// CS returns the chip select level for the current cycle.
// It is low once the queue is empty.
//
func (m *Master) CS() bool {
	return len(m.queue) > 0 && m.queue[0].cs
}

// COPI returns the data level for the current cycle.
//
func (m *Master) COPI() bool {
	return len(m.queue) > 0 && m.queue[0].copi
}

// Advance moves to the next cycle.
//
func (m *Master) Advance() {
	if len(m.queue) > 0 {
		m.queue = m.queue[1:]
	}
}

// Pending returns the number of queued cycles.
//
func (m *Master) Pending() int {
	return len(m.queue)
}
