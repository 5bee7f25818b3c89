// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"runtime"
	"sync"
)

// pool runs the components of a circuit in evenly sized batches, one batch
// per goroutine. Components of a step never observe each other's writes, so
// batches need no synchronization beyond the end of step barrier.
type pool struct {
	start []chan struct{}
	wg    sync.WaitGroup
}

func newPool(c *Circuit, workers int) *pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers > len(c.cs) {
		workers = len(c.cs)
	}
	p := &pool{}
	cs := c.cs
	for w := workers; w > 0; w-- {
		size := (len(cs) + w - 1) / w
		ch := make(chan struct{}, 1)
		p.start = append(p.start, ch)
		go p.worker(c, cs[:size], ch)
		cs = cs[size:]
	}
	return p
}

func (p *pool) worker(c *Circuit, batch []Component, start <-chan struct{}) {
	for range start {
		for _, f := range batch {
			f(c)
		}
		p.wg.Done()
	}
	p.wg.Done()
}

// run runs one step and waits for all workers to be done.
func (p *pool) run() {
	p.wg.Add(len(p.start))
	for _, ch := range p.start {
		ch <- struct{}{}
	}
	p.wg.Wait()
}

func (p *pool) stop() {
	p.wg.Add(len(p.start))
	for _, ch := range p.start {
		close(ch)
	}
	p.wg.Wait()
}
