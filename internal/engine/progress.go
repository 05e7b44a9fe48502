package engine

import "sync"

// counter turns per-chunk increments from concurrent workers into running totals.
type counter struct {
	fn    func(done, total int)
	done  int
	total int
	mu    sync.Mutex
}

func newCounter(total int, fn func(done, total int)) *counter {
	return &counter{fn: fn, total: total}
}

func (c *counter) add(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done += n
	c.fn(c.done, c.total)
}
