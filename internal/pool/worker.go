package pool

import (
	"log/slog"
)

// worker loops dequeue → run until the queue is closed and drained, then
// exits. A worker never retries a job and never reports job failure upward.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// closed and drained
			p.mu.Unlock()
			slog.Debug("worker shutting down", "worker", id)
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		slog.Debug("worker got a job", "worker", id)
		job()
	}
}
