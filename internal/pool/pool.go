// Package pool provides the worker pool dispatching one conversion job per
// discovered file.
//
// A pool is either disabled (size 1: every job runs synchronously on the
// submitting goroutine, no workers, no queue) or active (size N>1: N
// long-lived workers consume one shared unbounded queue). The mode is fixed
// at construction. Size 0 resolves to the maximum available parallelism.
package pool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Job is one deferred unit of work. The pool knows nothing about what a job
// does and never observes its outcome; jobs report success or failure through
// their own logging.
type Job func()

// ErrPoolClosed is returned by Execute once the queue no longer accepts jobs.
// The pool is unusable at that point; this is not a retryable condition.
var ErrPoolClosed = errors.New("pool closed: no workers accepting jobs")

// maxWorkers caps the resolved worker count when size 0 asks for maximum
// parallelism.
const maxWorkers = 255

// Pool distributes jobs across a fixed set of workers, or runs them inline
// when disabled. The queue is unbounded, so Execute never blocks in active
// mode; the single lock guards the consumer side shared by all workers.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool

	size int // 1 means disabled
	wg   sync.WaitGroup
}

// New creates a pool with the given concurrency:
//   - 0: use maximum available hardware parallelism, resolved once here and
//     clamped to 255; fails if parallelism cannot be determined
//   - 1: disabled mode, no workers are spawned and no queue is created
//   - N>1: active mode with exactly N workers, spawned up front
func New(size int) (*Pool, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid pool size %d", size)
	}
	if size == 0 {
		n := runtime.NumCPU()
		if n < 1 {
			return nil, errors.New("unable to determine available parallelism")
		}
		size = min(n, maxWorkers)
	}

	p := &Pool{size: size}
	if size == 1 {
		return p, nil
	}

	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(size)
	for id := 1; id <= size; id++ {
		go p.worker(id)
	}
	return p, nil
}

// Execute runs job. In disabled mode the job runs to completion on the
// calling goroutine before Execute returns. In active mode the job is
// enqueued for whichever worker next becomes free and Execute returns
// immediately; ErrPoolClosed is the only failure.
func (p *Pool) Execute(job Job) error {
	if p.Sequential() {
		job()
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.queue = append(p.queue, job)
	p.cond.Signal()
	return nil
}

// Close shuts the pool down: it first closes the queue so idle workers wake
// up and no further jobs can be enqueued, then joins every worker, blocking
// until all queued and in-flight jobs have finished. Jobs are never
// cancelled; a stalled job stalls its worker until it returns. Close is
// idempotent and a no-op in disabled mode.
func (p *Pool) Close() {
	if p.Sequential() {
		return
	}

	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

// Sequential reports whether the pool runs jobs synchronously on the
// submitting goroutine.
func (p *Pool) Sequential() bool {
	return p.size == 1
}

// Size returns the worker count the pool was constructed with.
func (p *Pool) Size() int {
	return p.size
}

// String describes the pool mode in one line for operator-facing logs.
func (p *Pool) String() string {
	if p.Sequential() {
		return "concurrency disabled: running all jobs sequentially"
	}
	return fmt.Sprintf("concurrency enabled: running with %d jobs", p.size)
}
