// Package jobs runs fire-and-forget background work, such as persisting a
// generated quiz after the response has been sent.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Func is a unit of background work.
type Func func(ctx context.Context) error

// Config sizes a Runner.
type Config struct {
	Workers   int           // worker goroutines; at least 1
	QueueSize int           // buffered jobs before overflow
	Timeout   time.Duration // per-job bound; 0 disables it
}

// DefaultConfig returns the runner settings used by the server.
func DefaultConfig() Config {
	return Config{Workers: 2, QueueSize: 64, Timeout: 10 * time.Second}
}

type job struct {
	ctx   context.Context
	name  string
	fn    Func
	attrs []any
}

// Runner executes submitted jobs on a small worker pool. Submission never
// blocks and never drops work: when the queue is full the job gets its own
// goroutine. Failures are logged, never returned to the submitter.
type Runner struct {
	cfg     Config
	logger  *slog.Logger
	pending chan job

	// mu guards closed and inflight; idle is signalled when inflight drops
	// to zero. Submit may run concurrently with Wait.
	mu       sync.Mutex
	idle     *sync.Cond
	closed   bool
	inflight int

	workers sync.WaitGroup
}

// New starts a Runner.
func New(cfg Config, logger *slog.Logger) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{
		cfg:     cfg,
		logger:  logger,
		pending: make(chan job, cfg.QueueSize),
	}
	r.idle = sync.NewCond(&r.mu)
	r.workers.Add(cfg.Workers)
	for range cfg.Workers {
		go r.processLoop()
	}
	return r
}

// Submit schedules fn. The job context keeps ctx's values but not its
// cancellation, so a finished request does not abort its writes. attrs are
// added to the failure log line.
func (r *Runner) Submit(ctx context.Context, name string, fn Func, attrs ...any) {
	j := job{ctx: context.WithoutCancel(ctx), name: name, fn: fn, attrs: attrs}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight++

	if r.closed {
		go r.run(j)
		return
	}

	select {
	case r.pending <- j:
	default:
		r.logger.Warn("job queue full, running detached", "job", name)
		go r.run(j)
	}
}

func (r *Runner) processLoop() {
	defer r.workers.Done()
	for j := range r.pending {
		r.run(j)
	}
}

func (r *Runner) run(j job) {
	defer r.done()

	ctx := j.ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := r.safeCall(ctx, j)
	if err != nil {
		r.logger.ErrorContext(ctx, "background job failed",
			append([]any{"job", j.name, "error", err, "elapsed", time.Since(start)}, j.attrs...)...)
		return
	}
	r.logger.DebugContext(ctx, "background job done", "job", j.name, "elapsed", time.Since(start))
}

func (r *Runner) safeCall(ctx context.Context, j job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v\n%s", p, debug.Stack())
		}
	}()
	return j.fn(ctx)
}

func (r *Runner) done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight--
	if r.inflight == 0 {
		r.idle.Broadcast()
	}
}

// Wait blocks until no job is in flight. Jobs submitted while waiting
// are waited for too.
func (r *Runner) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.inflight > 0 {
		r.idle.Wait()
	}
}

// Close stops the workers after the queue drains and waits for all
// outstanding jobs. Jobs submitted after Close still run.
func (r *Runner) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.pending)
	}
	r.mu.Unlock()

	r.workers.Wait()
	r.Wait()
}
