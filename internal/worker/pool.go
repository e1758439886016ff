package worker

import (
	"context"
	"sync"
	"time"

	"github.com/vlemaire/flashdeck/internal/logger"
)

// Job is a unit of background work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs on a fixed number of goroutines. The persistence
// flusher uses a single-worker pool so flushes execute in submission order.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

// NewPool creates a pool with the given worker count and queue size.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     logger.Default().WithPrefix("worker-pool"),
	}
}

// Start launches the workers. They run until Stop is called or ctx is
// cancelled.
func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for job := range p.jobs {
				if job == nil {
					workerLog.Debug("worker shutting down")
					return
				}
				jobLog := workerLog.WithField("job", job.Name())
				start := time.Now()
				jobCtx := logger.NewContext(ctx, jobLog)
				if err := job.Run(jobCtx); err != nil {
					jobLog.Error("job failed after %v: %v", time.Since(start), err)
				} else {
					jobLog.Debug("job completed in %v", time.Since(start))
				}
			}
		}(i + 1)
	}
}

// Stop closes the queue, lets the workers drain the remaining jobs, and
// waits for them to exit.
func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	close(p.jobs)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// Submit enqueues a job, blocking when the queue is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
