package worker

import (
	"context"
	"errors"
	"sync"

	"user-service/internal/logger"
)

// ErrStopped is returned when submitting to a pool that has been stopped.
var ErrStopped = errors.New("worker pool stopped")

// ErrQueueFull is returned by TrySubmit when every worker is busy and the queue is full.
var ErrQueueFull = errors.New("worker queue full")

// Task represents a unit of work executed by the pool. ctx is cancelled when the pool stops.
type Task func(ctx context.Context)

// Pool runs background work such as cache refreshes after a write.
type Pool interface {
	Submit(Task) error
	TrySubmit(Task) error
	Stop()
}

// NewPool creates a pool with n workers and a queue of the same size. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{jobs: make(chan Task, n), ctx: ctx, cancel: cancel}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func (p *pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.exec(job)
	}
}

func (p *pool) exec(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error().Interface("panic", r).Msg("worker task panicked")
		}
	}()
	job(p.ctx)
}

// Submit blocks until a worker or queue slot is free.
func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	p.jobs <- t
	return nil
}

// TrySubmit never blocks.
func (p *pool) TrySubmit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop drains queued tasks and waits for the workers to exit.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
