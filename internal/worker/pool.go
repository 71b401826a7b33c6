// Package worker provides a small fixed pool of goroutines used to run
// persistence work off the request goroutine. A submitted task still
// completes in program order relative to its caller: Do blocks until the
// task has run.
package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Do after the pool has been shut down.
var ErrPoolClosed = errors.New("worker pool closed")

// Task is a unit of work executed on a pool goroutine.
type Task = func() error

type job struct {
	task   Task
	result chan error
}

// Pool executes submitted tasks on a fixed set of goroutines.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup

	closeOnce sync.Once
	closed    chan struct{}
}

// NewPool starts a pool with the given number of worker goroutines.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{
		jobs:   make(chan job),
		closed: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.closed:
			return
		case j := <-p.jobs:
			j.result <- j.task()
		}
	}
}

// Do runs task on a pool goroutine and blocks until it completes, returning
// the task's error. ctx only gates hand-off to a worker: once a task has
// started it always runs to completion, so a caller that gives up mid-request
// never leaves a half-applied mutation behind.
func (p *Pool) Do(ctx context.Context, task Task) error {
	result := make(chan error, 1)
	select {
	case p.jobs <- job{task: task, result: result}:
	case <-p.closed:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// The task is now running; wait it out regardless of ctx.
	return <-result
}

// Close shuts the pool down and waits for the workers to exit. Tasks already
// handed off keep running to completion.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.closed)
	})
	p.wg.Wait()
}
