// Package concurrency implements a simple channel based resource manager for concurrent operations.
package concurrency

import (
	"sync"
	"sync/atomic"
)

// ResourceManager runs tasks concurrently, each task holding one of a fixed
// set of resources (e.g. a worker index or a scratch buffer) for its duration.
// The number of resources bounds the number of tasks running at once.
//
// The first error returned by a task halts the manager: tasks submitted
// afterwards are not run.
type ResourceManager[T any] struct {
	wg        sync.WaitGroup
	resources chan T
	once      sync.Once
	err       error
	halted    atomic.Bool
}

// NewResourceManager instantiates a new [ResourceManager].
// It panics if resources is empty.
func NewResourceManager[T any](resources []T) *ResourceManager[T] {

	if len(resources) == 0 {
		panic("cannot NewResourceManager: resources is empty")
	}

	ch := make(chan T, len(resources))
	for i := range resources {
		ch <- resources[i]
	}

	return &ResourceManager[T]{resources: ch}
}

// Task is a function taking as input a resource of any kind.
type Task[T any] func(resource T) (err error)

// Run waits for a free resource and runs f on it in a new goroutine.
// Tasks therefore start in submission order. If the manager is halted,
// Run returns without running f.
func (r *ResourceManager[T]) Run(f Task[T]) {

	resource := <-r.resources

	if r.halted.Load() {
		r.resources <- resource
		return
	}

	r.wg.Add(1)
	go func() {
		defer func() {
			r.resources <- resource
			r.wg.Done()
		}()
		if err := f(resource); err != nil {
			r.once.Do(func() {
				r.err = err
				r.halted.Store(true)
			})
		}
	}()
}

// Halted reports whether a task has returned an error.
func (r *ResourceManager[T]) Halted() bool {
	return r.halted.Load()
}

// Wait waits until all running tasks have finished and returns
// the first encountered error, if any.
func (r *ResourceManager[T]) Wait() (err error) {
	r.wg.Wait()
	return r.err
}
