// Package result implements a single completion that can be consumed both by
// registered handlers and by waiting on it.
package result

import (
	"context"
	"sync"
)

// Handler receives the outcome of a Future
type Handler[T any] func(value T, err error)

// Future holds the outcome of an asynchronous operation. It completes exactly once.
type Future[T any] struct {
	mutex    sync.Mutex
	done     bool
	doneChan chan (struct{})
	handlers []Handler[T]

	value T
	err   error
}

// Complete is the resolving side of a Future. Only the first call has effect.
type Complete[T any] func(value T, err error)

// New creates a pending Future and the function that completes it
func New[T any]() (*Future[T], Complete[T]) {
	f := &Future[T]{
		doneChan: make(chan (struct{})),
	}
	return f, f.complete
}

// Resolved returns a Future that is already completed
func Resolved[T any](value T, err error) *Future[T] {
	f, complete := New[T]()
	complete(value, err)
	return f
}

// Go runs work in a new goroutine and completes the returned Future with its result
func Go[T any](work func() (T, error)) *Future[T] {
	f, complete := New[T]()
	go func() {
		complete(work())
	}()
	return f
}

func (f *Future[T]) complete(value T, err error) {
	f.mutex.Lock()
	if f.done {
		f.mutex.Unlock()
		return
	}
	f.done = true
	f.value = value
	f.err = err
	handlers := f.handlers
	f.handlers = nil
	f.mutex.Unlock()

	for _, h := range handlers {
		h(value, err)
	}

	/* Waiters are released only after every handler has returned */
	close(f.doneChan)
}

// Then registers a handler. Handlers added after completion are called right away
// from the calling goroutine, otherwise from the goroutine that completes the Future.
// A nil handler is ignored.
func (f *Future[T]) Then(h Handler[T]) *Future[T] {
	if h == nil {
		return f
	}

	f.mutex.Lock()
	if !f.done {
		f.handlers = append(f.handlers, h)
		f.mutex.Unlock()
		return f
	}
	value, err := f.value, f.err
	f.mutex.Unlock()

	h(value, err)
	return f
}

// Done returns a channel that is closed once the Future completes and its handlers have run
func (f *Future[T]) Done() <-chan (struct{}) {
	return f.doneChan
}

// Wait blocks until the Future completes or ctx is done. Cancelling ctx only stops
// the wait, the operation itself keeps running.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.doneChan:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.value, f.err
}

// Err waits for completion and returns only the error
func (f *Future[T]) Err(ctx context.Context) error {
	_, err := f.Wait(ctx)
	return err
}
