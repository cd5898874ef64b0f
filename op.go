/*
 * Copyright 2024 The asyncflux Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package asyncflux

import (
	"context"
	"fmt"
	"sync"
)

// Callback receives the outcome of an operation. Exactly one of result and
// err is meaningful: err is nil on success, and result is the zero value on
// failure.
type Callback[T any] func(result T, err error)

// Op is an asynchronous operation that has been requested but not started.
//
// An Op is consumed in one of two ways: Future starts it and returns a handle
// to its eventual result, while Then starts it and reports the outcome to a
// callback. Await is a shorthand for Future().Await. An Op runs at most once;
// later calls share the first run.
type Op[T any] struct {
	ctx context.Context
	run func(context.Context) (T, error)

	once   sync.Once
	future *Future[T]
}

// NewOp creates an Op that runs fn with ctx once started.
func NewOp[T any](ctx context.Context, fn func(context.Context) (T, error)) *Op[T] {
	return &Op[T]{ctx: ctx, run: fn}
}

// Future starts the operation and returns a handle to its result.
func (o *Op[T]) Future() *Future[T] {
	o.once.Do(func() {
		f := &Future[T]{done: make(chan struct{})}
		go func() {
			v, err := o.call()
			f.complete(v, err)
		}()
		o.future = f
	})
	return o.future
}

// Then starts the operation and calls cb once it completes. Nothing is started
// when cb is nil; ErrNilCallback is returned instead.
func (o *Op[T]) Then(cb Callback[T]) error {
	if cb == nil {
		return ErrNilCallback
	}
	return o.Future().OnComplete(cb)
}

// Await starts the operation and waits for its result.
func (o *Op[T]) Await(ctx context.Context) (T, error) {
	return o.Future().Await(ctx)
}

func (o *Op[T]) call() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return o.run(o.ctx)
}

// Future is a handle to the result of a started operation.
type Future[T any] struct {
	done chan struct{}

	mu        sync.Mutex
	finished  bool
	listeners []Callback[T]

	val T
	err error
}

// Done returns a channel that is closed once the operation completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the operation completes and returns its outcome.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.val, f.err
}

// Await waits for the operation to complete or ctx to end, whichever comes
// first. Giving up on the wait does not cancel the operation; cancel the
// context the operation was requested with for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// OnComplete registers cb to be called with the outcome once the operation
// completes. Callbacks attached after completion are still invoked, on their
// own goroutine.
func (f *Future[T]) OnComplete(cb Callback[T]) error {
	if cb == nil {
		return ErrNilCallback
	}

	f.mu.Lock()
	if !f.finished {
		f.listeners = append(f.listeners, cb)
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	go cb(f.val, f.err)
	return nil
}

func (f *Future[T]) complete(v T, err error) {
	f.mu.Lock()
	f.val, f.err = v, err
	f.finished = true
	listeners := f.listeners
	f.listeners = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range listeners {
		cb(v, err)
	}
}

// PanicError reports a panic recovered from a running operation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("asyncflux: operation panicked: %v", e.Value)
}
