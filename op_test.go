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
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestOpFuture(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	op := NewOp(ctx, func(context.Context) (int, error) {
		return 42, nil
	})

	f := op.Future()
	v, err := f.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	// the handle keeps its outcome
	v, err = f.Get()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestOpIsLazy(t *testing.T) {
	var started atomic.Bool
	op := NewOp(context.Background(), func(context.Context) (struct{}, error) {
		started.Store(true)
		return struct{}{}, nil
	})

	time.Sleep(10 * time.Millisecond)
	require.False(t, started.Load())

	_, err := op.Await(context.Background())
	require.NoError(t, err)
	require.True(t, started.Load())
}

func TestOpThenNilCallback(t *testing.T) {
	var started atomic.Bool
	op := NewOp(context.Background(), func(context.Context) (string, error) {
		started.Store(true)
		return "", nil
	})

	err := op.Then(nil)
	require.ErrorIs(t, err, ErrNilCallback)

	time.Sleep(10 * time.Millisecond)
	require.False(t, started.Load())
}

func TestOpThenDeliversAfterCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	op := NewOp(context.Background(), func(context.Context) (string, error) {
		<-gate
		return "done", nil
	})

	var calls atomic.Int32
	got := make(chan string, 1)
	require.NoError(t, op.Then(func(v string, err error) {
		calls.Add(1)
		assert.NoError(t, err)
		got <- v
	}))

	// Then returns before the operation completes.
	require.Zero(t, calls.Load())
	close(gate)

	select {
	case v := <-got:
		require.Equal(t, "done", v)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
	require.EqualValues(t, 1, calls.Load())
}

func TestOpErrorIdentity(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	op := func() *Op[int] {
		return NewOp(context.Background(), func(context.Context) (int, error) {
			return 0, boom
		})
	}

	_, err := op().Await(context.Background())
	require.Same(t, boom, err)

	errCh := make(chan error, 1)
	require.NoError(t, op().Then(func(v int, err error) {
		assert.Zero(t, v)
		errCh <- err
	}))
	require.Same(t, boom, <-errCh)
}

func TestOpPanicBecomesError(t *testing.T) {
	op := NewOp(context.Background(), func(context.Context) (int, error) {
		panic("kaboom")
	})

	_, err := op.Await(context.Background())
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	require.Equal(t, "kaboom", panicErr.Value)
}

func TestFutureOnCompleteAfterDone(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := NewOp(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	}).Future()
	<-f.Done()

	got := make(chan int, 1)
	require.NoError(t, f.OnComplete(func(v int, err error) {
		assert.NoError(t, err)
		got <- v
	}))
	require.Equal(t, 7, <-got)

	require.ErrorIs(t, f.OnComplete(nil), ErrNilCallback)
}

func TestFutureAwaitContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	f := NewOp(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	}).Future()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the operation itself keeps running until it completes
	close(release)
	v, err := f.Get()
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestOpContextPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := NewOp(ctx, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	f := op.Future()
	cancel()
	_, err := f.Get()
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpRunsOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	var runs atomic.Int32
	op := NewOp(ctx, func(context.Context) (int32, error) {
		return runs.Add(1), nil
	})

	first, err := op.Future().Get()
	require.NoError(t, err)

	got := make(chan int32, 1)
	require.NoError(t, op.Then(func(v int32, err error) {
		assert.NoError(t, err)
		got <- v
	}))
	second, err := op.Await(ctx)
	require.NoError(t, err)

	require.Same(t, op.Future(), op.Future())
	require.EqualValues(t, 1, first)
	require.EqualValues(t, 1, second)
	require.EqualValues(t, 1, <-got)
	require.EqualValues(t, 1, runs.Load())
}
