package core_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/wiremap/core"
)

func TestAsyncUnitAvailableSynchronously(t *testing.T) {
	root, err := core.Wire(core.Defs{
		"mongo": core.Namespace("mongo", core.Defs{
			"client": core.AsyncFactory(func(ctx context.Context, b *core.Injector) (any, error) {
				return "connected", nil
			}),
		}),
	})
	require.NoError(t, err)

	// No await on the consumer side: warmup already settled the unit.
	v, err := root.Get("mongo.client")
	require.NoError(t, err)
	assert.Equal(t, "connected", v)
}

func TestWarmupOrderIsSequentialByPath(t *testing.T) {
	var order []string
	record := func(name string) core.AsyncFactoryFunc {
		return func(ctx context.Context, b *core.Injector) (any, error) {
			order = append(order, name)
			return name, nil
		}
	}

	_, err := core.Wire(core.Defs{
		"zeta":  core.AsyncFactory(record("zeta")),
		"alpha": core.AsyncFactory(record("alpha")),
		"db": core.Namespace("db", core.Defs{
			"conn": core.AsyncFactory(record("db.conn")),
		}),
	})
	require.NoError(t, err)
	// Sequential default: the appends above race nothing.
	assert.Equal(t, []string{"alpha", "db.conn", "zeta"}, order)
}

func TestWiringIsAllOrNothing(t *testing.T) {
	var invoked int32
	root, err := core.Wire(core.Defs{
		"a": core.AsyncFactory(func(ctx context.Context, b *core.Injector) (any, error) {
			return nil, assert.AnError
		}),
		"b": core.AsyncFactory(func(ctx context.Context, b *core.Injector) (any, error) {
			atomic.AddInt32(&invoked, 1)
			return "b", nil
		}),
	})
	assert.Nil(t, root, "no injector escapes a failed wiring")

	var asyncErr *core.AsyncUnitError
	require.ErrorAs(t, err, &asyncErr)
	assert.Equal(t, "a", asyncErr.Path)
	require.ErrorIs(t, err, assert.AnError)
	assert.EqualValues(t, 0, atomic.LoadInt32(&invoked), "first failure aborts the pass")
}

func TestAsyncFactoryReceivesOwnNamespaceInjector(t *testing.T) {
	root, err := core.Wire(core.Defs{
		"mongo": core.Namespace("mongo", core.Defs{
			"uri": core.Private("mongodb://localhost"),
			"client": core.AsyncFactory(func(ctx context.Context, b *core.Injector) (any, error) {
				uri, err := b.Get("uri")
				if err != nil {
					return nil, err
				}
				return "client(" + uri.(string) + ")", nil
			}),
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, "client(mongodb://localhost)", root.MustGet("mongo.client"))
}

type futureValue struct {
	out chan any
}

func (f *futureValue) Await(ctx context.Context) (any, error) {
	select {
	case v := <-f.out:
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestSyncFactoryReturningAwaitableIsSettled(t *testing.T) {
	f := &futureValue{out: make(chan any, 1)}
	f.out <- "settled"

	root, err := core.Wire(core.Defs{
		"slow": core.Factory(func(b *core.Injector) (any, error) {
			return f, nil
		}),
	})
	require.NoError(t, err)

	v, err := root.Get("slow")
	require.NoError(t, err)
	assert.Equal(t, "settled", v, "awaitable results never leak to consumers")
}

func TestParallelWarmup(t *testing.T) {
	var running, peak int32
	slow := func(ctx context.Context, b *core.Injector) (any, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return "ok", nil
	}

	_, err := core.Wire(core.Defs{
		"a": core.AsyncFactory(slow),
		"b": core.AsyncFactory(slow),
		"c": core.AsyncFactory(slow),
		"d": core.AsyncFactory(slow),
	}, core.WithParallelWarmup(4))
	require.NoError(t, err)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1), "warmup should overlap")
}

func TestWireAsyncDeferred(t *testing.T) {
	release := make(chan struct{})
	d := core.WireAsync(context.Background(), core.Defs{
		"slow": core.AsyncFactory(func(ctx context.Context, b *core.Injector) (any, error) {
			<-release
			return "done", nil
		}),
	})

	select {
	case <-d.Done():
		t.Fatal("deferred settled before the async unit finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	root, err := d.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", root.MustGet("slow"))
}

func TestWireAsyncAwaitHonorsContext(t *testing.T) {
	wireCtx, wireCancel := context.WithCancel(context.Background())
	defer wireCancel()

	d := core.WireAsync(wireCtx, core.Defs{
		"slow": core.AsyncFactory(func(ctx context.Context, b *core.Injector) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := d.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
