package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gocrud/wiremap/logging"
)

// Awaitable is the duck-typed shape of a deferred value. A synchronous
// factory returning an Awaitable is treated like an asynchronous one:
// the result is settled before it enters the cache.
type Awaitable interface {
	Await(ctx context.Context) (any, error)
}

// warmup eagerly resolves every async unit so their values sit in the
// cache before any injector reaches user code. The default pass is
// strictly sequential in path order: no interleaved partial cache state,
// and the first failing unit is attributable without racing peers.
func warmup(ctx context.Context, s *Session, st *sessionState) error {
	if len(st.reg.asyncOrder) == 0 {
		return nil
	}

	if s.opts.parallel > 1 {
		return warmupParallel(ctx, s, st)
	}

	for _, abs := range st.reg.asyncOrder {
		if err := warmUnit(ctx, s, st, abs); err != nil {
			return err
		}
	}
	return nil
}

// warmupParallel is the opt-in concurrent pass. All-or-nothing and
// first-error-wins semantics are preserved; the per-entry sync.Once
// keeps every cache slot written at most once.
func warmupParallel(ctx context.Context, s *Session, st *sessionState) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.parallel)

	for _, abs := range st.reg.asyncOrder {
		g.Go(func() error {
			return warmUnit(gctx, s, st, abs)
		})
	}
	return g.Wait()
}

func warmUnit(ctx context.Context, s *Session, st *sessionState, abs string) error {
	e := st.entry(abs)
	e.once.Do(func() {
		def := st.reg.units[abs]
		ns, _ := splitLeaf(abs)
		out, err := def.Async(ctx, st.injectorFor(s, ns))
		if err == nil {
			out, err = settle(ctx, out)
		}
		e.val, e.err = out, err
	})
	if e.err != nil {
		return &AsyncUnitError{Path: abs, Cause: e.err}
	}
	s.logger.Debug("async unit warmed", logging.Field{Key: "path", Value: abs})
	return nil
}

// Wire builds a session from defs and returns its root injector. Async
// units are resolved before Wire returns, using a background context.
func Wire(defs Defs, opts ...Option) (*Injector, error) {
	return WireContext(context.Background(), defs, opts...)
}

// WireContext is Wire with a caller-supplied context threaded into every
// async factory. Wiring is all-or-nothing: if any async unit fails, no
// injector is produced.
func WireContext(ctx context.Context, defs Defs, opts ...Option) (*Injector, error) {
	s, err := newSession(ctx, defs, opts...)
	if err != nil {
		return nil, err
	}
	if err := warmup(ctx, s, s.currentState()); err != nil {
		return nil, err
	}
	return s.Root(), nil
}

// Deferred is the promise-shaped wiring result returned by WireAsync. It
// settles once the warmup pass finished (or failed).
type Deferred struct {
	done chan struct{}
	root *Injector
	err  error
}

// Await blocks until the wiring settled or ctx is done.
func (d *Deferred) Await(ctx context.Context) (*Injector, error) {
	select {
	case <-d.done:
		return d.root, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the wiring settled.
func (d *Deferred) Done() <-chan struct{} { return d.done }

// WireAsync wires in the background and hands back a Deferred. With zero
// async units the deferred settles immediately.
func WireAsync(ctx context.Context, defs Defs, opts ...Option) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.root, d.err = WireContext(ctx, defs, opts...)
	}()
	return d
}
