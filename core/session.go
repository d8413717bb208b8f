package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gocrud/wiremap/logging"
)

// Session owns every piece of mutable state produced by one wiring call:
// the flattened registry, the resolution cache and the per-namespace
// injectors. Nothing here is shared between sessions, so concurrent or
// nested wiring calls cannot corrupt each other.
type Session struct {
	mu      sync.RWMutex // guards the state pointer (swapped by Mock)
	state   *sessionState
	opts    sessionOptions
	baseCtx context.Context
	logger  logging.Logger
}

// sessionState bundles registry + cache + injectors so Mock can swap all
// of it atomically and restore the previous bundle afterwards.
type sessionState struct {
	reg       *registry
	mu        sync.Mutex
	entries   map[string]*cacheEntry
	injectors map[string]*Injector
	claimed   map[string]bool // strict-mode Block claims
}

// cacheEntry memoizes one absolute path. The sync.Once keeps factory
// invocation at-most-once even under concurrent resolution.
type cacheEntry struct {
	once sync.Once
	val  any
	err  error
}

func newState(reg *registry) *sessionState {
	return &sessionState{
		reg:       reg,
		entries:   make(map[string]*cacheEntry),
		injectors: make(map[string]*Injector),
		claimed:   make(map[string]bool),
	}
}

func newSession(ctx context.Context, defs Defs, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg, err := buildRegistry(defs)
	if err != nil {
		return nil, err
	}

	s := &Session{
		state: newState(reg),
		opts:  o,
		// Lazily produced deferred values are awaited outside the
		// wiring call's own lifetime, so detach its cancellation.
		baseCtx: context.WithoutCancel(ctx),
		logger:  o.logger.WithCategory("wiremap"),
	}
	return s, nil
}

func (s *Session) currentState() *sessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Root returns the session's root injector.
func (s *Session) Root() *Injector {
	return s.currentState().injectorFor(s, RootBlock)
}

func (st *sessionState) entry(abs string) *cacheEntry {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.entries[abs]
	if !ok {
		e = &cacheEntry{}
		st.entries[abs] = e
	}
	return e
}

// injectorFor returns the one injector bound to ns, creating it on first
// request. Identity is stable for the lifetime of the state bundle.
func (st *sessionState) injectorFor(s *Session, ns string) *Injector {
	st.mu.Lock()
	defer st.mu.Unlock()
	inj, ok := st.injectors[ns]
	if !ok {
		inj = &Injector{
			sess:   s,
			state:  st,
			ns:     ns,
			views:  make(map[string]*View),
			leaves: make(map[string]any),
		}
		st.injectors[ns] = inj
	}
	return inj
}

// resolve memoizes the unit at abs. Visibility has already been checked
// by the caller; abs is known to exist in st.reg.
func (s *Session) resolve(st *sessionState, abs string) (any, error) {
	e := st.entry(abs)
	e.once.Do(func() {
		def := st.reg.units[abs]
		e.val, e.err = s.instantiate(st, abs, def)
		if e.err == nil {
			s.logger.Debug("unit resolved",
				logging.Field{Key: "path", Value: abs},
				logging.Field{Key: "kind", Value: def.Kind.String()})
		}
	})
	return e.val, e.err
}

func (s *Session) instantiate(st *sessionState, abs string, def *Definition) (any, error) {
	switch def.Kind {
	case KindValue:
		return def.Value, nil

	case KindFactory:
		ns, _ := splitLeaf(abs)
		out, err := def.Factory(st.injectorFor(s, ns))
		if err != nil {
			return nil, fmt.Errorf("wiremap: factory %q: %w", abs, err)
		}
		// A factory may hand back a deferred value; settle it before
		// caching so consumers always observe the final result.
		return settle(s.baseCtx, out)

	case KindAsyncFactory:
		// The warmup pass seeds these entries before any injector is
		// handed out, so reaching this arm means the session skipped
		// wiring entirely.
		return nil, errAsyncNotWarmed

	default:
		return nil, fmt.Errorf("wiremap: unit %q has unknown kind %d", abs, def.Kind)
	}
}

// settle awaits future-shaped values. Anything else passes through.
func settle(ctx context.Context, v any) (any, error) {
	if aw, ok := v.(Awaitable); ok {
		return aw.Await(ctx)
	}
	return v, nil
}

// Walk resolves every unit of the session in sorted path order and hands
// each to fn. It is the session owner's surface: visibility filtering
// does not apply. Iteration stops at the first error.
func (s *Session) Walk(fn func(path string, v any) error) error {
	st := s.currentState()

	paths := make([]string, 0, len(st.reg.units))
	for abs := range st.reg.units {
		paths = append(paths, abs)
	}
	sort.Strings(paths)

	for _, abs := range paths {
		v, err := s.resolve(st, abs)
		if err != nil {
			return err
		}
		if err := fn(abs, v); err != nil {
			return err
		}
	}
	return nil
}
