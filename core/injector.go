package core

import "sync"

// Injector is the per-namespace block proxy applications pull their
// dependencies from. One injector exists per namespace per session;
// factories receive the injector of their own namespace.
type Injector struct {
	sess  *Session
	state *sessionState
	ns    string

	mu     sync.Mutex
	views  map[string]*View // request token -> view
	leaves map[string]any   // flat-path request -> resolved value
}

// Namespace returns the block this injector was created to represent
// access from. The root injector returns "".
func (b *Injector) Namespace() string { return b.ns }

// Session returns the wiring session that owns this injector.
func (b *Injector) Session() *Session { return b.sess }

// Open returns the namespace-level view for a request token:
//
//	""     root namespace, private members included
//	"."    the injector's own namespace, private members included
//	other  absolute namespace path, private members excluded unless the
//	       path equals the injector's own namespace
//
// Views are cached per token, so repeated requests return the identical
// view without re-deriving the visible key set.
func (b *Injector) Open(token string) (*View, error) {
	b.mu.Lock()
	if v, ok := b.views[token]; ok {
		b.mu.Unlock()
		return v, nil
	}
	b.mu.Unlock()

	target, from, err := b.resolveToken(token)
	if err != nil {
		return nil, err
	}

	v := &View{
		sess:  b.sess,
		state: b.state,
		ns:    target,
		from:  from,
		keys:  b.state.reg.visibleMembers(target, from),
	}

	b.mu.Lock()
	b.views[token] = v
	b.mu.Unlock()
	return v, nil
}

// resolveToken maps a request token to (target namespace, effective
// caller namespace). Opening the root block or the caller's own block is
// privileged access; everything else is external.
func (b *Injector) resolveToken(token string) (target, from string, err error) {
	switch token {
	case RootBlock:
		return RootBlock, RootBlock, nil
	case LocalBlock:
		return b.ns, b.ns, nil
	default:
		if !b.state.reg.namespaces[token] {
			return "", "", &UnitNotFoundError{Key: token, Block: b.ns}
		}
		return token, b.ns, nil
	}
}

// Get is the flat-path sugar over Open + View.Get. A bare name resolves
// a member of the injector's own namespace; a dotted path is absolute.
// Results are value-equivalent to the two-step surface.
func (b *Injector) Get(path string) (any, error) {
	b.mu.Lock()
	if v, ok := b.leaves[path]; ok {
		b.mu.Unlock()
		return v, nil
	}
	b.mu.Unlock()

	ns, leaf := splitLeaf(path)
	token := LocalBlock
	if ns != RootBlock {
		token = ns
	} else if b.ns != RootBlock {
		// Bare name on a namespaced injector means a local member.
		leaf = path
	}

	view, err := b.Open(token)
	if err != nil {
		return nil, err
	}
	val, err := view.Get(leaf)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.leaves[path] = val
	b.mu.Unlock()
	return val, nil
}

// MustGet is Get, panicking on failure. Meant for application bootstrap
// code where a missing unit is unrecoverable.
func (b *Injector) MustGet(path string) any {
	v, err := b.Get(path)
	if err != nil {
		panic(err)
	}
	return v
}

// Block hands out the injector bound to an absolute namespace path. With
// WithStrictInjectors a second claim of the same namespace fails with
// *InjectorInUseError; by default the memoized instance is returned.
func (b *Injector) Block(ns string) (*Injector, error) {
	if ns != RootBlock && !b.state.reg.namespaces[ns] {
		return nil, &UnitNotFoundError{Key: ns, Block: b.ns}
	}

	if b.sess.opts.strict {
		b.state.mu.Lock()
		if b.state.claimed[ns] {
			b.state.mu.Unlock()
			return nil, &InjectorInUseError{Namespace: ns}
		}
		b.state.claimed[ns] = true
		b.state.mu.Unlock()
	}

	return b.state.injectorFor(b.sess, ns), nil
}

// View is the enumerable, read-only window onto one namespace, filtered
// for the caller that opened it. Member access triggers leaf resolution
// through the session cache.
type View struct {
	sess  *Session
	state *sessionState
	ns    string
	from  string
	keys  []string
}

// Namespace returns the namespace this view exposes.
func (v *View) Namespace() string { return v.ns }

// Keys returns the visible member names in sorted order.
func (v *View) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Has reports whether name is visible through this view.
func (v *View) Has(name string) bool {
	for _, k := range v.keys {
		if k == name {
			return true
		}
	}
	return false
}

// Get resolves one member. A member that is missing, or private and
// opened from a foreign block, fails identically with *UnitNotFoundError
// so callers cannot distinguish the two cases.
func (v *View) Get(name string) (any, error) {
	abs := joinPath(v.ns, name)
	if _, ok := v.state.reg.lookup(abs, v.from); !ok {
		return nil, &UnitNotFoundError{Key: name, Block: v.ns}
	}
	return v.sess.resolve(v.state, abs)
}

// MustGet is Get, panicking on failure.
func (v *View) MustGet(name string) any {
	val, err := v.Get(name)
	if err != nil {
		panic(err)
	}
	return val
}
