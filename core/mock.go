package core

// Mock temporarily replaces the session's registry, cache and injectors
// with ones built from the substitute defs, invokes fn with the
// substitute root injector, and restores the previous state on every
// exit path, including panics. Async units in the substitute defs are
// warmed before fn runs.
//
// Injectors obtained before the swap keep resolving against the state
// they were created under; only code reached through the substitute
// injector observes the mock definitions.
func (b *Injector) Mock(defs Defs, fn func(root *Injector) error) error {
	s := b.sess

	reg, err := buildRegistry(defs)
	if err != nil {
		return err
	}
	sub := newState(reg)

	s.mu.Lock()
	prev := s.state
	s.state = sub
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
	}()

	if err := warmup(s.baseCtx, s, sub); err != nil {
		return err
	}
	return fn(sub.injectorFor(s, RootBlock))
}
