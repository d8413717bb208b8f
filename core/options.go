package core

import "github.com/gocrud/wiremap/logging"

// Option configures a wiring session.
type Option func(*sessionOptions)

type sessionOptions struct {
	strict   bool
	parallel int
	logger   logging.Logger
}

func defaultOptions() sessionOptions {
	return sessionOptions{logger: logging.Nop()}
}

// WithStrictInjectors makes Injector.Block fail with *InjectorInUseError
// when the same namespace is claimed twice within one session. The
// default is to memoize and hand back the same instance.
func WithStrictInjectors() Option {
	return func(o *sessionOptions) {
		o.strict = true
	}
}

// WithParallelWarmup lets up to n async factories resolve concurrently
// during the warmup pass. Semantics stay all-or-nothing with the first
// error winning; cache entries are still written at most once. n <= 1
// keeps the default sequential pass.
func WithParallelWarmup(n int) Option {
	return func(o *sessionOptions) {
		o.parallel = n
	}
}

// WithLogger attaches a logger to the session. Resolution and warmup
// events are logged at debug level.
func WithLogger(l logging.Logger) Option {
	return func(o *sessionOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
