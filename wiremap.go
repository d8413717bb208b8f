// Package wiremap wires module-based applications from named units:
// plain values, once-invoked factories and eagerly-resolved async
// factories, grouped under dot-separated namespaces with public/private
// visibility. The engine lives in the core package; this package is the
// application entry surface.
package wiremap

import (
	"context"

	"github.com/gocrud/wiremap/core"
)

// Defs is the nested definitions structure handed to Wire.
type Defs = core.Defs

// Wire builds a wiring session and returns its root injector. Async
// units resolve before Wire returns.
func Wire(defs Defs, opts ...core.Option) (*core.Injector, error) {
	return core.Wire(defs, opts...)
}

// WireContext is Wire with a caller-supplied context for async units.
func WireContext(ctx context.Context, defs Defs, opts ...core.Option) (*core.Injector, error) {
	return core.WireContext(ctx, defs, opts...)
}

// WireAsync wires in the background and returns a deferred injector.
func WireAsync(ctx context.Context, defs Defs, opts ...core.Option) *core.Deferred {
	return core.WireAsync(ctx, defs, opts...)
}

// Module is anything contributing a namespace of unit definitions, such
// as the builders in the web, redis, database, mongodb and cron packages.
type Module interface {
	// Namespace is the absolute dot-path the module's units live under.
	Namespace() string
	// Defs returns the module's unit definitions.
	Defs() (core.Defs, error)
}
