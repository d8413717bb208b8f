// Package web contributes an HTTP server namespace backed by gin. The
// builder exposes the engine as a public unit so other modules can mount
// routes, and a hosted "host" unit that Run starts and stops.
package web

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/wiremap/core"
)

// Builder assembles the "web" namespace.
type Builder struct {
	options Options
	engine  *gin.Engine
	errs    []error
}

// New creates a web builder with a fresh gin engine.
func New(opts ...Option) *Builder {
	o := Options{
		Addr: ":8080",
		Mode: gin.ReleaseMode,
	}
	for _, opt := range opts {
		opt(&o)
	}

	gin.SetMode(o.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Builder{options: o, engine: engine}
}

// Configure runs fn against the engine, for route and middleware setup.
func (b *Builder) Configure(fn func(e *gin.Engine)) *Builder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("web: nil configure func"))
		return b
	}
	fn(b.engine)
	return b
}

// Use appends middleware to the engine.
func (b *Builder) Use(middleware ...gin.HandlerFunc) *Builder {
	b.engine.Use(middleware...)
	return b
}

// Namespace returns "web".
func (b *Builder) Namespace() string { return "web" }

// Defs returns the namespace units: the public engine, the private
// listen address and a hosted server resolving both locally.
func (b *Builder) Defs() (core.Defs, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	return core.Defs{
		"engine": b.engine,
		"addr":   core.Private(b.options.Addr),
		"host": core.Factory(func(inj *core.Injector) (any, error) {
			engine, err := inj.Get("engine")
			if err != nil {
				return nil, err
			}
			addr, err := inj.Get("addr")
			if err != nil {
				return nil, err
			}
			return NewHost(engine.(*gin.Engine), addr.(string)), nil
		}),
	}, nil
}
