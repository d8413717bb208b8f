// Package cron contributes a scheduler under the "cron" namespace. Jobs
// register on the builder; the scheduler unit is a hosted service so Run
// starts and stops it with the application.
package cron

import (
	"fmt"
	"time"

	robfig "github.com/robfig/cron/v3"

	"github.com/gocrud/wiremap/core"
)

type job struct {
	spec string
	name string
	run  func(root *core.Injector)
}

// Builder assembles the "cron" namespace.
type Builder struct {
	options Options
	jobs    []job
}

// New creates an empty cron builder.
func New(opts ...Option) *Builder {
	o := Options{Location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{options: o}
}

// AddFunc registers a job that needs nothing from the container.
func (b *Builder) AddFunc(spec, name string, fn func()) *Builder {
	return b.AddJob(spec, name, func(*core.Injector) { fn() })
}

// AddJob registers a job resolving its dependencies through the root
// injector on every tick.
func (b *Builder) AddJob(spec, name string, fn func(root *core.Injector)) *Builder {
	b.jobs = append(b.jobs, job{spec: spec, name: name, run: fn})
	return b
}

// Namespace returns "cron".
func (b *Builder) Namespace() string { return "cron" }

// Defs returns the scheduler unit with every registered job attached.
func (b *Builder) Defs() (core.Defs, error) {
	for _, j := range b.jobs {
		if j.spec == "" || j.name == "" || j.run == nil {
			return nil, fmt.Errorf("cron: job needs a spec, a name and a func")
		}
	}

	jobs := b.jobs
	options := b.options
	return core.Defs{
		"scheduler": core.Factory(func(inj *core.Injector) (any, error) {
			var cronOpts []robfig.Option
			if options.Seconds {
				cronOpts = append(cronOpts, robfig.WithSeconds())
			}
			if options.Location != nil {
				cronOpts = append(cronOpts, robfig.WithLocation(options.Location))
			}
			c := robfig.New(cronOpts...)

			root, err := inj.Block("")
			if err != nil {
				return nil, err
			}
			for _, j := range jobs {
				j := j
				if _, err := c.AddFunc(j.spec, func() { j.run(root) }); err != nil {
					return nil, fmt.Errorf("cron: job %q has invalid spec %q: %w", j.name, j.spec, err)
				}
			}
			return &Service{cron: c}, nil
		}),
	}, nil
}
