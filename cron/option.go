package cron

import "time"

// Options holds scheduler settings.
type Options struct {
	// Seconds enables the six-field spec format with a seconds column.
	Seconds bool
	// Location is the timezone specs evaluate in, time.Local by default.
	Location *time.Location
}

// Option mutates Options.
type Option func(*Options)

// WithSeconds enables second-granularity specs.
func WithSeconds() Option {
	return func(o *Options) { o.Seconds = true }
}

// WithLocation sets the scheduler timezone.
func WithLocation(loc *time.Location) Option {
	return func(o *Options) { o.Location = loc }
}
