package mongodb

import "time"

// Options holds the settings for one named client.
type Options struct {
	URI            string
	AppName        string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	// Ping verifies the connection during wiring. Off by default: the
	// driver connects lazily and most deployments prefer a fast start.
	Ping        bool
	PingTimeout time.Duration
}

// WithPing enables the wiring-time ping with the given timeout.
func WithPing(timeout time.Duration) func(*Options) {
	return func(o *Options) {
		o.Ping = true
		o.PingTimeout = timeout
	}
}

// WithPool sets the connection pool bounds.
func WithPool(minSize, maxSize uint64) func(*Options) {
	return func(o *Options) {
		o.MinPoolSize = minSize
		o.MaxPoolSize = maxSize
	}
}
