package web

// Options holds web builder settings.
type Options struct {
	// Addr is the listen address, ":8080" by default.
	Addr string
	// Mode is the gin mode, release by default.
	Mode string
}

// Option mutates Options.
type Option func(*Options)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Options) { o.Addr = addr }
}

// WithMode sets the gin mode (gin.DebugMode, gin.ReleaseMode, gin.TestMode).
func WithMode(mode string) Option {
	return func(o *Options) { o.Mode = mode }
}
