package wiremap

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gocrud/wiremap/core"
	"github.com/gocrud/wiremap/hosting"
	"github.com/gocrud/wiremap/logging"
)

// RunOptions configures Run.
type RunOptions struct {
	Context         context.Context
	Logger          logging.Logger
	ShutdownTimeout time.Duration
	WireOptions     []core.Option
}

// RunOption mutates RunOptions.
type RunOption func(*RunOptions)

// WithContext sets the root context. Cancelling it shuts the
// application down.
func WithContext(ctx context.Context) RunOption {
	return func(o *RunOptions) { o.Context = ctx }
}

// WithLogger sets the application logger, shared with the wiring session.
func WithLogger(l logging.Logger) RunOption {
	return func(o *RunOptions) { o.Logger = l }
}

// WithShutdownTimeout bounds graceful shutdown (default 5s).
func WithShutdownTimeout(d time.Duration) RunOption {
	return func(o *RunOptions) { o.ShutdownTimeout = d }
}

// WithWireOptions forwards options to the wiring session.
func WithWireOptions(opts ...core.Option) RunOption {
	return func(o *RunOptions) { o.WireOptions = append(o.WireOptions, opts...) }
}

// Run wires the definitions, starts every resolved unit implementing
// hosting.Service, and blocks until an OS signal arrives, the context is
// cancelled, or a service fails. Shutdown stops services in reverse
// order and closes every resolved io.Closer unit.
//
// Run resolves every unit eagerly: a module-based application wants its
// wiring mistakes at startup, not on first request.
func Run(defs Defs, opts ...RunOption) error {
	o := RunOptions{
		Context:         context.Background(),
		Logger:          logging.Nop(),
		ShutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.Logger.WithCategory("wiremap")

	ctx, cancel := context.WithCancel(o.Context)
	defer cancel()

	wireOpts := append([]core.Option{core.WithLogger(o.Logger)}, o.WireOptions...)
	root, err := WireContext(ctx, defs, wireOpts...)
	if err != nil {
		return err
	}

	manager := hosting.NewManager(o.Logger)
	var closers []io.Closer
	err = root.Session().Walk(func(path string, v any) error {
		if svc, ok := v.(hosting.Service); ok {
			manager.Add(svc)
			logger.Debug("hosted service found", logging.Field{Key: "path", Value: path})
		} else if c, ok := v.(io.Closer); ok {
			closers = append(closers, c)
		}
		return nil
	})
	if err != nil {
		return err
	}

	errCh := manager.StartAll(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context cancelled")
	case runErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), o.ShutdownTimeout)
	defer shutdownCancel()

	cancel()
	manager.StopAll(shutdownCtx)

	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); cerr != nil {
			logger.Error("failed to close unit", logging.Field{Key: "error", Value: cerr.Error()})
		}
	}

	return runErr
}
