// Package hosting runs long-lived units resolved from a wiring session:
// web hosts, schedulers, anything with a start/stop lifecycle.
package hosting

import (
	"context"
	"errors"
	"sync"

	"github.com/gocrud/wiremap/logging"
)

// Service is a long-running unit. Start should block until ctx is
// cancelled or the service fails; the manager calls it in its own
// goroutine. Stop performs graceful shutdown.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Manager starts and stops a set of services.
type Manager struct {
	mu       sync.Mutex
	services []Service
	wg       sync.WaitGroup
	logger   logging.Logger
}

// NewManager creates an empty manager. A nil logger is replaced with the
// nop logger.
func NewManager(logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{logger: logger.WithCategory("hosting")}
}

// Add registers a service for the next StartAll.
func (m *Manager) Add(svc Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = append(m.services, svc)
}

// Len returns the number of registered services.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.services)
}

// StartAll launches every service in its own goroutine and returns a
// channel carrying the first failure of each. Context cancellation is
// not treated as a failure.
func (m *Manager) StartAll(ctx context.Context) <-chan error {
	m.mu.Lock()
	services := append([]Service(nil), m.services...)
	m.mu.Unlock()

	errCh := make(chan error, len(services))
	m.logger.Info("starting hosted services", logging.Field{Key: "count", Value: len(services)})

	for _, svc := range services {
		m.wg.Add(1)
		go func(svc Service) {
			defer m.wg.Done()
			if err := svc.Start(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				m.logger.Error("hosted service failed", logging.Field{Key: "error", Value: err.Error()})
				select {
				case errCh <- err:
				default:
				}
			}
		}(svc)
	}
	return errCh
}

// StopAll stops the services in reverse registration order, waiting for
// all Start goroutines to drain before returning. Stop failures are
// logged, not propagated: shutdown keeps going.
func (m *Manager) StopAll(ctx context.Context) {
	m.mu.Lock()
	services := append([]Service(nil), m.services...)
	m.mu.Unlock()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(ctx); err != nil {
			m.logger.Error("failed to stop hosted service", logging.Field{Key: "error", Value: err.Error()})
		}
	}
	m.wg.Wait()
}
