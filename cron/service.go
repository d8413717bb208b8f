package cron

import (
	"context"

	robfig "github.com/robfig/cron/v3"
)

// Service runs the scheduler as a hosted service.
type Service struct {
	cron *robfig.Cron
}

// Cron exposes the underlying scheduler, mainly for tests and for
// registering jobs after wiring.
func (s *Service) Cron() *robfig.Cron { return s.cron }

// Start runs the scheduler until the context is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	return nil
}

// Stop halts the scheduler and waits for running jobs, bounded by ctx.
func (s *Service) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
