package hosting_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/wiremap/hosting"
)

type fakeService struct {
	name string
	fail error

	mu      sync.Mutex
	started bool
	stops   *[]string
}

func (s *fakeService) Start(ctx context.Context) error {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stops != nil {
		*s.stops = append(*s.stops, s.name)
	}
	return nil
}

func (s *fakeService) wasStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func TestManagerStartsEveryService(t *testing.T) {
	m := hosting.NewManager(nil)
	a := &fakeService{name: "a"}
	b := &fakeService{name: "b"}
	m.Add(a)
	m.Add(b)
	require.Equal(t, 2, m.Len())

	ctx, cancel := context.WithCancel(context.Background())
	_ = m.StartAll(ctx)

	require.Eventually(t, a.wasStarted, time.Second, 5*time.Millisecond)
	require.Eventually(t, b.wasStarted, time.Second, 5*time.Millisecond)

	cancel()
	m.StopAll(context.Background())
}

func TestManagerStopsInReverseOrder(t *testing.T) {
	var stops []string
	m := hosting.NewManager(nil)
	m.Add(&fakeService{name: "first", stops: &stops})
	m.Add(&fakeService{name: "second", stops: &stops})

	ctx, cancel := context.WithCancel(context.Background())
	_ = m.StartAll(ctx)
	cancel()
	m.StopAll(context.Background())

	assert.Equal(t, []string{"second", "first"}, stops)
}

func TestManagerReportsFailure(t *testing.T) {
	m := hosting.NewManager(nil)
	m.Add(&fakeService{name: "bad", fail: assert.AnError})

	errCh := m.StartAll(context.Background())
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, assert.AnError)
	case <-time.After(time.Second):
		t.Fatal("failure never surfaced")
	}
	m.StopAll(context.Background())
}

func TestManagerIgnoresContextCancellation(t *testing.T) {
	m := hosting.NewManager(nil)
	m.Add(&fakeService{name: "a"})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := m.StartAll(ctx)
	cancel()
	m.StopAll(context.Background())

	select {
	case err := <-errCh:
		t.Fatalf("cancellation should not be a failure, got %v", err)
	default:
	}
}
