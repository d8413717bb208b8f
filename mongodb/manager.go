package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Manager tracks connected clients and disconnects them on Close.
type Manager struct {
	mu      sync.Mutex
	clients map[string]*mongo.Client
	order   []string
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{clients: make(map[string]*mongo.Client)}
}

func (m *Manager) track(name string, client *mongo.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[name]; !ok {
		m.order = append(m.order, name)
	}
	m.clients[name] = client
}

// Len returns the number of tracked clients.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// Close disconnects every tracked client, joining failures.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		if err := m.clients[name].Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb: %q: %w", name, err))
		}
	}
	m.clients = make(map[string]*mongo.Client)
	m.order = nil
	return errors.Join(errs...)
}
