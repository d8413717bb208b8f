package database

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Manager tracks opened gorm handles and closes their underlying pools.
type Manager struct {
	mu    sync.Mutex
	dbs   map[string]*gorm.DB
	order []string
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{dbs: make(map[string]*gorm.DB)}
}

func (m *Manager) track(name string, db *gorm.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dbs[name]; !ok {
		m.order = append(m.order, name)
	}
	m.dbs[name] = db
}

// Len returns the number of tracked connections.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dbs)
}

// Close closes every tracked connection pool, joining failures.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		sqlDB, err := m.dbs[name].DB()
		if err != nil {
			errs = append(errs, fmt.Errorf("database: %q: %w", name, err))
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %q: %w", name, err))
		}
	}
	m.dbs = make(map[string]*gorm.DB)
	m.order = nil
	return errors.Join(errs...)
}
