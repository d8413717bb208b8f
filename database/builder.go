// Package database contributes named gorm connections under the
// "database" namespace. Opened connections register with a private
// manager unit that closes them during application shutdown.
package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gocrud/wiremap/core"
)

type connection struct {
	dialector gorm.Dialector
	config    *gorm.Config
}

// Builder assembles the "database" namespace, one *gorm.DB unit per name.
type Builder struct {
	conns map[string]connection
	order []string
}

// New creates an empty database builder.
func New() *Builder {
	return &Builder{conns: make(map[string]connection)}
}

// Add registers a named connection. Add("main", sqlite.Open(dsn))
// resolves as "database.main".
func (b *Builder) Add(name string, dialector gorm.Dialector, configure ...func(*gorm.Config)) *Builder {
	cfg := &gorm.Config{}
	for _, fn := range configure {
		fn(cfg)
	}
	if _, ok := b.conns[name]; !ok {
		b.order = append(b.order, name)
	}
	b.conns[name] = connection{dialector: dialector, config: cfg}
	return b
}

// Namespace returns "database".
func (b *Builder) Namespace() string { return "database" }

// Defs returns one factory unit per connection plus the private manager
// tracking opened handles.
func (b *Builder) Defs() (core.Defs, error) {
	if len(b.conns) == 0 {
		return nil, fmt.Errorf("database: no connections registered")
	}
	for _, name := range b.order {
		if name == "" {
			return nil, fmt.Errorf("database: connection name must not be empty")
		}
		if b.conns[name].dialector == nil {
			return nil, fmt.Errorf("database: connection %q has no dialector", name)
		}
	}

	manager := NewManager()
	defs := core.Defs{
		"manager": core.Private(manager),
	}
	for _, name := range b.order {
		name := name
		conn := b.conns[name]
		defs[name] = core.Factory(func(inj *core.Injector) (any, error) {
			db, err := gorm.Open(conn.dialector, conn.config)
			if err != nil {
				return nil, fmt.Errorf("database: failed to open %q: %w", name, err)
			}
			manager.track(name, db)
			return db, nil
		})
	}
	return defs, nil
}
