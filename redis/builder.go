// Package redis contributes named redis clients under the "redis"
// namespace. Clients close during application shutdown through their
// io.Closer implementation.
package redis

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gocrud/wiremap/core"
)

// Builder assembles the "redis" namespace, one client unit per name.
type Builder struct {
	clients map[string]Options
	order   []string
}

// New creates an empty redis builder.
func New() *Builder {
	return &Builder{clients: make(map[string]Options)}
}

// Add registers a named client. The unit key under "redis" is the name,
// so Add("cache", ...) resolves as "redis.cache".
func (b *Builder) Add(name string, configure ...func(*Options)) *Builder {
	o := Options{
		Addr: "localhost:6379",
	}
	for _, fn := range configure {
		fn(&o)
	}
	if _, ok := b.clients[name]; !ok {
		b.order = append(b.order, name)
	}
	b.clients[name] = o
	return b
}

// Namespace returns "redis".
func (b *Builder) Namespace() string { return "redis" }

// Defs returns one factory unit per client plus the private options map
// the factories read their settings from.
func (b *Builder) Defs() (core.Defs, error) {
	if len(b.clients) == 0 {
		return nil, fmt.Errorf("redis: no clients registered")
	}
	for _, name := range b.order {
		if err := b.clients[name].validate(name); err != nil {
			return nil, err
		}
	}

	defs := core.Defs{
		"options": core.Private(b.clients),
	}
	for _, name := range b.order {
		name := name
		defs[name] = core.Factory(func(inj *core.Injector) (any, error) {
			v, err := inj.Get("options")
			if err != nil {
				return nil, err
			}
			o := v.(map[string]Options)[name]
			return goredis.NewClient(&goredis.Options{
				Addr:         o.Addr,
				Username:     o.Username,
				Password:     o.Password,
				DB:           o.DB,
				PoolSize:     o.PoolSize,
				DialTimeout:  o.DialTimeout,
				ReadTimeout:  o.ReadTimeout,
				WriteTimeout: o.WriteTimeout,
			}), nil
		})
	}
	return defs, nil
}
