// Package mongodb contributes named mongo clients under the "mongo"
// namespace. Connections are async units: wiring resolves them eagerly
// and fails fast when a ping is requested and the server is unreachable.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	mongoopts "go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/gocrud/wiremap/core"
)

// Builder assembles the "mongo" namespace, one client unit per name.
type Builder struct {
	clients map[string]Options
	order   []string
}

// New creates an empty mongodb builder.
func New() *Builder {
	return &Builder{clients: make(map[string]Options)}
}

// Add registers a named client. Add("main", uri) resolves as
// "mongo.main".
func (b *Builder) Add(name, uri string, configure ...func(*Options)) *Builder {
	o := Options{URI: uri}
	for _, fn := range configure {
		fn(&o)
	}
	if _, ok := b.clients[name]; !ok {
		b.order = append(b.order, name)
	}
	b.clients[name] = o
	return b
}

// Namespace returns "mongo".
func (b *Builder) Namespace() string { return "mongo" }

// Defs returns one async factory unit per client plus the private
// manager disconnecting them on shutdown.
func (b *Builder) Defs() (core.Defs, error) {
	if len(b.clients) == 0 {
		return nil, fmt.Errorf("mongodb: no clients registered")
	}
	for _, name := range b.order {
		if name == "" {
			return nil, fmt.Errorf("mongodb: client name must not be empty")
		}
		if b.clients[name].URI == "" {
			return nil, fmt.Errorf("mongodb: client %q has no uri", name)
		}
	}

	manager := NewManager()
	defs := core.Defs{
		"manager": core.Private(manager),
	}
	for _, name := range b.order {
		name := name
		o := b.clients[name]
		defs[name] = core.AsyncFactory(func(ctx context.Context, inj *core.Injector) (any, error) {
			client, err := connect(ctx, o)
			if err != nil {
				return nil, fmt.Errorf("mongodb: failed to connect %q: %w", name, err)
			}
			manager.track(name, client)
			return client, nil
		})
	}
	return defs, nil
}

func connect(ctx context.Context, o Options) (*mongo.Client, error) {
	opts := mongoopts.Client().ApplyURI(o.URI)
	if o.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(o.MaxPoolSize)
	}
	if o.MinPoolSize > 0 {
		opts.SetMinPoolSize(o.MinPoolSize)
	}
	if o.ConnectTimeout > 0 {
		opts.SetConnectTimeout(o.ConnectTimeout)
	}
	if o.AppName != "" {
		opts.SetAppName(o.AppName)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	if o.Ping {
		pingCtx := ctx
		if o.PingTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, o.PingTimeout)
			defer cancel()
		}
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
	}
	return client, nil
}
