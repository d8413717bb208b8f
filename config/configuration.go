// Package config loads application configuration from ordered sources
// (YAML/JSON files, environment variables, in-memory maps, etcd) and
// turns the merged tree into wiremap unit definitions.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocrud/wiremap/core"
)

// Source is one configuration provider. Later sources override earlier
// ones during Build.
type Source interface {
	Load() (map[string]any, error)
	Name() string
}

// Builder assembles a Configuration from ordered sources.
type Builder struct {
	sources []Source
}

// NewBuilder creates an empty configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a source.
func (b *Builder) Add(source Source) *Builder {
	b.sources = append(b.sources, source)
	return b
}

// AddYamlFile appends a YAML file source. An optional file that does not
// exist loads as empty.
func (b *Builder) AddYamlFile(path string, optional ...bool) *Builder {
	return b.Add(&YamlFileSource{Path: path, Optional: len(optional) > 0 && optional[0]})
}

// AddJSONFile appends a JSON file source.
func (b *Builder) AddJSONFile(path string, optional ...bool) *Builder {
	return b.Add(&JSONFileSource{Path: path, Optional: len(optional) > 0 && optional[0]})
}

// AddEnvironmentVariables appends an environment source. Only variables
// starting with prefix are read; underscores nest keys, so
// APP_WEB_PORT=8080 becomes web.port with prefix "APP_".
func (b *Builder) AddEnvironmentVariables(prefix string) *Builder {
	return b.Add(&EnvironmentSource{Prefix: prefix})
}

// AddInMemory appends a fixed map source.
func (b *Builder) AddInMemory(data map[string]any) *Builder {
	return b.Add(&InMemorySource{Data: data})
}

// AddEtcd appends an etcd source.
func (b *Builder) AddEtcd(opts EtcdOptions) *Builder {
	return b.Add(NewEtcdSource(opts))
}

// Build loads every source in order and merges the results, later
// sources overriding earlier ones key by key.
func (b *Builder) Build() (*Configuration, error) {
	cfg := &Configuration{data: make(map[string]any)}
	for _, source := range b.sources {
		data, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("config: failed to load source %s: %w", source.Name(), err)
		}
		mergeMaps(cfg.data, data)
	}
	return cfg, nil
}

// Configuration is the merged, read-only configuration tree.
type Configuration struct {
	data map[string]any
}

// Get returns the value at a dot-path as a string, or "" when missing.
func (c *Configuration) Get(key string) string {
	v := c.byPath(key)
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// GetWithDefault returns the value at key, or def when missing.
func (c *Configuration) GetWithDefault(key, def string) string {
	if v := c.Get(key); v != "" {
		return v
	}
	return def
}

// GetInt returns the value at key as an int.
func (c *Configuration) GetInt(key string) (int, error) {
	v := c.byPath(key)
	if v == nil {
		return 0, fmt.Errorf("config: key %s not found", key)
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, fmt.Errorf("config: cannot convert %v to int", v)
	}
}

// GetBool returns the value at key as a bool.
func (c *Configuration) GetBool(key string) (bool, error) {
	v := c.byPath(key)
	if v == nil {
		return false, fmt.Errorf("config: key %s not found", key)
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	default:
		return false, fmt.Errorf("config: cannot convert %v to bool", v)
	}
}

// Bind unmarshals the subtree at key into target through a JSON
// round-trip. An empty key binds the whole tree.
func (c *Configuration) Bind(key string, target any) error {
	var data any
	if key == "" {
		data = c.data
	} else {
		data = c.byPath(key)
	}
	if data == nil {
		return fmt.Errorf("config: key %s not found", key)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("config: failed to marshal section %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("config: failed to bind section %q: %w", key, err)
	}
	return nil
}

// Defs converts the configuration tree into wiremap definitions: nested
// maps become namespaces, scalars become value units. The result is
// typically merged into an application's defs so units can resolve their
// settings through the injector.
func (c *Configuration) Defs() core.Defs {
	return mapToDefs("", c.data)
}

func mapToDefs(parent string, data map[string]any) core.Defs {
	defs := make(core.Defs, len(data))
	for key, v := range data {
		if nested, ok := v.(map[string]any); ok {
			path := key
			if parent != "" {
				path = parent + "." + key
			}
			defs[key] = core.Namespace(path, mapToDefs(path, nested))
			continue
		}
		defs[key] = v
	}
	return defs
}

func (c *Configuration) byPath(key string) any {
	parts := strings.Split(key, ".")
	current := any(c.data)
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// mergeMaps deep-merges src into dst, src winning on scalar conflicts.
func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeMaps(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}
