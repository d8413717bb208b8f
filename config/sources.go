package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v3"
)

// YamlFileSource loads a YAML document from disk.
type YamlFileSource struct {
	Path     string
	Optional bool
}

func (s *YamlFileSource) Name() string { return "yaml:" + s.Path }

func (s *YamlFileSource) Load() (map[string]any, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if s.Optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	data := make(map[string]any)
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return data, nil
}

// JSONFileSource loads a JSON document from disk.
type JSONFileSource struct {
	Path     string
	Optional bool
}

func (s *JSONFileSource) Name() string { return "json:" + s.Path }

func (s *JSONFileSource) Load() (map[string]any, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if s.Optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return data, nil
}

// EnvironmentSource reads variables starting with Prefix. The remainder
// of each name is lowercased and split on underscores into nested keys.
type EnvironmentSource struct {
	Prefix string
}

func (s *EnvironmentSource) Name() string { return "env:" + s.Prefix }

func (s *EnvironmentSource) Load() (map[string]any, error) {
	data := make(map[string]any)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, s.Prefix) {
			continue
		}
		parts := strings.Split(strings.ToLower(strings.TrimPrefix(name, s.Prefix)), "_")
		setPath(data, parts, value)
	}
	return data, nil
}

// InMemorySource serves a fixed map. Used for tests and defaults.
type InMemorySource struct {
	Data map[string]any
}

func (s *InMemorySource) Name() string { return "memory" }

func (s *InMemorySource) Load() (map[string]any, error) {
	out := make(map[string]any, len(s.Data))
	mergeMaps(out, s.Data)
	return out, nil
}

// EtcdOptions configures the etcd source.
type EtcdOptions struct {
	Endpoints   []string
	Username    string
	Password    string
	Prefix      string
	Timeout     time.Duration
	DialTimeout time.Duration
}

// EtcdSource reads every key under Prefix from etcd. Key segments are
// separated by "/" and become nested configuration keys; values parse
// as YAML scalars, so numbers and booleans keep their type.
type EtcdSource struct {
	Options EtcdOptions
}

// NewEtcdSource creates an etcd source with defaulted timeouts.
func NewEtcdSource(opts EtcdOptions) *EtcdSource {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	return &EtcdSource{Options: opts}
}

func (s *EtcdSource) Name() string { return "etcd:" + s.Options.Prefix }

func (s *EtcdSource) Load() (map[string]any, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   s.Options.Endpoints,
		Username:    s.Options.Username,
		Password:    s.Options.Password,
		DialTimeout: s.Options.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect etcd: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.Options.Timeout)
	defer cancel()

	resp, err := client.Get(ctx, s.Options.Prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to read keys under %q: %w", s.Options.Prefix, err)
	}

	data := make(map[string]any)
	for _, kv := range resp.Kvs {
		key := strings.TrimPrefix(string(kv.Key), s.Options.Prefix)
		key = strings.Trim(key, "/")
		if key == "" {
			continue
		}

		var value any
		if err := yaml.Unmarshal(kv.Value, &value); err != nil {
			value = string(kv.Value)
		}
		setPath(data, strings.Split(key, "/"), value)
	}
	return data, nil
}

func setPath(data map[string]any, parts []string, value any) {
	for i, part := range parts {
		if i == len(parts)-1 {
			data[part] = value
			return
		}
		next, ok := data[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			data[part] = next
		}
		data = next
	}
}
