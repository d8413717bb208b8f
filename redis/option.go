package redis

import (
	"fmt"
	"time"
)

// Options holds the settings for one named client.
type Options struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (o Options) validate(name string) error {
	if name == "" {
		return fmt.Errorf("redis: client name must not be empty")
	}
	if o.Addr == "" {
		return fmt.Errorf("redis: client %q has no address", name)
	}
	if o.DB < 0 {
		return fmt.Errorf("redis: client %q has negative db index", name)
	}
	return nil
}
