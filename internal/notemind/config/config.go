package config

import (
	"github.com/kiosk404/echonote/internal/notemind/options"
)

// Config is the running configuration of a notemind session.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration from options.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
