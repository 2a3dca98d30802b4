package config

import "context"

// Loader is the interface for a format-specific base configuration loader.
type Loader interface {
	// Load reads the configuration at path and returns it overlaid on
	// Defaults().
	Load(ctx context.Context, path string) (*Base, error)
}

// DefaultLoader serves Defaults() without reading anything. It is used when
// no base configuration file is given.
type DefaultLoader struct{}

// Load implements Loader.
func (DefaultLoader) Load(context.Context, string) (*Base, error) {
	return Defaults(), nil
}
