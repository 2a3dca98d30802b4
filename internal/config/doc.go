// Package config defines the format-agnostic model of the base configuration
// file, along with the Loader interface that format-specific packages
// implement.
//
// The base configuration describes everything that does not depend on the
// build mode: entry module, output location, module resolution, the
// application shell template, the site icon, the injected variable names,
// extra asset rules and free-form settings. Concrete loaders for HCL and
// JSONC live in separate packages.
package config
