// Package app contains the core application logic. It wires the
// environment resolver, the base configuration loader, the composer, the
// artifact encoder and the reload notifier together, decoupled from any
// specific entrypoint like a CLI.
package app
