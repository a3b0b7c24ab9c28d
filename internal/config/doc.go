// Package config loads application settings from defaults, an optional
// config.yaml and GEMKI_-prefixed environment variables, and validates them
// with struct tags before anything else starts.
package config
