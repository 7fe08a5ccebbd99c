// Package config reads process configuration from the environment,
// with fallback defaults for local/demo runs.
package config

import (
	"fmt"
	"os"
)

// Get returns the environment variable named key, or fallback if unset
// or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustGet returns the environment variable named key, or panics if it
// is unset or empty. Use for settings that have no safe default
// (API keys, database URLs).
func MustGet(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("config: required environment variable %q is not set", key))
	}
	return v
}
