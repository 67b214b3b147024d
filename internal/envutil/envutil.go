// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"
)

// Lookup returns the trimmed value of key, or fallback when it is unset or blank.
// Example: Lookup("SLS_DOCKER_CLI", "docker") returns "podman" when SLS_DOCKER_CLI=podman
func Lookup(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// IsSet reports whether key holds a non-blank value.
func IsSet(key string) bool {
	return strings.TrimSpace(os.Getenv(key)) != ""
}
