// Package id generates prefixed unique identifiers using nanoid.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a new prefixed ID like "sess-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nano, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return fmt.Sprintf("%s-%s", prefix, nano), nil
}

// MustGenerate is like Generate but panics on failure.
// Nanoid only fails when the system entropy source is broken.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return id
}
