// Package service provides license key generation.
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// KeyGenerator defines the interface for license key generation.
type KeyGenerator interface {
	Generate() string
	Validate(key string) error
}

type uuidKeyGenerator struct{}

// NewUUIDKeyGenerator creates a key generator producing random 128-bit keys
// rendered as uppercase hyphenated hex (canonical UUIDv4 text form).
func NewUUIDKeyGenerator() KeyGenerator {
	return &uuidKeyGenerator{}
}

// Generate creates a new license key. The underlying UUIDv4 draws from
// crypto/rand; an entropy-source failure panics rather than producing a
// guessable key.
func (g *uuidKeyGenerator) Generate() string {
	return strings.ToUpper(uuid.NewString())
}

// Validate checks if the key is a well-formed license key.
func (g *uuidKeyGenerator) Validate(key string) error {
	if _, err := uuid.Parse(key); err != nil {
		return errors.New("invalid license key format")
	}
	return nil
}
