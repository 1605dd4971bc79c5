// Package id generates URL-safe identifiers for personnel records.
//
// Identifiers are UUIDv4 bytes encoded as base32 (RFC 4648) with no padding.
// The resulting strings are 26 characters long, lowercase, and safe for use
// in URLs, file paths, and save documents.
package id

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/personnel.dynamics/internal/random"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generator produces identifiers from a deterministic random source so
// seeded simulations mint the same ids on every run.
type Generator struct {
	r io.Reader
}

// NewGenerator builds a Generator drawing bytes from src.
func NewGenerator(src random.Source) *Generator {
	return &Generator{r: sourceReader{src: src}}
}

// Next returns the next identifier.
func (g *Generator) Next() (string, error) {
	u, err := uuid.NewRandomFromReader(g.r)
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return encode(u), nil
}

func encode(u uuid.UUID) string {
	return strings.ToLower(encoding.EncodeToString(u[:]))
}

type sourceReader struct {
	src random.Source
}

func (s sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(s.src.IntN(256))
	}
	return len(p), nil
}
