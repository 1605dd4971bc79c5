package id

import (
	"encoding/base32"
	"strings"
	"testing"

	"github.com/louisbranch/personnel.dynamics/internal/random"
)

func TestGeneratorFormat(t *testing.T) {
	id, err := NewGenerator(random.NewSeeded(3)).Next()
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if strings.Contains(id, "=") {
		t.Fatal("expected no padding")
	}
	if len(id) != 26 {
		t.Fatalf("expected 26-character id, got %d", len(id))
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			t.Fatalf("unexpected character %q in id", r)
		}
	}
	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(id))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if variant := decoded[8] & 0xC0; variant != 0x80 {
		t.Fatalf("expected variant 0x80, got 0x%X", variant)
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(random.NewSeeded(11))
	b := NewGenerator(random.NewSeeded(11))
	for i := 0; i < 5; i++ {
		x, err := a.Next()
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		y, err := b.Next()
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if x != y {
			t.Fatalf("id %d = %q, want %q", i, y, x)
		}
		if len(x) != 26 {
			t.Fatalf("expected 26-character id, got %d", len(x))
		}
	}
}

func TestGeneratorSetsUUIDVersion(t *testing.T) {
	value, err := NewGenerator(random.Zero{}).Next()
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(value))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if version := decoded[6] >> 4; version != 4 {
		t.Fatalf("expected version 4, got %d", version)
	}
}
