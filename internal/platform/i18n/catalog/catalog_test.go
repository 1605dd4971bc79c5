package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}
	base := bundle.LocaleMessages(BaseLocale)
	for key := range base {
		if _, ok := bundle.LocaleMessages("pt-BR")[key]; !ok {
			t.Fatalf("pt-BR is missing %q", key)
		}
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/report.yaml"), `locale: "en-US"
namespace: "report"
messages:
  "other.key": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/report.yaml"), `locale: "pt-BR"
namespace: "report"
messages:
  "report.key": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/report.yaml"), `locale: "pt-BR"
namespace: "report"
messages:
  "report.key": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	value, ok := bundle.Message("fr-FR", "report.reason.in_transit")
	if !ok || value != "the unit is in transit" {
		t.Fatalf("message = %q, %v; want base locale text", value, ok)
	}
	if _, ok := bundle.Message("en-US", " "); ok {
		t.Fatal("blank key should not resolve")
	}
}

func TestResolve(t *testing.T) {
	bundle := Default()
	tests := map[string]string{
		"pt-BR": "pt-BR",
		"pt-PT": "pt-BR",
		"fr-FR": BaseLocale,
		"":      BaseLocale,
	}
	for in, want := range tests {
		if got := bundle.Resolve(in); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
