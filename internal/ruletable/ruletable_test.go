package ruletable

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/personnel.dynamics/internal/market"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
)

const sample = `
rulesets:
  camops:
    non_clan:
      - {profession: Scout, weight: 40, count: 10, intro_year: 2300, extinct_year: -1}
      - {profession: tech, weight: 5, count: 2, intro_year: 3000, extinct_year: 3100, fallback: scout}
    clan:
      - {profession: mekwarrior, weight: 50, count: 12, intro_year: 2807}
  mekhq:
    non_clan:
      - {profession: scout, weight: 10, count: 1, intro_year: 2300}
`

func TestLoad(t *testing.T) {
	set, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	camops, ok := set[market.RuleSetCamOps]
	if !ok {
		t.Fatal("expected camops rule set")
	}
	scout, ok := camops.NonClan.Lookup("scout")
	if !ok {
		t.Fatal("expected normalized scout entry")
	}
	if scout.Weight != 40 || scout.Count != 10 || scout.ExtinctYear != market.MaxYear {
		t.Fatalf("scout = %+v, want weight 40 count 10 never extinct", scout)
	}
	tech, _ := camops.NonClan.Lookup("tech")
	if tech.Fallback != "scout" || tech.ExtinctYear != 3100 {
		t.Fatalf("tech = %+v, want fallback scout until 3100", tech)
	}
	if len(camops.Clan) != 1 {
		t.Fatalf("clan entries = %d, want 1", len(camops.Clan))
	}
	if got := len(set[market.RuleSetMekHQ].Clan); got != 0 {
		t.Fatalf("mekhq clan entries = %d, want 0", got)
	}
	if problems := Problems(set); len(problems) != 0 {
		t.Fatalf("problems = %v, want none", problems)
	}
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown rule set", doc: "rulesets:\n  atb:\n    non_clan: []\n"},
		{name: "missing profession", doc: "rulesets:\n  mekhq:\n    non_clan:\n      - {weight: 1, count: 1}\n"},
		{name: "unknown field", doc: "rulesets:\n  mekhq:\n    non_clan:\n      - {profession: scout, wieght: 1}\n"},
		{name: "not yaml", doc: "rulesets: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if !errors.Is(err, apperrors.New(apperrors.CodeRuleTableInvalid, "")) {
				t.Fatalf("error = %v, want rule table invalid", err)
			}
		})
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	set, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("rule sets = %d, want 0", len(set))
	}
}

func TestProblems(t *testing.T) {
	set := market.TableSet{
		market.RuleSetMekHQ: {
			NonClan: market.NewTable(
				market.Entry{Profession: "a", Weight: 0, Count: 1, Fallback: "b"},
				market.Entry{Profession: "b", Weight: 1, Count: 0, Fallback: "a"},
				market.Entry{Profession: "c", Weight: 0, Count: 0, Fallback: "gone"},
			),
		},
	}
	problems := Problems(set)
	codes := map[apperrors.Code]int{}
	for _, p := range problems {
		codes[apperrors.GetCode(p)]++
	}
	if codes[apperrors.CodeRuleTableEmpty] != 1 {
		t.Fatalf("empty table problems = %d, want 1 (%v)", codes[apperrors.CodeRuleTableEmpty], problems)
	}
	if codes[apperrors.CodeFallbackMissing] != 1 {
		t.Fatalf("missing fallback problems = %d, want 1 (%v)", codes[apperrors.CodeFallbackMissing], problems)
	}
	if codes[apperrors.CodeFallbackExhausted] != 2 {
		t.Fatalf("cycle problems = %d, want 2 (%v)", codes[apperrors.CodeFallbackExhausted], problems)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, apperrors.New(apperrors.CodeFixtureLoad, "")) {
		t.Fatalf("error = %v, want fixture load", err)
	}
}
