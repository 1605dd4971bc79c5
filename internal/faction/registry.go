package faction

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
)

// Relation is a war or alliance between two factions over [Start, End).
// End zero means open-ended.
type Relation struct {
	Between []string `yaml:"between"`
	Start   int      `yaml:"start"`
	End     int      `yaml:"end"`
}

func (r Relation) covers(a, b string, year int) bool {
	if len(r.Between) != 2 {
		return false
	}
	if year < r.Start || (r.End != 0 && year >= r.End) {
		return false
	}
	x, y := r.Between[0], r.Between[1]
	return (x == a && y == b) || (x == b && y == a)
}

type document struct {
	Factions  []Faction  `yaml:"factions"`
	Systems   []System   `yaml:"systems"`
	Wars      []Relation `yaml:"wars"`
	Alliances []Relation `yaml:"alliances"`
}

// Static is an in-memory Registry.
type Static struct {
	factions  map[string]Faction
	systems   map[string]System
	wars      []Relation
	alliances []Relation
}

// NewStatic builds a registry from explicit data. The mercenary and pirate
// factions are always registered.
func NewStatic(factions []Faction, systems []System, wars, alliances []Relation) *Static {
	s := &Static{
		factions:  make(map[string]Faction, len(factions)+2),
		systems:   make(map[string]System, len(systems)),
		wars:      append([]Relation(nil), wars...),
		alliances: append([]Relation(nil), alliances...),
	}
	s.factions[Mercenary] = Faction{Code: Mercenary, Name: "Mercenary", Mercenary: true}
	s.factions[Pirate] = Faction{Code: Pirate, Name: "Pirates", Pirate: true}
	for _, f := range factions {
		code := strings.TrimSpace(f.Code)
		if code == "" {
			continue
		}
		f.Code = code
		s.factions[code] = f
	}
	for _, sys := range systems {
		if id := strings.TrimSpace(sys.ID); id != "" {
			sys.ID = id
			s.systems[id] = sys
		}
	}
	return s
}

// Load reads a registry document from r.
func Load(r io.Reader) (*Static, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, apperrors.Wrap(apperrors.CodeFixtureLoad, "decode faction registry", err)
	}
	return NewStatic(doc.Factions, doc.Systems, doc.Wars, doc.Alliances), nil
}

// LoadFile reads a registry document from path.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFixtureLoad, fmt.Sprintf("open faction registry %s", path), err)
	}
	defer f.Close()
	return Load(f)
}

// Faction implements Registry.
func (s *Static) Faction(code string) (Faction, bool) {
	f, ok := s.factions[code]
	return f, ok
}

// System implements Registry.
func (s *Static) System(id string) (System, bool) {
	sys, ok := s.systems[id]
	return sys, ok
}

// FactionsAt implements Registry.
func (s *Static) FactionsAt(systemID string, year int) []string {
	sys, ok := s.systems[systemID]
	if !ok {
		return nil
	}
	var codes []string
	seen := make(map[string]bool, len(sys.Ownership))
	for _, o := range sys.Ownership {
		if year < o.Start || (o.End != 0 && year >= o.End) || seen[o.Faction] {
			continue
		}
		seen[o.Faction] = true
		codes = append(codes, o.Faction)
	}
	return codes
}

// AtWar implements Registry.
func (s *Static) AtWar(a, b string, year int) bool {
	if a == b {
		return false
	}
	for _, w := range s.wars {
		if w.covers(a, b, year) {
			return true
		}
	}
	return false
}

// Allied implements Registry.
func (s *Static) Allied(a, b string, year int) bool {
	if a == b {
		return true
	}
	for _, al := range s.alliances {
		if al.covers(a, b, year) {
			return true
		}
	}
	return false
}

var _ Registry = (*Static)(nil)
