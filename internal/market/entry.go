package market

import (
	"math"
	"slices"
	"strings"

	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

const (
	// NeverExtinct marks an entry that stays available forever.
	NeverExtinct = -1
	// MaxYear is the extinction year NeverExtinct normalizes to.
	MaxYear = math.MaxInt
)

// Entry is one profession's recruitment profile.
type Entry struct {
	Profession  roster.Profession `yaml:"profession"`
	Weight      int               `yaml:"weight"`
	Count       int               `yaml:"count"`
	IntroYear   int               `yaml:"intro_year"`
	ExtinctYear int               `yaml:"extinct_year"`
	Fallback    roster.Profession `yaml:"fallback"`
}

// normalize cleans identifiers and maps the extinction sentinel to MaxYear.
func (e Entry) normalize() Entry {
	e.Profession = e.Profession.Normalize()
	e.Fallback = e.Fallback.Normalize()
	if e.ExtinctYear == NeverExtinct || e.ExtinctYear == 0 {
		e.ExtinctYear = MaxYear
	}
	return e
}

// ValidIn reports whether year falls in [IntroYear, ExtinctYear).
func (e Entry) ValidIn(year int) bool {
	return year >= e.IntroYear && year < e.ExtinctYear
}

// Eligible reports whether the entry can reach the selector.
func (e Entry) Eligible() bool {
	return e.Weight > 0 && e.Count > 0
}

// Table maps professions to their entries for one faction class.
type Table map[roster.Profession]Entry

// NewTable builds a table from entries. Later duplicates replace earlier
// ones; entries without a profession are dropped.
func NewTable(entries ...Entry) Table {
	t := make(Table, len(entries))
	for _, e := range entries {
		e = e.normalize()
		if e.Profession == "" {
			continue
		}
		t[e.Profession] = e
	}
	return t
}

// Lookup returns the entry for profession.
func (t Table) Lookup(profession roster.Profession) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t[profession.Normalize()]
	return e, ok
}

// Sanitize drops entries with a non-positive weight or count. The input is
// not modified.
func Sanitize(t Table) Table {
	out := make(Table, len(t))
	for k, e := range t {
		if e.Eligible() {
			out[k] = e
		}
	}
	return out
}

// Sorted returns the table's entries ordered by profession name.
func Sorted(t Table) []Entry {
	out := make([]Entry, 0, len(t))
	for _, e := range t {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(string(a.Profession), string(b.Profession))
	})
	return out
}

// Tables holds the clan and non-clan tables of one rule set.
type Tables struct {
	Clan    Table
	NonClan Table
}

// For returns the table that applies to a campaign faction.
func (t Tables) For(clan bool) Table {
	if clan {
		return t.Clan
	}
	return t.NonClan
}

// TableSet maps rule set names to their tables.
type TableSet map[string]Tables
