// Package faction exposes read-only faction and star-system data: who exists,
// who is at war or allied in a given year, and which factions hold a system.
package faction

import "strings"

// Codes of the factions every campaign can reach.
const (
	Mercenary = "MERC"
	Pirate    = "PIR"
	ComStar   = "CS"
)

// Faction is one political entity.
type Faction struct {
	Code      string `yaml:"code"`
	Name      string `yaml:"name"`
	Clan      bool   `yaml:"clan"`
	Pirate    bool   `yaml:"pirate"`
	Mercenary bool   `yaml:"mercenary"`
	ComStar   bool   `yaml:"comstar"`
}

// IsOutlaw reports whether the faction recruits from outside the law:
// pirates and mercenaries.
func (f Faction) IsOutlaw() bool {
	return f.Pirate || f.Mercenary
}

// HiringHall grades the local recruiting infrastructure of a system.
type HiringHall string

const (
	HiringHallNone         HiringHall = "none"
	HiringHallQuestionable HiringHall = "questionable"
	HiringHallMinor        HiringHall = "minor"
	HiringHallStandard     HiringHall = "standard"
	HiringHallGreat        HiringHall = "great"
)

// Tier returns the numeric hiring-hall tier, zero for none or unknown values.
func (h HiringHall) Tier() int {
	switch HiringHall(strings.ToLower(string(h))) {
	case HiringHallQuestionable:
		return 1
	case HiringHallMinor:
		return 2
	case HiringHallStandard:
		return 3
	case HiringHallGreat:
		return 4
	default:
		return 0
	}
}

// System is one star system.
type System struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Population   int64       `yaml:"population"`
	HiringHall   HiringHall  `yaml:"hiring_hall"`
	Capital      bool        `yaml:"capital"`
	MajorCapital bool        `yaml:"major_capital"`
	Ownership    []Ownership `yaml:"ownership"`
}

// Ownership records a faction holding a system for [Start, End). End zero
// means the holding never ends.
type Ownership struct {
	Faction string `yaml:"faction"`
	Start   int    `yaml:"start"`
	End     int    `yaml:"end"`
}

// Registry is the read-only faction data source.
type Registry interface {
	Faction(code string) (Faction, bool)
	System(id string) (System, bool)
	// FactionsAt returns the faction codes present in the system in year,
	// in declaration order.
	FactionsAt(systemID string, year int) []string
	AtWar(a, b string, year int) bool
	Allied(a, b string, year int) bool
}
