package market

import (
	"slices"
	"time"

	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Reasons a cycle produced no applicants.
const (
	ReasonDisabled         = "disabled"
	ReasonNoOriginFactions = "no_origin_factions"
	ReasonInTransit        = "in_transit"
	ReasonActiveMission    = "active_mission"
	ReasonNoProfessions    = "no_professions"
)

// State is the market snapshot of one campaign. Today, Year, Location,
// OriginFactions, Rolls, HasRare, RareProfessions and Blocked are derived
// and recomputed at the start of every cycle.
type State struct {
	Style             Style
	Today             time.Time
	Year              int
	Location          roster.Location
	OriginFactions    []string
	Applicants        []*roster.Person
	OfferingIncentive bool
	HasRare           bool
	RareProfessions   []roster.Profession
	Rolls             int
	LastFilter        int
	Blocked           string
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.OriginFactions = slices.Clone(s.OriginFactions)
	c.RareProfessions = slices.Clone(s.RareProfessions)
	c.Applicants = make([]*roster.Person, 0, len(s.Applicants))
	for _, p := range s.Applicants {
		c.Applicants = append(c.Applicants, p.Clone())
	}
	return c
}

// IsRare reports whether profession was flagged rare this cycle.
func (s State) IsRare(profession roster.Profession) bool {
	return slices.Contains(s.RareProfessions, profession)
}

func (s *State) reset(c roster.Campaign) {
	s.Today = roster.Date(c.Today())
	s.Year = s.Today.Year()
	s.Location = c.Location()
	s.OriginFactions = nil
	s.Applicants = nil
	s.HasRare = false
	s.RareProfessions = nil
	s.Rolls = 0
	s.Blocked = ""
}

func (s *State) flagRare(profession roster.Profession) {
	if slices.Contains(s.RareProfessions, profession) {
		return
	}
	s.HasRare = true
	s.RareProfessions = append(s.RareProfessions, profession)
}

// Cycle is the summary handed to the notify hook after a cycle that
// produced applicants.
type Cycle struct {
	Date       time.Time
	Style      Style
	Rolls      int
	Applicants []*roster.Person
	Rare       []roster.Profession
}
