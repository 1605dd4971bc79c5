package roster

import (
	"slices"
	"strings"
	"time"
)

// Location is where the campaign is on a given day.
type Location struct {
	SystemID  string `json:"system_id" yaml:"system_id"`
	InTransit bool   `json:"in_transit,omitempty" yaml:"in_transit"`
}

// Campaign is the host campaign as seen by the personnel engines. All
// lookups report absence rather than failing.
type Campaign interface {
	Today() time.Time
	FactionCode() string
	Location() Location
	// Reputation is the unit reputation score.
	Reputation() int
	// UnitRatingModifier is the turnover modifier derived from the unit
	// rating; positive values make people less likely to leave.
	UnitRatingModifier() int
	// Regard returns how faction regards the campaign, in [-100, 100].
	Regard(faction string) float64
	Personnel() []*Person
	Person(id string) (*Person, bool)
	Unit(id string) (*Unit, bool)
	Missions() []*Mission
	Mission(id string) (*Mission, bool)
}

// ActivePersonnel returns the active members of the campaign roster.
func ActivePersonnel(c Campaign) []*Person {
	var active []*Person
	for _, p := range c.Personnel() {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// ActiveMissions returns the campaign's running missions.
func ActiveMissions(c Campaign) []*Mission {
	var active []*Mission
	for _, m := range c.Missions() {
		if m.IsActive() {
			active = append(active, m)
		}
	}
	return active
}

// Memory is an in-memory Campaign that also carries the mutations the host
// applies: hiring, status changes, and removals.
type Memory struct {
	Date       time.Time
	Faction    string
	Where      Location
	Rep        int
	RatingMod  int
	Standings  map[string]float64
	people     map[string]*Person
	order      []string
	units      map[string]*Unit
	missions   map[string]*Mission
	missionIDs []string
}

// NewMemory builds an empty campaign roster.
func NewMemory(date time.Time, faction string, where Location) *Memory {
	return &Memory{
		Date:      Date(date),
		Faction:   strings.TrimSpace(faction),
		Where:     where,
		Standings: make(map[string]float64),
		people:    make(map[string]*Person),
		units:     make(map[string]*Unit),
		missions:  make(map[string]*Mission),
	}
}

// Today implements Campaign.
func (m *Memory) Today() time.Time { return m.Date }

// FactionCode implements Campaign.
func (m *Memory) FactionCode() string { return m.Faction }

// Location implements Campaign.
func (m *Memory) Location() Location { return m.Where }

// Reputation implements Campaign.
func (m *Memory) Reputation() int { return m.Rep }

// UnitRatingModifier implements Campaign.
func (m *Memory) UnitRatingModifier() int { return m.RatingMod }

// Regard implements Campaign.
func (m *Memory) Regard(faction string) float64 {
	return m.Standings[faction]
}

// Personnel implements Campaign. People are returned in insertion order.
func (m *Memory) Personnel() []*Person {
	out := make([]*Person, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.people[id])
	}
	return out
}

// Person implements Campaign.
func (m *Memory) Person(id string) (*Person, bool) {
	p, ok := m.people[id]
	return p, ok
}

// Unit implements Campaign.
func (m *Memory) Unit(id string) (*Unit, bool) {
	u, ok := m.units[id]
	return u, ok
}

// Units returns every unit sorted by id.
func (m *Memory) Units() []*Unit {
	ids := make([]string, 0, len(m.units))
	for id := range m.units {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Unit, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.units[id])
	}
	return out
}

// Missions implements Campaign. Missions are returned in insertion order.
func (m *Memory) Missions() []*Mission {
	out := make([]*Mission, 0, len(m.missionIDs))
	for _, id := range m.missionIDs {
		out = append(out, m.missions[id])
	}
	return out
}

// Mission implements Campaign.
func (m *Memory) Mission(id string) (*Mission, bool) {
	mission, ok := m.missions[id]
	return mission, ok
}

// AddPerson adds p to the roster. It reports false when p is nil, has no id,
// or the id is already taken.
func (m *Memory) AddPerson(p *Person) bool {
	if p == nil || p.ID == "" {
		return false
	}
	if _, exists := m.people[p.ID]; exists {
		return false
	}
	m.people[p.ID] = p
	m.order = append(m.order, p.ID)
	return true
}

// RemovePerson deletes a person outright, including unit membership.
func (m *Memory) RemovePerson(id string) bool {
	if _, ok := m.people[id]; !ok {
		return false
	}
	delete(m.people, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	for _, u := range m.units {
		u.MemberIDs = slices.DeleteFunc(u.MemberIDs, func(v string) bool { return v == id })
		if u.CommanderID == id {
			u.CommanderID = ""
		}
	}
	return true
}

// ChangeStatus moves a person to status. Departed people leave their unit.
func (m *Memory) ChangeStatus(id string, status Status) bool {
	p, ok := m.people[id]
	if !ok {
		return false
	}
	p.Status = status
	if status.Departed() && p.UnitID != "" {
		if u, ok := m.units[p.UnitID]; ok {
			u.MemberIDs = slices.DeleteFunc(u.MemberIDs, func(v string) bool { return v == id })
			if u.CommanderID == id {
				u.CommanderID = ""
			}
		}
		p.UnitID = ""
		p.Commander = false
	}
	return true
}

// PutUnit adds or replaces a unit.
func (m *Memory) PutUnit(u *Unit) {
	if u == nil || u.ID == "" {
		return
	}
	m.units[u.ID] = u
}

// PutMission adds or replaces a mission.
func (m *Memory) PutMission(mission *Mission) {
	if mission == nil || mission.ID == "" {
		return
	}
	if _, exists := m.missions[mission.ID]; !exists {
		m.missionIDs = append(m.missionIDs, mission.ID)
	}
	m.missions[mission.ID] = mission
}

// Advance moves the calendar forward by days.
func (m *Memory) Advance(days int) {
	m.Date = m.Date.AddDate(0, 0, days)
}

var _ Campaign = (*Memory)(nil)
