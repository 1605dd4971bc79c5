package roster

import "time"

// MissionKind classifies a contract.
type MissionKind string

const (
	MissionGarrison         MissionKind = "garrison"
	MissionCadre            MissionKind = "cadre"
	MissionRaid             MissionKind = "raid"
	MissionPlanetaryAssault MissionKind = "planetary_assault"
	MissionPirateHunting    MissionKind = "pirate_hunting"
	MissionRecon            MissionKind = "recon"
)

// MissionStatus is the completion status of a contract.
type MissionStatus string

const (
	MissionActive  MissionStatus = "active"
	MissionSuccess MissionStatus = "success"
	MissionPartial MissionStatus = "partial"
	MissionFailed  MissionStatus = "failed"
	MissionBreach  MissionStatus = "breach"
)

// Mission is one contract the campaign has taken.
type Mission struct {
	ID               string        `json:"id" yaml:"id"`
	Name             string        `json:"name" yaml:"name"`
	Kind             MissionKind   `json:"kind" yaml:"kind"`
	Status           MissionStatus `json:"status" yaml:"status"`
	Employer         string        `json:"employer,omitempty" yaml:"employer"`
	Enemy            string        `json:"enemy,omitempty" yaml:"enemy"`
	Start            time.Time     `json:"start" yaml:"start"`
	End              time.Time     `json:"end" yaml:"end"`
	SharePercent     int           `json:"share_percent,omitempty" yaml:"share_percent"`
	HostileTerritory bool          `json:"hostile_territory,omitempty" yaml:"hostile_territory"`
}

// IsActive reports whether the mission is still running.
func (m *Mission) IsActive() bool {
	return m != nil && (m.Status == MissionActive || m.Status == "")
}

// IsGarrison reports whether the mission is garrison-type duty.
func (m *Mission) IsGarrison() bool {
	return m != nil && (m.Kind == MissionGarrison || m.Kind == MissionCadre)
}

// EndsOn reports whether the mission's term ends on date.
func (m *Mission) EndsOn(date time.Time) bool {
	return m != nil && !m.End.IsZero() && Date(m.End).Equal(Date(date))
}
