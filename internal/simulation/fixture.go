package simulation

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/personnel.dynamics/internal/market"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/retirement"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// DefaultCampaignID names a campaign whose fixture carries no id.
const DefaultCampaignID = "campaign"

// Fixture is a campaign description loaded from YAML.
type Fixture struct {
	Campaign CampaignFixture    `yaml:"campaign"`
	Market   market.Options     `yaml:"market"`
	Turnover retirement.Options `yaml:"turnover"`
	People   []*roster.Person   `yaml:"people"`
	Units    []*roster.Unit     `yaml:"units"`
	Missions []MissionFixture   `yaml:"missions"`
}

// CampaignFixture holds the campaign-wide settings of a fixture.
type CampaignFixture struct {
	ID                 string             `yaml:"id"`
	Date               time.Time          `yaml:"date"`
	Faction            string             `yaml:"faction"`
	System             string             `yaml:"system"`
	InTransit          bool               `yaml:"in_transit"`
	Reputation         int                `yaml:"reputation"`
	UnitRatingModifier int                `yaml:"unit_rating_modifier"`
	Standings          map[string]float64 `yaml:"standings"`
	Funds              decimal.Decimal    `yaml:"funds"`
	// HireCap is how many applicants are hired after each market cycle.
	HireCap           int             `yaml:"hire_cap"`
	ShareValue        decimal.Decimal `yaml:"share_value"`
	OfferingIncentive bool            `yaml:"offering_incentive"`
}

// MissionFixture is a contract plus the status it ends with.
type MissionFixture struct {
	roster.Mission `yaml:",inline"`
	// Outcome is applied when the contract ends; empty means success.
	Outcome roster.MissionStatus `yaml:"outcome"`
}

// LoadFixture decodes a campaign fixture.
func LoadFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return Fixture{}, apperrors.Wrap(apperrors.CodeFixtureLoad, "decode campaign fixture", err)
	}
	if f.Campaign.Date.IsZero() {
		return Fixture{}, apperrors.New(apperrors.CodeFixtureLoad, "campaign date is required")
	}
	f.Campaign.ID = strings.TrimSpace(f.Campaign.ID)
	if f.Campaign.ID == "" {
		f.Campaign.ID = DefaultCampaignID
	}
	for i, p := range f.People {
		if p == nil || strings.TrimSpace(p.ID) == "" {
			return Fixture{}, apperrors.WithMetadata(apperrors.CodeFixtureLoad, "person has no id", map[string]string{
				"index": fmt.Sprint(i),
			})
		}
		if p.Status == "" {
			p.Status = roster.StatusActive
		}
	}
	return f, nil
}

// LoadFixtureFile reads a campaign fixture from path.
func LoadFixtureFile(path string) (Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fixture{}, apperrors.Wrap(apperrors.CodeFixtureLoad, fmt.Sprintf("open campaign fixture %s", path), err)
	}
	defer file.Close()
	return LoadFixture(file)
}

// Roster builds the in-memory campaign the fixture describes.
func (f Fixture) Roster() *roster.Memory {
	c := roster.NewMemory(f.Campaign.Date, f.Campaign.Faction, roster.Location{
		SystemID:  f.Campaign.System,
		InTransit: f.Campaign.InTransit,
	})
	c.Rep = f.Campaign.Reputation
	c.RatingMod = f.Campaign.UnitRatingModifier
	for code, regard := range f.Campaign.Standings {
		c.Standings[code] = regard
	}
	for _, p := range f.People {
		c.AddPerson(p.Clone())
	}
	for _, u := range f.Units {
		if u == nil {
			continue
		}
		unit := *u
		unit.MemberIDs = append([]string(nil), u.MemberIDs...)
		c.PutUnit(&unit)
	}
	for _, m := range f.Missions {
		mission := m.Mission
		if mission.Status == "" {
			mission.Status = roster.MissionActive
		}
		c.PutMission(&mission)
	}
	return c
}

// Outcomes maps mission ids to the status they end with.
func (f Fixture) Outcomes() map[string]roster.MissionStatus {
	out := make(map[string]roster.MissionStatus, len(f.Missions))
	for _, m := range f.Missions {
		if m.Outcome != "" {
			out[m.ID] = m.Outcome
		}
	}
	return out
}
