// Package roster holds the personnel data model shared by the recruitment
// market and the turnover tracker: people, units, missions, and the calendar
// helpers both engines need.
package roster

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is a person's roster status.
type Status string

const (
	StatusActive   Status = "active"
	StatusRetired  Status = "retired"
	StatusResigned Status = "resigned"
	StatusDeserted Status = "deserted"
	StatusKilled   Status = "killed"
	StatusSacked   Status = "sacked"
	StatusMissing  Status = "missing"
)

// Departed reports whether the status removes the person from service.
func (s Status) Departed() bool {
	return s != StatusActive && s != StatusMissing && s != ""
}

// Bondage is a person's freedom status.
type Bondage string

const (
	Free     Bondage = "free"
	Prisoner Bondage = "prisoner"
	Bondsman Bondage = "bondsman"
)

// Gender is a person's gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenderDirective tells a person factory how to choose a gender.
type GenderDirective string

const (
	GenderRandom      GenderDirective = "random"
	GenderForceMale   GenderDirective = "male"
	GenderForceFemale GenderDirective = "female"
)

// Experience is the experience tier of a person.
type Experience int

const (
	UltraGreen Experience = iota
	Green
	Regular
	Veteran
	Elite
	Heroic
	Legendary
)

var experienceNames = []string{"Ultra-Green", "Green", "Regular", "Veteran", "Elite", "Heroic", "Legendary"}

func (e Experience) String() string {
	if e < UltraGreen || int(e) >= len(experienceNames) {
		return "Unknown"
	}
	return experienceNames[e]
}

// Well-known skill and ability identifiers.
const (
	SkillLeadership     = "leadership"
	SkillAdministration = "administration"
	SkillNegotiation    = "negotiation"
	SkillConnections    = "connections"

	AbilityCompanyMan = "company_man"
)

// Person is one roster member or applicant.
type Person struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Gender        Gender          `json:"gender" yaml:"gender"`
	Profession    Profession      `json:"profession" yaml:"profession"`
	OriginFaction string          `json:"origin_faction" yaml:"origin_faction"`
	Status        Status          `json:"status" yaml:"status"`
	Bondage       Bondage         `json:"bondage,omitempty" yaml:"bondage"`
	Birthday      time.Time       `json:"birthday" yaml:"birthday"`
	Recruited     time.Time       `json:"recruited" yaml:"recruited"`
	Experience    Experience      `json:"experience" yaml:"experience"`
	Skills        map[string]int  `json:"skills,omitempty" yaml:"skills"`
	Abilities     []string        `json:"abilities,omitempty" yaml:"abilities"`
	Salary        decimal.Decimal `json:"salary" yaml:"salary"`

	Founder           bool     `json:"founder,omitempty" yaml:"founder"`
	Commander         bool     `json:"commander,omitempty" yaml:"commander"`
	Officer           bool     `json:"officer,omitempty" yaml:"officer"`
	Deployed          bool     `json:"deployed,omitempty" yaml:"deployed"`
	Fatigue           int      `json:"fatigue,omitempty" yaml:"fatigue"`
	Loyalty           int      `json:"loyalty,omitempty" yaml:"loyalty"`
	Shares            int      `json:"shares,omitempty" yaml:"shares"`
	PermanentInjuries int      `json:"permanent_injuries,omitempty" yaml:"permanent_injuries"`
	SpouseID          string   `json:"spouse_id,omitempty" yaml:"spouse_id"`
	ChildIDs          []string `json:"child_ids,omitempty" yaml:"child_ids"`
	UnitID            string   `json:"unit_id,omitempty" yaml:"unit_id"`

	// OriginalUnitWeight and OriginalUnitTech describe the unit a pilot
	// brought with them; zero weight means none.
	OriginalUnitWeight int `json:"original_unit_weight,omitempty" yaml:"original_unit_weight"`
	OriginalUnitTech   int `json:"original_unit_tech,omitempty" yaml:"original_unit_tech"`
}

// IsActive reports whether the person is in active service.
func (p *Person) IsActive() bool {
	return p != nil && p.Status == StatusActive
}

// IsFree reports whether the person is neither a prisoner nor a bondsman.
func (p *Person) IsFree() bool {
	return p != nil && (p.Bondage == "" || p.Bondage == Free)
}

// IsCivilian reports whether the person is a non-combatant dependent.
func (p *Person) IsCivilian() bool {
	return p != nil && p.Profession.IsCivilian()
}

// Skill returns the level of a skill, or -1 when the person lacks it.
func (p *Person) Skill(name string) int {
	if p == nil || p.Skills == nil {
		return -1
	}
	level, ok := p.Skills[strings.ToLower(name)]
	if !ok {
		return -1
	}
	return level
}

// HasAbility reports whether the person has the named special ability.
func (p *Person) HasAbility(name string) bool {
	if p == nil {
		return false
	}
	for _, a := range p.Abilities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Age returns the person's age in whole years on date.
func (p *Person) Age(date time.Time) int {
	if p == nil || p.Birthday.IsZero() {
		return 0
	}
	return YearsBetween(p.Birthday, date)
}

// MonthsInService returns whole months between recruitment and date.
func (p *Person) MonthsInService(date time.Time) int {
	if p == nil || p.Recruited.IsZero() {
		return 0
	}
	return MonthsBetween(p.Recruited, date)
}

// YearsInService returns whole years between recruitment and date.
func (p *Person) YearsInService(date time.Time) int {
	if p == nil || p.Recruited.IsZero() {
		return 0
	}
	return YearsBetween(p.Recruited, date)
}

// Clone returns a deep copy of the person.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	if p.Skills != nil {
		c.Skills = make(map[string]int, len(p.Skills))
		for k, v := range p.Skills {
			c.Skills[k] = v
		}
	}
	c.Abilities = append([]string(nil), p.Abilities...)
	c.ChildIDs = append([]string(nil), p.ChildIDs...)
	return &c
}
