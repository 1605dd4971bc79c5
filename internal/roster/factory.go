package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/louisbranch/personnel.dynamics/internal/core/dice"
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/platform/id"
	"github.com/louisbranch/personnel.dynamics/internal/random"
)

// PersonFactory synthesizes new people. A failure means the caller discards
// the candidate.
type PersonFactory interface {
	NewPerson(profession Profession, originFaction string, gender GenderDirective) (*Person, error)
}

// ExperienceFromRoll maps a 2d6 total to a recruit's experience tier.
func ExperienceFromRoll(total int) Experience {
	switch {
	case total <= 5:
		return Green
	case total <= 9:
		return Regular
	case total <= 11:
		return Veteran
	default:
		return Elite
	}
}

var experienceSalary = map[Experience]string{
	UltraGreen: "0.5",
	Green:      "0.6",
	Regular:    "1",
	Veteran:    "1.6",
	Elite:      "3.2",
	Heroic:     "6.4",
	Legendary:  "12.8",
}

// SalaryFor returns the monthly salary of profession at experience.
func SalaryFor(profession Profession, experience Experience) decimal.Decimal {
	mult, ok := experienceSalary[experience]
	if !ok {
		mult = "1"
	}
	return profession.BaseSalary().Mul(decimal.RequireFromString(mult))
}

var (
	givenNames = map[Gender][]string{
		GenderMale:   {"Aaron", "Dmitri", "Hiro", "Kai", "Marcus", "Niall", "Ramon", "Tomas"},
		GenderFemale: {"Anya", "Dana", "Ines", "Kira", "Maeve", "Natasha", "Sora", "Yuki"},
	}
	surnames = []string{"Allard", "Brandt", "Cordero", "Halas", "Kerensky", "Morgan", "Petrov", "Steiner", "Tanaka", "Voss"}
)

// Factory is the default PersonFactory: it rolls experience, age, and name
// from a random source and mints ids through a seeded generator.
type Factory struct {
	src      random.Source
	ids      *id.Generator
	factions faction.Registry
	today    func() time.Time
}

// NewFactory builds a Factory. today supplies the campaign date used for
// birthdays and recruitment dates.
func NewFactory(src random.Source, factions faction.Registry, today func() time.Time) *Factory {
	if today == nil {
		today = time.Now
	}
	return &Factory{
		src:      src,
		ids:      id.NewGenerator(src),
		factions: factions,
		today:    today,
	}
}

// NewPerson implements PersonFactory.
func (f *Factory) NewPerson(profession Profession, originFaction string, gender GenderDirective) (*Person, error) {
	profession = profession.Normalize()
	if profession == "" {
		return nil, apperrors.New(apperrors.CodePersonSynthesis, "profession is required")
	}
	originFaction = strings.TrimSpace(originFaction)
	if f.factions != nil {
		if _, ok := f.factions.Faction(originFaction); !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeFactionUnknown, "unknown origin faction", map[string]string{
				"faction": originFaction,
			})
		}
	}
	personID, err := f.ids.Next()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersonSynthesis, "mint person id", err)
	}

	g := f.gender(gender)
	names := givenNames[g]
	name := fmt.Sprintf("%s %s", names[f.src.IntN(len(names))], surnames[f.src.IntN(len(surnames))])
	today := Date(f.today())

	p := &Person{
		ID:            personID,
		Name:          name,
		Gender:        g,
		Profession:    profession,
		OriginFaction: originFaction,
		Status:        StatusActive,
		Bondage:       Free,
		Recruited:     today,
		Skills:        map[string]int{},
	}
	if profession.IsCivilian() {
		p.Experience = UltraGreen
		p.Birthday = today.AddDate(-dice.TwoD6(f.src)*3, 0, 0)
		return p, nil
	}

	p.Experience = ExperienceFromRoll(dice.TwoD6(f.src))
	p.Birthday = today.AddDate(-(18 + dice.TwoD6(f.src)), 0, -f.src.IntN(365))
	p.Salary = SalaryFor(profession, p.Experience)
	level := int(p.Experience)
	if profession.IsAdmin() {
		p.Skills[SkillAdministration] = level
	}
	if f.src.IntN(3) == 0 {
		p.Skills[SkillLeadership] = level
	}
	if profession == AdminTransport || f.src.IntN(6) == 0 {
		p.Skills[SkillConnections] = 1 + f.src.IntN(level+1)
	}
	return p, nil
}

func (f *Factory) gender(directive GenderDirective) Gender {
	switch directive {
	case GenderForceMale:
		return GenderMale
	case GenderForceFemale:
		return GenderFemale
	default:
		if f.src.IntN(2) == 0 {
			return GenderMale
		}
		return GenderFemale
	}
}

var _ PersonFactory = (*Factory)(nil)
