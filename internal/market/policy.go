package market

import (
	"time"

	"github.com/louisbranch/personnel.dynamics/internal/core/dice"
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	"github.com/louisbranch/personnel.dynamics/internal/random"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// cycle is the per-generation view of the campaign shared by the policies.
type cycle struct {
	campaign  roster.Campaign
	factions  faction.Registry
	opts      Options
	state     *State
	today     time.Time
	year      int
	location  roster.Location
	faction   faction.Faction
	system    faction.System
	hasSystem bool
	present   []string
}

func newCycle(c roster.Campaign, reg faction.Registry, opts Options, state *State) *cycle {
	cy := &cycle{
		campaign: c,
		factions: reg,
		opts:     opts,
		state:    state,
		today:    state.Today,
		year:     state.Year,
		location: state.Location,
	}
	code := c.FactionCode()
	if f, ok := reg.Faction(code); ok {
		cy.faction = f
	} else {
		cy.faction = faction.Faction{Code: code}
	}
	cy.system, cy.hasSystem = reg.System(cy.location.SystemID)
	cy.present = reg.FactionsAt(cy.location.SystemID, cy.year)
	return cy
}

// Policy is one rule set's take on the shared generation skeleton. The set
// of policies is closed; use NewPolicy.
type Policy interface {
	Style() Style
	// OriginFactions returns the weighted origin faction multiset.
	OriginFactions(cy *cycle) []string
	// Blocked returns a non-empty reason when the cycle must not run.
	Blocked(cy *cycle) string
	RollCount(cy *cycle) int
	GenerateApplicants(g *generator, rolls int)
}

// NewPolicy returns the policy for style.
func NewPolicy(style Style) (Policy, error) {
	style, err := ParseStyle(string(style))
	if err != nil {
		return disabledPolicy{}, err
	}
	switch style {
	case StyleMekHQ:
		return mekHQPolicy{}, nil
	case StyleCamOpsRevised:
		return camOpsPolicy{style: StyleCamOpsRevised}, nil
	case StyleCamOpsStrict:
		return camOpsPolicy{style: StyleCamOpsStrict, strict: true}, nil
	default:
		return disabledPolicy{}, nil
	}
}

type disabledPolicy struct{}

func (disabledPolicy) Style() Style { return StyleDisabled }
func (disabledPolicy) OriginFactions(*cycle) []string { return nil }
func (disabledPolicy) Blocked(*cycle) string { return ReasonDisabled }
func (disabledPolicy) RollCount(*cycle) int { return 0 }
func (disabledPolicy) GenerateApplicants(*generator, int) {}

// camOpsPolicy follows the Campaign Operations personnel market.
type camOpsPolicy struct {
	style  Style
	strict bool
}

func (p camOpsPolicy) Style() Style { return p.style }

func (p camOpsPolicy) OriginFactions(cy *cycle) []string {
	return weighOrigins(cy, originRules{useStandings: cy.opts.UseStandings})
}

func (p camOpsPolicy) Blocked(cy *cycle) string {
	if cy.location.InTransit {
		return ReasonInTransit
	}
	if p.strict {
		for _, m := range roster.ActiveMissions(cy.campaign) {
			if !m.IsGarrison() {
				return ReasonActiveMission
			}
		}
	}
	return ""
}

func (p camOpsPolicy) RollCount(cy *cycle) int { return camOpsRollCount(cy) }

func (p camOpsPolicy) GenerateApplicants(g *generator, rolls int) {
	for i := 0; i < rolls; i++ {
		person, entry, ok := g.draw()
		if !ok {
			continue
		}
		g.accept(person, entry)
	}
}

// mekHQPolicy follows the MekHQ personnel market.
type mekHQPolicy struct{}

func (mekHQPolicy) Style() Style { return StyleMekHQ }

func (mekHQPolicy) pariah(cy *cycle) bool {
	return cy.opts.UsePariahGate && cy.campaign.Reputation() < cy.opts.PariahReputation
}

func (p mekHQPolicy) OriginFactions(cy *cycle) []string {
	return weighOrigins(cy, originRules{useStandings: cy.opts.UseStandings, pariah: p.pariah(cy)})
}

func (mekHQPolicy) Blocked(cy *cycle) string {
	if cy.location.InTransit {
		return ReasonInTransit
	}
	return ""
}

func (mekHQPolicy) RollCount(cy *cycle) int { return mekHQRollCount(cy) }

func (p mekHQPolicy) GenerateApplicants(g *generator, rolls int) {
	threshold := ExperienceThreshold(g.cy.campaign, g.cy.state.OfferingIncentive, g.cy.opts.minimumExperience())
	for i := 0; i < rolls; i++ {
		person, entry, ok := g.draw()
		if !ok {
			continue
		}
		// Rejection happens before accept, so a rejected candidate never
		// flags its profession rare.
		if !AcceptsExperience(g.src, person.Experience, threshold) {
			continue
		}
		g.accept(person, entry)
	}
	for i, n := 0, dice.D6(g.src); i < n; i++ {
		g.dependent()
	}
}

// ExperienceThreshold is the experience level above which MekHQ applicants
// start turning the campaign down: the roster's average experience plus one
// when an incentive is offered, plus two otherwise, floored at minimum.
func ExperienceThreshold(c roster.Campaign, incentive bool, minimum roster.Experience) int {
	total, n := 0, 0
	for _, p := range roster.ActivePersonnel(c) {
		if p.IsCivilian() {
			continue
		}
		total += int(p.Experience)
		n++
	}
	average := int(roster.Regular)
	if n > 0 {
		average = total / n
	}
	offset := 2
	if incentive {
		offset = 1
	}
	return max(average+offset, int(minimum))
}

// AcceptsExperience rolls 1-in-10 per level above threshold; every roll must
// succeed for the applicant to accept.
func AcceptsExperience(src random.Source, experience roster.Experience, threshold int) bool {
	for excess := int(experience) - threshold; excess > 0; excess-- {
		if !dice.OneIn(src, 10) {
			return false
		}
	}
	return true
}
