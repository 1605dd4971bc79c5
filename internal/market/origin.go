package market

import (
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// AlliedTicketMultiplier scales the tickets of the campaign's own faction and
// its allies.
const AlliedTicketMultiplier = 3

// StandingTickets converts a faction's regard into origin tickets. Zero
// tickets exclude the faction.
func StandingTickets(regard float64) int {
	switch {
	case regard < -60:
		return 0
	case regard < -20:
		return 1
	case regard < 20:
		return 2
	case regard < 60:
		return 3
	default:
		return 4
	}
}

// StandingRollMultiplier converts a faction's regard into a roll count
// multiplier.
func StandingRollMultiplier(regard float64) float64 {
	switch {
	case regard < -60:
		return 0.5
	case regard < -20:
		return 0.75
	case regard < 20:
		return 1.0
	case regard < 60:
		return 1.25
	default:
		return 1.5
	}
}

// originRules are the rule-set-specific knobs of the origin weigher.
type originRules struct {
	useStandings bool
	// pariah restricts eligibility to outlaw factions.
	pariah bool
}

// weighOrigins builds the multiset of origin factions for a cycle.
func weighOrigins(cy *cycle, rules originRules) []string {
	own := cy.faction.Code
	if cy.faction.Clan {
		if rules.pariah {
			return nil
		}
		return []string{own}
	}

	var origins []string
	for _, code := range cy.present {
		if cy.factions.AtWar(own, code, cy.year) {
			continue
		}
		if rules.pariah && !isOutlaw(cy.factions, code) {
			continue
		}
		tickets := 1
		if rules.useStandings {
			tickets = StandingTickets(cy.campaign.Regard(code))
		}
		if tickets == 0 {
			continue
		}
		if code == own || cy.factions.Allied(own, code, cy.year) {
			tickets *= AlliedTicketMultiplier
		}
		for i := 0; i < tickets; i++ {
			origins = append(origins, code)
		}
	}
	if len(origins) > 0 {
		origins = append(origins, faction.Mercenary, faction.Pirate)
	}
	return origins
}

func isOutlaw(reg faction.Registry, code string) bool {
	if code == faction.Mercenary || code == faction.Pirate {
		return true
	}
	f, ok := reg.Faction(code)
	return ok && f.IsOutlaw()
}

// connectionsBonus returns the best connections skill on the active roster.
func connectionsBonus(c roster.Campaign) int {
	best := 0
	for _, p := range roster.ActivePersonnel(c) {
		if level := p.Skill(roster.SkillConnections); level > best {
			best = level
		}
	}
	return best
}
