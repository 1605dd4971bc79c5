package market

import (
	"github.com/louisbranch/personnel.dynamics/internal/core/target"
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// camOpsRollCount is the days in the month plus the connections bonus.
func camOpsRollCount(cy *cycle) int {
	count := roster.DaysInMonth(cy.today)
	if cy.opts.UseConnections {
		count += connectionsBonus(cy.campaign)
	}
	return count
}

// SystemMultiplier grades a system's recruiting infrastructure.
func SystemMultiplier(sys faction.System) int {
	m := max(1, sys.HiringHall.Tier())
	if sys.Capital {
		m++
	}
	if sys.MajorCapital {
		m++
	}
	return m
}

// PopulationScale scales count by population/divisor, capped at 1, and
// clamps the result to [1, count]. A zero count stays zero.
func PopulationScale(count int, population, divisor int64) int {
	if count <= 0 {
		return 0
	}
	if divisor <= 0 || population >= divisor {
		return count
	}
	scaled := int(float64(count) * float64(population) / float64(divisor))
	return target.Clamp(scaled, 1, count)
}

func mekHQRollCount(cy *cycle) int {
	count := roster.DaysInMonth(cy.today)
	if cy.hasSystem {
		count *= SystemMultiplier(cy.system)
		count = PopulationScale(count, cy.system.Population, cy.opts.PopulationDivisor)
	}
	if cy.opts.UseStandings && len(cy.present) > 0 {
		best := 0.0
		for _, code := range cy.present {
			if m := StandingRollMultiplier(cy.campaign.Regard(code)); m > best {
				best = m
			}
		}
		count = int(float64(count) * best)
	}
	if cy.opts.UseConnections {
		count += connectionsBonus(cy.campaign)
	}
	return max(0, count)
}
