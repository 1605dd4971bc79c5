package retirement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Payout is the pending departure of one person.
type Payout struct {
	// WeightClass and TechTier record the unit a cockpit-role person
	// brought along so it can be rebuilt; zero when none or when shares are
	// in use.
	WeightClass int             `json:"weight_class,omitempty"`
	TechTier    int             `json:"tech_tier,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Killed      bool            `json:"killed,omitempty"`
	Sacked      bool            `json:"sacked,omitempty"`
}

// IsContractBreaker reports whether p would leave before serving the
// configured contract term.
func (o Options) IsContractBreaker(p *roster.Person, today time.Time) bool {
	return o.UseContracts && p.MonthsInService(today) < o.ContractMonths
}

// Severance is salary times the role rate, plus the per-year service bonus
// when enabled.
func (o Options) Severance(p *roster.Person, today time.Time) decimal.Decimal {
	rate := o.EnlistedRate
	if p.Officer {
		rate = o.OfficerRate
	}
	if o.UseServiceBonus {
		years := decimal.NewFromInt(int64(p.YearsInService(today)))
		rate = rate.Add(years.Mul(o.ServiceBonusRate))
	}
	return p.Salary.Mul(rate)
}

// ComputePayout prices the departure of p. Branches apply in order: killed,
// sacked, contract breaker, retirement age, resignation.
func (o Options) ComputePayout(p *roster.Person, killed, sacked bool, today time.Time) Payout {
	payout := Payout{Killed: killed, Sacked: sacked}
	severance := o.Severance(p, today)
	switch {
	case killed:
		payout.Amount = severance
	case sacked:
		payout.Amount = decimal.Zero
	case o.IsContractBreaker(p, today):
		payout.Amount = decimal.Zero
	case p.Age(today) >= RetirementAge:
		payout.Amount = severance.Mul(o.RetirementMultiplier)
	default:
		payout.Amount = severance
	}
	if !o.UseShares && p.Profession.IsCockpit() && p.OriginalUnitWeight > 0 {
		payout.WeightClass = p.OriginalUnitWeight
		payout.TechTier = p.OriginalUnitTech
	}
	return payout
}
