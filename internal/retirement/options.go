package retirement

import "github.com/shopspring/decimal"

// RetirementAge is the age at which departures pay the retirement multiplier
// and founders may become eligible to leave.
const RetirementAge = 50

// Options configures target numbers and payouts.
type Options struct {
	// UseSkillBase derives the base target from ReferenceTarget, the HR
	// staff's administration pool and Difficulty instead of FixedTarget.
	UseSkillBase bool `yaml:"use_skill_base"`
	// FixedTarget is the base target when UseSkillBase is off; nil means 5.
	FixedTarget     *int `yaml:"fixed_target"`
	ReferenceTarget int  `yaml:"reference_target"`
	Difficulty      int  `yaml:"difficulty"`
	// HRPoolDivisor spreads the HR pool over the roster: every divisor
	// administration levels lower the base by one.
	HRPoolDivisor int  `yaml:"hr_pool_divisor"`
	UseLoyalty    bool `yaml:"use_loyalty"`
	LoyaltyInBase bool `yaml:"loyalty_in_base"`

	RandomFounderTurnover bool `yaml:"random_founder_turnover"`
	FounderRetirement     bool `yaml:"founder_retirement"`
	SubcontractSoldiers   bool `yaml:"subcontract_soldiers"`

	UseContracts   bool `yaml:"use_contracts"`
	ContractMonths int  `yaml:"contract_months"`
	UseExperience  bool `yaml:"use_experience"`
	UseFatigue     bool `yaml:"use_fatigue"`
	FatigueDivisor int  `yaml:"fatigue_divisor"`
	// FatigueMin and FatigueMax bound the fatigue modifier; nil means 0
	// and 3.
	FatigueMin     *int `yaml:"fatigue_min"`
	FatigueMax     *int `yaml:"fatigue_max"`
	UseAdminStrain bool `yaml:"use_admin_strain"`
	// AdminCapacity is how many people one administration level supports.
	AdminCapacity       int  `yaml:"admin_capacity"`
	UseManagement       bool `yaml:"use_management"`
	FullManagement      bool `yaml:"full_management"`
	UseShares           bool `yaml:"use_shares"`
	ShareOffset         int  `yaml:"share_offset"`
	UseUnitRating       bool `yaml:"use_unit_rating"`
	UseHostile          bool `yaml:"use_hostile"`
	UseMissionStatus    bool `yaml:"use_mission_status"`
	UseFactionModifiers bool `yaml:"use_faction_modifiers"`
	UseAge              bool `yaml:"use_age"`
	UseFamily           bool `yaml:"use_family"`
	UseInjuries         bool `yaml:"use_injuries"`
	UseOfficer          bool `yaml:"use_officer"`

	// Severance is salary times the officer or enlisted rate, plus the
	// service bonus rate per year when enabled.
	OfficerRate          decimal.Decimal `yaml:"officer_rate"`
	EnlistedRate         decimal.Decimal `yaml:"enlisted_rate"`
	UseServiceBonus      bool            `yaml:"use_service_bonus"`
	ServiceBonusRate     decimal.Decimal `yaml:"service_bonus_rate"`
	RetirementMultiplier decimal.Decimal `yaml:"retirement_multiplier"`

	// AnnualRolls schedules a mission-less roll every year.
	AnnualRolls bool `yaml:"annual_rolls"`
}

// DefaultOptions enables every modifier with the stock values.
func DefaultOptions() Options {
	return Options{
		UseLoyalty:          true,
		UseContracts:        true,
		UseExperience:       true,
		UseFatigue:          true,
		UseAdminStrain:      true,
		UseManagement:       true,
		UseUnitRating:       true,
		UseHostile:          true,
		UseMissionStatus:    true,
		UseFactionModifiers: true,
		UseAge:              true,
		UseFamily:           true,
		UseInjuries:         true,
		UseOfficer:          true,
		UseServiceBonus:     true,
		AnnualRolls:         true,
	}.WithDefaults()
}

func (o Options) fixedTarget() int {
	if o.FixedTarget == nil {
		return 5
	}
	return *o.FixedTarget
}

func (o Options) fatigueBand() (lo, hi int) {
	lo, hi = 0, 3
	if o.FatigueMin != nil {
		lo = *o.FatigueMin
	}
	if o.FatigueMax != nil {
		hi = *o.FatigueMax
	}
	return lo, hi
}

// WithDefaults fills zero numeric values. Pointer fields keep nil, which
// reads as the stock value, so an explicit zero stays configurable.
func (o Options) WithDefaults() Options {
	if o.ReferenceTarget == 0 {
		o.ReferenceTarget = 10
	}
	if o.HRPoolDivisor <= 0 {
		o.HRPoolDivisor = 4
	}
	if o.ContractMonths <= 0 {
		o.ContractMonths = 36
	}
	if o.FatigueDivisor <= 0 {
		o.FatigueDivisor = 4
	}
	if o.AdminCapacity <= 0 {
		o.AdminCapacity = 10
	}
	if o.OfficerRate.IsZero() {
		o.OfficerRate = decimal.NewFromInt(12)
	}
	if o.EnlistedRate.IsZero() {
		o.EnlistedRate = decimal.NewFromInt(6)
	}
	if o.ServiceBonusRate.IsZero() {
		o.ServiceBonusRate = decimal.NewFromInt(1)
	}
	if o.RetirementMultiplier.IsZero() {
		o.RetirementMultiplier = decimal.NewFromInt(2)
	}
	return o
}
