package market

import (
	"strings"

	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Style selects the rule set that drives the market.
type Style string

const (
	StyleDisabled      Style = "disabled"
	StyleMekHQ         Style = "mekhq"
	StyleCamOpsRevised Style = "camops_revised"
	StyleCamOpsStrict  Style = "camops_strict"
)

// Rule set names used to key rule tables.
const (
	RuleSetMekHQ  = "mekhq"
	RuleSetCamOps = "camops"
)

// ParseStyle reads a style name. An empty name is disabled.
func ParseStyle(value string) (Style, error) {
	switch s := Style(strings.ToLower(strings.TrimSpace(value))); s {
	case "", StyleDisabled:
		return StyleDisabled, nil
	case StyleMekHQ, StyleCamOpsRevised, StyleCamOpsStrict:
		return s, nil
	default:
		return StyleDisabled, apperrors.WithMetadata(apperrors.CodeMarketStyleUnknown, "unknown market style", map[string]string{
			"style": value,
		})
	}
}

// RuleSet returns the rule table set the style draws from.
func (s Style) RuleSet() string {
	switch s {
	case StyleMekHQ:
		return RuleSetMekHQ
	case StyleCamOpsRevised, StyleCamOpsStrict:
		return RuleSetCamOps
	default:
		return ""
	}
}

// DefaultPopulationDivisor is the population at which a system offers its
// full roll count.
const DefaultPopulationDivisor = 1_000_000_000

// RareWeight is the selection weight at or below which an applicant's
// profession is flagged rare.
const RareWeight = 5

// Options configures market behavior.
type Options struct {
	Style Style `yaml:"style"`
	// UseStandings weighs origin factions and roll counts by faction regard.
	UseStandings bool `yaml:"use_standings"`
	// UseConnections adds the best connections skill to the roll count.
	UseConnections bool `yaml:"use_connections"`
	// UsePariahGate restricts a low-reputation MekHQ campaign to outlaw
	// recruiting pools.
	UsePariahGate     bool  `yaml:"use_pariah_gate"`
	PariahReputation  int   `yaml:"pariah_reputation"`
	PopulationDivisor int64 `yaml:"population_divisor"`
	// MinimumExperience floors the MekHQ experience gate; nil means
	// regular.
	MinimumExperience *roster.Experience `yaml:"minimum_experience"`
}

// WithDefaults fills zero values.
func (o Options) WithDefaults() Options {
	if o.Style == "" {
		o.Style = StyleDisabled
	}
	if o.PopulationDivisor <= 0 {
		o.PopulationDivisor = DefaultPopulationDivisor
	}
	return o
}

func (o Options) minimumExperience() roster.Experience {
	if o.MinimumExperience == nil {
		return roster.Regular
	}
	return *o.MinimumExperience
}
