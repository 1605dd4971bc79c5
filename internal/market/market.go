// Package market generates the monthly pool of applicants a campaign can
// hire. One shared generation cycle runs every rule set; the rule set only
// chooses origin factions, gating, roll counts and per-applicant filters.
//
// A cycle never fails. Configuration problems such as a broken fallback
// chain cost the affected roll, and a gated cycle produces no applicants
// with a reason recorded in the State.
package market

import (
	"log"
	"slices"

	"github.com/louisbranch/personnel.dynamics/internal/faction"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/random"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Config wires a Market.
type Config struct {
	Options  Options
	Tables   TableSet
	Factions faction.Registry
	Factory  roster.PersonFactory
	Source   random.Source
	// Logf receives skipped-roll and gating lines; defaults to log.Printf.
	Logf func(format string, args ...any)
	// Notify is called after a cycle that produced applicants.
	Notify func(Cycle)
}

// Market is the recruitment market of one campaign. It is not safe for
// concurrent use.
type Market struct {
	opts     Options
	policy   Policy
	tables   TableSet
	factions faction.Registry
	factory  roster.PersonFactory
	src      random.Source
	logf     func(format string, args ...any)
	notify   func(Cycle)
	state    State
}

// New builds a Market.
func New(cfg Config) (*Market, error) {
	if cfg.Factions == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "faction registry is required")
	}
	if cfg.Factory == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "person factory is required")
	}
	if cfg.Source == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "random source is required")
	}
	opts := cfg.Options.WithDefaults()
	policy, err := NewPolicy(opts.Style)
	if err != nil {
		return nil, err
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Market{
		opts:     opts,
		policy:   policy,
		tables:   cfg.Tables,
		factions: cfg.Factions,
		factory:  cfg.Factory,
		src:      cfg.Source,
		logf:     logf,
		notify:   cfg.Notify,
		state:    State{Style: policy.Style()},
	}, nil
}

// Style returns the active market style.
func (m *Market) Style() Style { return m.policy.Style() }

// SetStyle switches rule sets. The applicant pool is kept.
func (m *Market) SetStyle(style Style) error {
	policy, err := NewPolicy(style)
	if err != nil {
		return err
	}
	m.policy = policy
	m.opts.Style = policy.Style()
	m.state.Style = policy.Style()
	return nil
}

// SetOfferingIncentive toggles the hiring incentive that lowers the MekHQ
// experience gate.
func (m *Market) SetOfferingIncentive(offering bool) {
	m.state.OfferingIncentive = offering
}

// SetLastFilter records the last selected applicant filter.
func (m *Market) SetLastFilter(index int) {
	m.state.LastFilter = index
}

// State returns a copy of the market state.
func (m *Market) State() State { return m.state.Clone() }

// Restore replaces the market state with a saved one. An unknown style
// disables the market.
func (m *Market) Restore(s State) {
	s = s.Clone()
	policy, err := NewPolicy(s.Style)
	if err != nil {
		m.logf("%s", apperrors.LogLinef(err, "restore market"))
	}
	m.policy = policy
	m.opts.Style = policy.Style()
	s.Style = policy.Style()
	m.state = s
}

// Applicants returns the current applicant pool.
func (m *Market) Applicants() []*roster.Person {
	return slices.Clone(m.state.Applicants)
}

// RareProfessions returns the professions flagged rare in the last cycle.
func (m *Market) RareProfessions() []roster.Profession {
	return slices.Clone(m.state.RareProfessions)
}

// Hire removes an applicant from the pool and returns it. The caller adds
// the person to the roster.
func (m *Market) Hire(personID string) (*roster.Person, bool) {
	idx := slices.IndexFunc(m.state.Applicants, func(p *roster.Person) bool { return p.ID == personID })
	if idx < 0 {
		return nil, false
	}
	p := m.state.Applicants[idx]
	m.state.Applicants = slices.Delete(m.state.Applicants, idx, idx+1)
	return p, true
}

// Generate runs one market cycle against c and returns the new applicants.
// The previous applicant pool is replaced wholesale.
func (m *Market) Generate(c roster.Campaign) []*roster.Person {
	m.state.reset(c)
	m.state.Style = m.policy.Style()
	if m.policy.Style() == StyleDisabled {
		m.state.Blocked = ReasonDisabled
		return nil
	}

	cy := newCycle(c, m.factions, m.opts, &m.state)
	origins := m.policy.OriginFactions(cy)
	m.state.OriginFactions = origins
	if len(origins) == 0 {
		m.state.Blocked = ReasonNoOriginFactions
		return nil
	}
	if reason := m.policy.Blocked(cy); reason != "" {
		m.state.Blocked = reason
		return nil
	}

	rolls := m.policy.RollCount(cy)
	m.state.Rolls = rolls

	full := m.tables[m.policy.Style().RuleSet()].For(cy.faction.Clan)
	sorted := Sorted(Sanitize(full))
	if len(sorted) == 0 {
		m.logf("%s", apperrors.LogLinef(ErrNoEligibleEntries, "market %s", m.policy.Style()))
		m.state.Blocked = ReasonNoProfessions
		return nil
	}

	g := &generator{
		market:  m,
		cy:      cy,
		src:     m.src,
		sorted:  sorted,
		full:    full,
		origins: origins,
		seen:    make(map[string]bool),
	}
	m.policy.GenerateApplicants(g, rolls)

	if len(m.state.Applicants) > 0 && m.notify != nil {
		m.notify(Cycle{
			Date:       m.state.Today,
			Style:      m.state.Style,
			Rolls:      m.state.Rolls,
			Applicants: slices.Clone(m.state.Applicants),
			Rare:       slices.Clone(m.state.RareProfessions),
		})
	}
	return slices.Clone(m.state.Applicants)
}

// generator carries one cycle's draws.
type generator struct {
	market  *Market
	cy      *cycle
	src     random.Source
	sorted  []Entry
	full    Table
	origins []string
	seen    map[string]bool
}

// draw samples a profession, resolves its fallback chain, picks an origin
// faction and synthesizes a candidate. ok is false when the roll is lost.
func (g *generator) draw() (*roster.Person, Entry, bool) {
	entry, err := SelectEntry(g.src, g.sorted)
	if err != nil {
		g.market.logf("%s", apperrors.LogLinef(err, "market selector"))
		return nil, Entry{}, false
	}
	resolved, err := Resolve(entry, g.full, g.cy.year)
	if err != nil {
		g.market.logf("%s", apperrors.LogLinef(err, "market skipped %s in %d", entry.Profession, g.cy.year))
		return nil, Entry{}, false
	}
	origin := g.origins[g.src.IntN(len(g.origins))]
	person, err := g.market.factory.NewPerson(resolved.Profession, origin, roster.GenderRandom)
	if err != nil {
		g.market.logf("%s", apperrors.LogLinef(err, "market skipped %s from %s", resolved.Profession, origin))
		return nil, Entry{}, false
	}
	if person == nil {
		return nil, Entry{}, false
	}
	return person, resolved, true
}

// accept appends a candidate and flags its profession rare when its weight
// is at or below RareWeight.
func (g *generator) accept(person *roster.Person, entry Entry) bool {
	if !g.add(person) {
		return false
	}
	if entry.Weight <= RareWeight {
		g.cy.state.flagRare(entry.Profession)
	}
	return true
}

// dependent synthesizes one non-combat dependent.
func (g *generator) dependent() {
	origin := g.origins[g.src.IntN(len(g.origins))]
	person, err := g.market.factory.NewPerson(roster.Dependent, origin, roster.GenderRandom)
	if err != nil {
		g.market.logf("%s", apperrors.LogLinef(err, "market skipped dependent from %s", origin))
		return
	}
	if person == nil {
		return
	}
	g.add(person)
}

func (g *generator) add(person *roster.Person) bool {
	if person.ID == "" || g.seen[person.ID] {
		return false
	}
	g.seen[person.ID] = true
	g.cy.state.Applicants = append(g.cy.state.Applicants, person)
	return true
}
