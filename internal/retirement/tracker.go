// Package retirement tracks retirement, defection and death departures: it
// builds departure target numbers, rolls them, prices payouts, and keeps the
// pending bookkeeping that survives a save between rolling and paying.
package retirement

import (
	"log"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/louisbranch/personnel.dynamics/internal/core/dice"
	"github.com/louisbranch/personnel.dynamics/internal/core/target"
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/random"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

var (
	// ErrPersonNotFree is returned for prisoners and bondsmen, who leave
	// through other paths.
	ErrPersonNotFree = apperrors.New(apperrors.CodePersonNotFree, "person is not free")
	// ErrNotFound marks an absent person or mission.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "not found")
)

// Config wires a Tracker.
type Config struct {
	Options Options
	// Factions backs the faction modifiers; nil skips them.
	Factions faction.Registry
	Source   random.Source
	Logf     func(format string, args ...any)
}

// State is the durable tracker state.
type State struct {
	RollRequired []string
	Unresolved   map[string][]string
	Payouts      map[string]Payout
	LastRoll     time.Time
}

// Tracker is the turnover engine for one campaign. It is not safe for
// concurrent use.
type Tracker struct {
	opts     Options
	factions faction.Registry
	src      random.Source
	logf     func(format string, args ...any)

	rollRequired map[string]struct{}
	unresolved   map[string]map[string]struct{}
	payouts      map[string]Payout
	lastRoll     time.Time
}

// New builds a Tracker. A nil source is rejected.
func New(cfg Config) (*Tracker, error) {
	if cfg.Source == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "tracker needs a random source")
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Tracker{
		opts:         cfg.Options.WithDefaults(),
		factions:     cfg.Factions,
		src:          cfg.Source,
		logf:         logf,
		rollRequired: map[string]struct{}{},
		unresolved:   map[string]map[string]struct{}{},
		payouts:      map[string]Payout{},
	}, nil
}

// Options returns the options in effect.
func (t *Tracker) Options() Options {
	return t.opts
}

// AddMission records that mission needs a turnover roll.
func (t *Tracker) AddMission(missionID string) {
	if missionID == "" {
		return
	}
	t.rollRequired[missionID] = struct{}{}
}

// RollRequired reports whether mission still needs its roll.
func (t *Tracker) RollRequired(missionID string) bool {
	_, ok := t.rollRequired[missionID]
	return ok
}

// IsOutstanding reports whether mission needs a roll or still has unpaid
// departures.
func (t *Tracker) IsOutstanding(missionID string) bool {
	return t.RollRequired(missionID) || len(t.unresolved[missionID]) > 0
}

// Payout returns the pending payout of a person.
func (t *Tracker) Payout(personID string) (Payout, bool) {
	p, ok := t.payouts[personID]
	return p, ok
}

// Payouts returns the pending payouts keyed by person, a copy.
func (t *Tracker) Payouts() map[string]Payout {
	return maps.Clone(t.payouts)
}

// UnresolvedFor lists, sorted, the people awaiting settlement for mission.
func (t *Tracker) UnresolvedFor(missionID string) []string {
	return slices.Sorted(maps.Keys(t.unresolved[missionID]))
}

// LastRoll is the date of the last roll, zero when none happened.
func (t *Tracker) LastRoll() time.Time {
	return t.lastRoll
}

// SetLastRoll overrides the last roll date.
func (t *Tracker) SetLastRoll(date time.Time) {
	t.lastRoll = date
}

// ShouldRollAnnually reports whether a year has passed since the last roll.
func (t *Tracker) ShouldRollAnnually(today time.Time) bool {
	if !t.opts.AnnualRolls {
		return false
	}
	if t.lastRoll.IsZero() {
		return true
	}
	return !roster.Date(today).Before(t.lastRoll.AddDate(1, 0, 0))
}

// RollRetirement rolls 2d6 for every targeted person without a pending
// payout and marks those rolling below their target. It returns the marked
// ids, sorted.
func (t *Tracker) RollRetirement(mission *roster.Mission, targets map[string]target.Roll, shareValue decimal.Decimal, c roster.Campaign) []string {
	today := roster.Date(c.Today())
	marked := map[string]struct{}{}
	mark := func(p *roster.Person) {
		if _, pending := t.payouts[p.ID]; pending {
			return
		}
		if _, done := marked[p.ID]; done {
			return
		}
		payout := t.opts.ComputePayout(p, false, false, today)
		if t.opts.UseShares && p.Shares > 0 {
			payout.Amount = payout.Amount.Add(shareValue.Mul(decimal.NewFromInt(int64(p.Shares))))
		}
		t.payouts[p.ID] = payout
		marked[p.ID] = struct{}{}
	}

	for _, id := range slices.Sorted(maps.Keys(targets)) {
		if _, pending := t.payouts[id]; pending {
			continue
		}
		p, ok := c.Person(id)
		if !ok {
			t.logf("turnover: skip %s: person not in roster", id)
			continue
		}
		tn := targets[id]
		if !tn.Beats(dice.TwoD6(t.src)) {
			continue
		}
		if unit := t.infantryCommand(p, c); unit != nil {
			for _, memberID := range unit.MemberIDs {
				member, ok := c.Person(memberID)
				if !ok || !member.IsActive() {
					continue
				}
				if member.Founder && !t.opts.RandomFounderTurnover {
					continue
				}
				mark(member)
			}
			continue
		}
		mark(p)
	}

	ids := slices.Sorted(maps.Keys(marked))
	if mission != nil {
		for _, id := range ids {
			t.assign(mission.ID, id)
		}
		delete(t.rollRequired, mission.ID)
	}
	t.lastRoll = today
	return ids
}

// infantryCommand returns the infantry unit p commands when soldiers are
// subcontracted.
func (t *Tracker) infantryCommand(p *roster.Person, c roster.Campaign) *roster.Unit {
	if !t.opts.SubcontractSoldiers || p.UnitID == "" {
		return nil
	}
	u, ok := c.Unit(p.UnitID)
	if !ok || u.CommanderID != p.ID || !u.IsInfantry() {
		return nil
	}
	return u
}

// RemoveFromCampaign enters a payout for a death or sacking outside the
// roll. Prisoners and bondsmen are refused.
func (t *Tracker) RemoveFromCampaign(p *roster.Person, killed, sacked bool, mission *roster.Mission, c roster.Campaign) bool {
	if p == nil || !p.IsFree() {
		return false
	}
	t.payouts[p.ID] = t.opts.ComputePayout(p, killed, sacked, roster.Date(c.Today()))
	if mission != nil {
		t.assign(mission.ID, p.ID)
	}
	return true
}

// assign moves personID into the unresolved set of missionID, leaving every
// other set.
func (t *Tracker) assign(missionID, personID string) {
	for id, set := range t.unresolved {
		if id == missionID {
			continue
		}
		delete(set, personID)
		if len(set) == 0 {
			delete(t.unresolved, id)
		}
	}
	set, ok := t.unresolved[missionID]
	if !ok {
		set = map[string]struct{}{}
		t.unresolved[missionID] = set
	}
	set[personID] = struct{}{}
}

// RemovePayout drops the pending state of a person once it is paid, so no
// unresolved set keeps an id without a payout.
func (t *Tracker) RemovePayout(personID string) {
	t.RemovePerson(personID)
}

// RemovePerson drops every trace of a person.
func (t *Tracker) RemovePerson(personID string) {
	delete(t.payouts, personID)
	for id, set := range t.unresolved {
		delete(set, personID)
		if len(set) == 0 {
			delete(t.unresolved, id)
		}
	}
}

// CleanupOrphans drops payouts and unresolved entries of people no longer in
// the roster, and unresolved entries without a payout. It is idempotent.
func (t *Tracker) CleanupOrphans(c roster.Campaign) int {
	removed := 0
	for id := range t.payouts {
		if _, ok := c.Person(id); !ok {
			delete(t.payouts, id)
			removed++
		}
	}
	for missionID, set := range t.unresolved {
		for id := range set {
			if _, ok := t.payouts[id]; !ok {
				delete(set, id)
				removed++
			}
		}
		if len(set) == 0 {
			delete(t.unresolved, missionID)
		}
	}
	if removed > 0 {
		t.logf("turnover: removed %d orphaned entries", removed)
	}
	return removed
}

// ResolveContract settles mission: its unresolved people lose their payouts
// and the set is cleared. A nil mission settles everything.
func (t *Tracker) ResolveContract(mission *roster.Mission) {
	if mission == nil {
		clear(t.unresolved)
		clear(t.payouts)
		clear(t.rollRequired)
		return
	}
	for id := range t.unresolved[mission.ID] {
		delete(t.payouts, id)
	}
	delete(t.unresolved, mission.ID)
	delete(t.rollRequired, mission.ID)
}

// State returns a copy of the durable state with sorted id lists.
func (t *Tracker) State() State {
	s := State{
		RollRequired: slices.Sorted(maps.Keys(t.rollRequired)),
		Unresolved:   make(map[string][]string, len(t.unresolved)),
		Payouts:      maps.Clone(t.payouts),
		LastRoll:     t.lastRoll,
	}
	for id, set := range t.unresolved {
		s.Unresolved[id] = slices.Sorted(maps.Keys(set))
	}
	return s
}

// Restore replaces the durable state. Run CleanupOrphans afterwards against
// the loaded roster.
func (t *Tracker) Restore(s State) {
	t.rollRequired = map[string]struct{}{}
	for _, id := range s.RollRequired {
		t.AddMission(id)
	}
	t.payouts = maps.Clone(s.Payouts)
	if t.payouts == nil {
		t.payouts = map[string]Payout{}
	}
	t.unresolved = map[string]map[string]struct{}{}
	for _, missionID := range slices.Sorted(maps.Keys(s.Unresolved)) {
		for _, id := range s.Unresolved[missionID] {
			t.assign(missionID, id)
		}
	}
	t.lastRoll = s.LastRoll
}
