// Package simulation hosts a campaign day by day: it runs the monthly
// recruitment market, rolls turnover when contracts end and once a year,
// and settles departures into a ledger.
package simulation

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/personnel.dynamics/internal/core/target"
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	"github.com/louisbranch/personnel.dynamics/internal/market"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/platform/otel"
	"github.com/louisbranch/personnel.dynamics/internal/random"
	"github.com/louisbranch/personnel.dynamics/internal/report"
	"github.com/louisbranch/personnel.dynamics/internal/retirement"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Config wires a Host.
type Config struct {
	CampaignID string
	Campaign   *roster.Memory
	Factions   faction.Registry
	Tables     market.TableSet
	Market     market.Options
	Turnover   retirement.Options
	Source     random.Source
	// Factory synthesizes applicants; nil uses roster.Factory.
	Factory roster.PersonFactory
	Funds   decimal.Decimal
	// HireCap is how many applicants are hired after each cycle.
	HireCap           int
	ShareValue        decimal.Decimal
	OfferingIncentive bool
	// Outcomes maps mission ids to the status they end with.
	Outcomes  map[string]roster.MissionStatus
	Localizer *report.Localizer
	Logf      func(format string, args ...any)
	// Report receives every rendered report; nil sends them to Logf.
	Report func(text string)
}

// Summary describes a finished run.
type Summary struct {
	Days       int
	Cycles     int
	Hired      int
	Departures int
	PaidOut    decimal.Decimal
	Balance    decimal.Decimal
	Date       time.Time
}

// Host owns one campaign and its two engines. It is not safe for
// concurrent use.
type Host struct {
	id         string
	campaign   *roster.Memory
	market     *market.Market
	tracker    *retirement.Tracker
	ledger     *Ledger
	loc        *report.Localizer
	outcomes   map[string]roster.MissionStatus
	hireCap    int
	shareValue decimal.Decimal
	logf       func(format string, args ...any)
	report     func(string)

	cycles     int
	hired      int
	departures int
}

// New builds a Host around cfg.Campaign.
func New(cfg Config) (*Host, error) {
	if cfg.Campaign == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "campaign is required")
	}
	if cfg.Source == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "random source is required")
	}
	if cfg.Factions == nil {
		return nil, apperrors.New(apperrors.CodeOptionsInvalid, "faction registry is required")
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	h := &Host{
		id:         cfg.CampaignID,
		campaign:   cfg.Campaign,
		ledger:     NewLedger(cfg.Funds),
		loc:        cfg.Localizer,
		outcomes:   cfg.Outcomes,
		hireCap:    max(cfg.HireCap, 0),
		shareValue: cfg.ShareValue,
		logf:       logf,
		report:     cfg.Report,
	}
	if h.id == "" {
		h.id = DefaultCampaignID
	}
	if h.loc == nil {
		h.loc = report.NewLocalizer("")
	}
	if h.report == nil {
		h.report = func(text string) { logf("%s", text) }
	}

	factory := cfg.Factory
	if factory == nil {
		factory = roster.NewFactory(cfg.Source, cfg.Factions, func() time.Time { return h.campaign.Today() })
	}
	m, err := market.New(market.Config{
		Options:  cfg.Market,
		Tables:   cfg.Tables,
		Factions: cfg.Factions,
		Factory:  factory,
		Source:   cfg.Source,
		Logf:     logf,
	})
	if err != nil {
		return nil, err
	}
	m.SetOfferingIncentive(cfg.OfferingIncentive)
	tracker, err := retirement.New(retirement.Config{
		Options:  cfg.Turnover,
		Factions: cfg.Factions,
		Source:   cfg.Source,
		Logf:     logf,
	})
	if err != nil {
		return nil, err
	}
	h.market = m
	h.tracker = tracker
	h.anchorAnnualRoll()
	return h, nil
}

// anchorAnnualRoll starts the annual schedule on the current date so a
// fresh campaign does not roll on its first day.
func (h *Host) anchorAnnualRoll() {
	if h.tracker.LastRoll().IsZero() {
		h.tracker.SetLastRoll(h.campaign.Today())
	}
}

// CampaignID returns the save key of the campaign.
func (h *Host) CampaignID() string { return h.id }

// Campaign returns the hosted roster.
func (h *Host) Campaign() *roster.Memory { return h.campaign }

// Market returns the recruitment market.
func (h *Host) Market() *market.Market { return h.market }

// Tracker returns the turnover tracker.
func (h *Host) Tracker() *retirement.Tracker { return h.tracker }

// Ledger returns the funds ledger.
func (h *Host) Ledger() *Ledger { return h.ledger }

// Run ticks days times and summarizes the run.
func (h *Host) Run(ctx context.Context, days int) (Summary, error) {
	start := h.ledger.Total()
	summary := Summary{}
	for range max(days, 0) {
		if err := h.Tick(ctx); err != nil {
			return h.summarize(summary, start), err
		}
		summary.Days++
	}
	return h.summarize(summary, start), nil
}

func (h *Host) summarize(s Summary, paidBefore decimal.Decimal) Summary {
	s.Cycles = h.cycles
	s.Hired = h.hired
	s.Departures = h.departures
	s.PaidOut = h.ledger.Total().Sub(paidBefore)
	s.Balance = h.ledger.Balance()
	s.Date = h.campaign.Today()
	return s
}

// Tick processes the current day and advances the calendar by one day: the
// market runs on the first of the month, then contracts ending today roll
// turnover, then the annual roll runs when it is due.
func (h *Host) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	today := h.campaign.Today()
	if roster.IsFirstOfMonth(today) {
		h.recruit(ctx)
	}
	for _, mission := range h.campaign.Missions() {
		if mission.IsActive() && mission.EndsOn(today) {
			h.endContract(ctx, mission)
		}
	}
	if h.tracker.ShouldRollAnnually(today) {
		h.rollAnnual(ctx)
	}
	h.campaign.Advance(1)
	return nil
}

func (h *Host) recruit(ctx context.Context) {
	_, span := otel.Tracer("market").Start(ctx, "market.generate")
	defer span.End()

	h.market.Generate(h.campaign)
	h.cycles++
	state := h.market.State()
	span.SetAttributes(
		attribute.String("market.style", string(state.Style)),
		attribute.Int("market.rolls", state.Rolls),
		attribute.Int("market.applicants", len(state.Applicants)),
		attribute.String("market.blocked", state.Blocked),
	)
	if text := h.loc.Recruitment(state); text != "" {
		h.report(text)
	}

	applicants := state.Applicants
	if len(applicants) > h.hireCap {
		applicants = applicants[:h.hireCap]
	}
	hired := 0
	for _, a := range applicants {
		p, ok := h.market.Hire(a.ID)
		if !ok {
			continue
		}
		p.Recruited = h.campaign.Today()
		if !h.campaign.AddPerson(p) {
			h.logf("market: hire %s: id already on the roster", p.ID)
			continue
		}
		hired++
	}
	h.hired += hired
	span.SetAttributes(attribute.Int("market.hired", hired))
}

func (h *Host) endContract(ctx context.Context, mission *roster.Mission) {
	ctx, span := otel.Tracer("turnover").Start(ctx, "turnover.contract_end")
	defer span.End()

	status, ok := h.outcomes[mission.ID]
	if !ok || status == "" || status == roster.MissionActive {
		status = roster.MissionSuccess
	}
	mission.Status = status
	h.tracker.AddMission(mission.ID)
	span.SetAttributes(
		attribute.String("mission.id", mission.ID),
		attribute.String("mission.status", string(status)),
	)

	title := mission.Name
	if title == "" {
		title = mission.ID
	}
	leaving := h.roll(ctx, mission, title)
	span.SetAttributes(attribute.Int("turnover.leaving", len(leaving)))
	h.settle(mission, h.tracker.UnresolvedFor(mission.ID))
}

func (h *Host) rollAnnual(ctx context.Context) {
	ctx, span := otel.Tracer("turnover").Start(ctx, "turnover.annual")
	defer span.End()

	year := h.campaign.Today().Year()
	leaving := h.roll(ctx, nil, h.loc.Text("report.turnover.annual", fmt.Sprint(year)))
	span.SetAttributes(
		attribute.Int("turnover.year", year),
		attribute.Int("turnover.leaving", len(leaving)),
	)
	h.settle(nil, leaving)
}

// roll computes targets, rolls them and reports every outcome. It returns
// the ids marked to leave.
func (h *Host) roll(ctx context.Context, mission *roster.Mission, title string) []string {
	_, span := otel.Tracer("turnover").Start(ctx, "turnover.roll")
	defer span.End()

	targets := h.tracker.GetTargetNumbers(mission, h.campaign)
	leaving := h.tracker.RollRetirement(mission, targets, h.shareValue, h.campaign)
	span.SetAttributes(attribute.Int("turnover.targets", len(targets)))
	if len(targets) == 0 {
		return leaving
	}
	h.report(h.loc.Turnover(title, h.outcomesFor(targets, leaving)))
	return leaving
}

func (h *Host) outcomesFor(targets map[string]target.Roll, leaving []string) []report.Outcome {
	ids := make([]string, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]report.Outcome, 0, len(ids))
	for _, id := range ids {
		p, ok := h.campaign.Person(id)
		if !ok {
			continue
		}
		o := report.Outcome{Person: p, Target: targets[id]}
		if slices.Contains(leaving, id) {
			o.Leaving = true
			if payout, ok := h.tracker.Payout(id); ok {
				o.Payout = payout.Amount
			}
		}
		out = append(out, o)
	}
	return out
}

// Dismiss removes a person outside the turnover roll, as a death or a
// sacking, and settles the payout at once.
func (h *Host) Dismiss(personID string, killed, sacked bool) (retirement.Payout, error) {
	p, ok := h.campaign.Person(personID)
	if !ok {
		return retirement.Payout{}, apperrors.WithMetadata(apperrors.CodePersonNotFound, "person not found", map[string]string{
			"person": personID,
		})
	}
	if !p.IsActive() {
		return retirement.Payout{}, apperrors.WithMetadata(apperrors.CodeInvariant, "person already departed", map[string]string{
			"person": personID,
		})
	}
	if !h.tracker.RemoveFromCampaign(p, killed, sacked, nil, h.campaign) {
		return retirement.Payout{}, retirement.ErrPersonNotFree
	}
	payout, _ := h.tracker.Payout(personID)
	h.settle(nil, []string{personID})
	return payout, nil
}

// settle pays the listed departures, moves each person to their departure
// status, and clears the bookkeeping. A nil mission settles people who were
// not entered under a contract.
func (h *Host) settle(mission *roster.Mission, ids []string) {
	today := h.campaign.Today()
	total := decimal.Zero
	paid := 0
	for _, id := range ids {
		payout, ok := h.tracker.Payout(id)
		if !ok {
			continue
		}
		p, ok := h.campaign.Person(id)
		if !ok {
			h.tracker.RemovePerson(id)
			continue
		}
		status := h.departureStatus(p, payout, today)
		h.campaign.ChangeStatus(id, status)
		h.ledger.Charge(today, id, payout.Amount, string(status))
		total = total.Add(payout.Amount)
		paid++
		if mission == nil {
			h.tracker.RemovePayout(id)
		}
	}
	if mission != nil {
		h.tracker.ResolveContract(mission)
	}
	h.departures += paid
	if paid > 0 {
		h.report(h.loc.Payouts(total, paid))
	}
}

func (h *Host) departureStatus(p *roster.Person, payout retirement.Payout, today time.Time) roster.Status {
	switch {
	case payout.Killed:
		return roster.StatusKilled
	case payout.Sacked:
		return roster.StatusSacked
	case h.tracker.Options().IsContractBreaker(p, today):
		return roster.StatusDeserted
	case p.Age(today) >= retirement.RetirementAge:
		return roster.StatusRetired
	default:
		return roster.StatusResigned
	}
}
