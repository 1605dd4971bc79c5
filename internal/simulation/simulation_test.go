package simulation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/louisbranch/personnel.dynamics/internal/faction"
	"github.com/louisbranch/personnel.dynamics/internal/market"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/random"
	"github.com/louisbranch/personnel.dynamics/internal/retirement"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
	"github.com/louisbranch/personnel.dynamics/internal/storage"
	"github.com/louisbranch/personnel.dynamics/internal/storage/sqlite"
)

type fakeFactory struct {
	next int
}

func (f *fakeFactory) NewPerson(p roster.Profession, origin string, _ roster.GenderDirective) (*roster.Person, error) {
	f.next++
	return &roster.Person{
		ID:            fmt.Sprintf("hire-%d", f.next),
		Profession:    p,
		OriginFaction: origin,
		Status:        roster.StatusActive,
		Experience:    roster.Regular,
		Salary:        decimal.NewFromInt(800),
	}, nil
}

func testRegistry() *faction.Static {
	return faction.NewStatic(
		[]faction.Faction{{Code: "FS", Name: "Federated Suns"}, {Code: "LA", Name: "Lyran Alliance"}},
		[]faction.System{{
			ID:         "robinson",
			Population: 5_000_000_000,
			HiringHall: faction.HiringHallStandard,
			Capital:    true,
			Ownership:  []faction.Ownership{{Faction: "FS", Start: 3000}, {Faction: "LA", Start: 3000}},
		}},
		nil,
		nil,
	)
}

func testTables() market.TableSet {
	t := market.Tables{
		NonClan: market.NewTable(market.Entry{Profession: roster.MekWarrior, Weight: 40, Count: 10, IntroYear: 2300, ExtinctYear: market.NeverExtinct}),
		Clan:    market.NewTable(market.Entry{Profession: roster.MekWarrior, Weight: 40, Count: 10, IntroYear: 2300, ExtinctYear: market.NeverExtinct}),
	}
	return market.TableSet{market.RuleSetMekHQ: t, market.RuleSetCamOps: t}
}

func person(id, birthday string) *roster.Person {
	return &roster.Person{
		ID:         id,
		Name:       strings.ToUpper(id[:1]) + id[1:],
		Profession: roster.MekWarrior,
		Status:     roster.StatusActive,
		Birthday:   roster.MustParseDate(birthday),
		Recruited:  roster.MustParseDate("3040-01-01"),
		Experience: roster.Regular,
		Salary:     decimal.NewFromInt(1000),
	}
}

// testCampaign holds an old and a young mekwarrior on 3050-06-01.
func intPtr(v int) *int { return &v }

func testCampaign() *roster.Memory {
	c := roster.NewMemory(roster.MustParseDate("3050-06-01"), "FS", roster.Location{SystemID: "robinson"})
	c.AddPerson(person("old", "3000-01-01"))
	c.AddPerson(person("young", "3025-01-01"))
	return c
}

type harness struct {
	host    *Host
	reports []string
}

func newHost(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{}
	if cfg.Campaign == nil {
		cfg.Campaign = testCampaign()
	}
	if cfg.Factions == nil {
		cfg.Factions = testRegistry()
	}
	if cfg.Source == nil {
		cfg.Source = random.Zero{}
	}
	if cfg.Tables == nil {
		cfg.Tables = testTables()
	}
	if cfg.Factory == nil {
		cfg.Factory = &fakeFactory{}
	}
	cfg.Logf = t.Logf
	cfg.Report = func(text string) { h.reports = append(h.reports, text) }
	host, err := New(cfg)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	h.host = host
	return h
}

func (h *harness) reported(substr string) bool {
	for _, r := range h.reports {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

func endingMission(end string) *roster.Mission {
	return &roster.Mission{
		ID:     "m1",
		Name:   "Raid on Robinson",
		Kind:   roster.MissionRaid,
		Status: roster.MissionActive,
		Start:  roster.MustParseDate("3050-01-01"),
		End:    roster.MustParseDate(end),
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "campaign", cfg: Config{Factions: testRegistry(), Source: random.Zero{}}},
		{name: "source", cfg: Config{Campaign: testCampaign(), Factions: testRegistry()}},
		{name: "factions", cfg: Config{Campaign: testCampaign(), Source: random.Zero{}}},
		{name: "market style", cfg: Config{Campaign: testCampaign(), Factions: testRegistry(), Source: random.Zero{}, Market: market.Options{Style: "bazaar"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTickReportsGatedMarketAndAdvances(t *testing.T) {
	h := newHost(t, Config{})
	if err := h.host.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !h.reported("recruitment market is disabled") {
		t.Fatalf("reports = %q, want disabled market report", h.reports)
	}
	if got := h.host.Campaign().Today(); !got.Equal(roster.MustParseDate("3050-06-02")) {
		t.Fatalf("date = %v, want 3050-06-02", got)
	}
}

func TestTickStopsOnCanceledContext(t *testing.T) {
	h := newHost(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.host.Tick(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want canceled", err)
	}
	summary, err := h.host.Run(ctx, 3)
	if !errors.Is(err, context.Canceled) || summary.Days != 0 {
		t.Fatalf("run = %+v, %v; want no days and canceled", summary, err)
	}
}

func TestMonthlyMarketHiresUpToCap(t *testing.T) {
	h := newHost(t, Config{
		Market:  market.Options{Style: market.StyleCamOpsRevised},
		HireCap: 2,
	})
	before := len(h.host.Campaign().Personnel())
	summary, err := h.host.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Cycles != 1 || summary.Hired != 2 {
		t.Fatalf("summary = %+v, want one cycle and two hires", summary)
	}
	if got := len(h.host.Campaign().Personnel()); got != before+2 {
		t.Fatalf("roster = %d, want %d", got, before+2)
	}
	hired, ok := h.host.Campaign().Person("hire-1")
	if !ok || !hired.Recruited.Equal(roster.MustParseDate("3050-06-01")) {
		t.Fatalf("hire-1 = %+v, want recruited on 3050-06-01", hired)
	}
	for _, a := range h.host.Market().Applicants() {
		if a.ID == "hire-1" || a.ID == "hire-2" {
			t.Fatalf("hired %s is still in the pool", a.ID)
		}
	}
	if !h.reported("applicants are waiting") {
		t.Fatalf("reports = %q, want recruitment summary", h.reports)
	}
}

func TestContractEndSettlesDepartures(t *testing.T) {
	c := testCampaign()
	c.PutMission(endingMission("3050-06-01"))
	h := newHost(t, Config{
		Campaign: c,
		Funds:    decimal.NewFromInt(50000),
		Outcomes: map[string]roster.MissionStatus{"m1": roster.MissionPartial},
	})

	summary, err := h.host.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Departures != 2 {
		t.Fatalf("departures = %d, want 2", summary.Departures)
	}
	if !summary.PaidOut.Equal(decimal.NewFromInt(18000)) {
		t.Fatalf("paid out = %s, want 18000", summary.PaidOut)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(32000)) {
		t.Fatalf("balance = %s, want 32000", summary.Balance)
	}

	old, _ := c.Person("old")
	young, _ := c.Person("young")
	if old.Status != roster.StatusRetired || young.Status != roster.StatusResigned {
		t.Fatalf("statuses = %s/%s, want retired/resigned", old.Status, young.Status)
	}
	m, _ := c.Mission("m1")
	if m.Status != roster.MissionPartial {
		t.Fatalf("mission status = %s, want partial", m.Status)
	}
	tracker := h.host.Tracker()
	if tracker.IsOutstanding("m1") || len(tracker.Payouts()) != 0 {
		t.Fatalf("tracker still holds m1: payouts %v", tracker.Payouts())
	}

	entries := h.host.Ledger().Entries()
	if len(entries) != 2 || entries[0].PersonID != "old" || entries[0].Memo != string(roster.StatusRetired) {
		t.Fatalf("ledger = %+v", entries)
	}
	if !h.reported("Raid on Robinson: 2 personnel rolled for turnover, 2 leaving.") {
		t.Fatalf("reports = %q, want turnover header", h.reports)
	}
	if !h.reported("Paid 18,000.00 to 2 departing personnel.") {
		t.Fatalf("reports = %q, want payout summary", h.reports)
	}
}

func TestContractEndWithoutDepartures(t *testing.T) {
	c := testCampaign()
	c.PutMission(endingMission("3050-06-01"))
	h := newHost(t, Config{Campaign: c, Turnover: retirement.Options{FixedTarget: intPtr(2)}})

	summary, err := h.host.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Departures != 0 || !summary.PaidOut.IsZero() {
		t.Fatalf("summary = %+v, want nobody leaving", summary)
	}
	m, _ := c.Mission("m1")
	if m.Status != roster.MissionSuccess {
		t.Fatalf("mission status = %s, want success", m.Status)
	}
	if h.host.Tracker().IsOutstanding("m1") {
		t.Fatal("expected m1 resolved")
	}
	if !h.reported("2 personnel rolled for turnover, 0 leaving.") {
		t.Fatalf("reports = %q", h.reports)
	}
}

func TestAnnualRollRunsOncePerYear(t *testing.T) {
	c := testCampaign()
	c.Date = roster.MustParseDate("3050-06-02")
	h := newHost(t, Config{Campaign: c, Turnover: retirement.Options{AnnualRolls: true}})

	summary, err := h.host.Run(context.Background(), 365)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Departures != 0 {
		t.Fatalf("departures before the anniversary = %d, want 0", summary.Departures)
	}
	if err := h.host.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	old, _ := c.Person("old")
	young, _ := c.Person("young")
	if old.Status != roster.StatusRetired || young.Status != roster.StatusResigned {
		t.Fatalf("statuses = %s/%s, want retired/resigned", old.Status, young.Status)
	}
	if got := h.host.Tracker().LastRoll(); !got.Equal(roster.MustParseDate("3051-06-02")) {
		t.Fatalf("last roll = %v, want 3051-06-02", got)
	}
	if len(h.host.Tracker().Payouts()) != 0 {
		t.Fatalf("payouts = %v, want settled", h.host.Tracker().Payouts())
	}
	if !h.reported("Annual turnover review 3051") {
		t.Fatalf("reports = %q, want annual header", h.reports)
	}
}

func TestDismiss(t *testing.T) {
	c := testCampaign()
	captive := person("captive", "3020-01-01")
	captive.Bondage = roster.Prisoner
	c.AddPerson(captive)
	h := newHost(t, Config{Campaign: c, Funds: decimal.NewFromInt(10000)})

	payout, err := h.host.Dismiss("young", true, false)
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if !payout.Killed || !payout.Amount.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("payout = %+v, want killed 6000", payout)
	}
	young, _ := c.Person("young")
	if young.Status != roster.StatusKilled {
		t.Fatalf("status = %s, want killed", young.Status)
	}
	if !h.host.Ledger().Balance().Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("balance = %s, want 4000", h.host.Ledger().Balance())
	}
	if _, ok := h.host.Tracker().Payout("young"); ok {
		t.Fatal("expected payout settled")
	}

	if _, err := h.host.Dismiss("old", false, true); err != nil {
		t.Fatalf("sack: %v", err)
	}
	if old, _ := c.Person("old"); old.Status != roster.StatusSacked {
		t.Fatalf("status = %s, want sacked", old.Status)
	}

	if _, err := h.host.Dismiss("nobody", true, false); apperrors.GetCode(err) != apperrors.CodePersonNotFound {
		t.Fatalf("error = %v, want person not found", err)
	}
	if _, err := h.host.Dismiss("young", true, false); err == nil {
		t.Fatal("expected error dismissing a departed person")
	}
	if _, err := h.host.Dismiss("captive", true, false); !errors.Is(err, retirement.ErrPersonNotFree) {
		t.Fatalf("error = %v, want person not free", err)
	}
}

func TestDismissStatusFollowsPayoutBranch(t *testing.T) {
	c := testCampaign()
	breaker := person("breaker", "3000-01-01")
	breaker.Recruited = roster.MustParseDate("3049-01-01")
	c.AddPerson(breaker)
	h := newHost(t, Config{
		Campaign: c,
		Funds:    decimal.NewFromInt(10000),
		Turnover: retirement.Options{UseContracts: true},
	})

	payout, err := h.host.Dismiss("breaker", false, false)
	if err != nil {
		t.Fatalf("dismiss breaker: %v", err)
	}
	if !payout.Amount.IsZero() {
		t.Fatalf("payout = %s, want zero for a contract breaker", payout.Amount)
	}
	if got, _ := c.Person("breaker"); got.Status != roster.StatusDeserted {
		t.Fatalf("status = %s, want deserted", got.Status)
	}

	if _, err := h.host.Dismiss("old", false, false); err != nil {
		t.Fatalf("dismiss old: %v", err)
	}
	if got, _ := c.Person("old"); got.Status != roster.StatusRetired {
		t.Fatalf("status = %s, want retired", got.Status)
	}
}

func TestSaveAndLoadThroughSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	c := testCampaign()
	c.PutMission(endingMission("3050-07-01"))
	h := newHost(t, Config{
		CampaignID: "kell",
		Campaign:   c,
		Market:     market.Options{Style: market.StyleCamOpsRevised},
		Funds:      decimal.NewFromInt(1000),
		HireCap:    1,
	})
	if _, err := h.host.Run(ctx, 1); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := h.host.Dismiss("young", false, true); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	pool := len(h.host.Market().Applicants())
	record, err := h.host.Save(ctx, store)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if record.Revision != 1 || record.CampaignID != "kell" {
		t.Fatalf("record = %+v", record)
	}

	fresh := newHost(t, Config{Campaign: roster.NewMemory(roster.MustParseDate("3000-01-01"), "LA", roster.Location{})})
	if err := fresh.host.Load(ctx, store, "kell"); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := fresh.host.Campaign()
	if !got.Today().Equal(roster.MustParseDate("3050-06-02")) || got.FactionCode() != "FS" {
		t.Fatalf("campaign = %v %s", got.Today(), got.FactionCode())
	}
	if len(got.Personnel()) != 3 {
		t.Fatalf("personnel = %d, want 3", len(got.Personnel()))
	}
	if young, _ := got.Person("young"); young.Status != roster.StatusSacked {
		t.Fatalf("young = %+v, want sacked", young)
	}
	if m, ok := got.Mission("m1"); !ok || !m.IsActive() {
		t.Fatalf("mission = %+v, want active m1", m)
	}
	if fresh.host.Market().Style() != market.StyleCamOpsRevised || len(fresh.host.Market().Applicants()) != pool {
		t.Fatalf("market = %s with %d applicants, want camops_revised with %d", fresh.host.Market().Style(), len(fresh.host.Market().Applicants()), pool)
	}
	if !fresh.host.Ledger().Balance().Equal(h.host.Ledger().Balance()) || len(fresh.host.Ledger().Entries()) != 1 {
		t.Fatalf("ledger = %s %+v", fresh.host.Ledger().Balance(), fresh.host.Ledger().Entries())
	}
	if fresh.host.CampaignID() != "kell" {
		t.Fatalf("campaign id = %q, want kell", fresh.host.CampaignID())
	}

	if err := fresh.host.Load(ctx, store, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestRestoreDropsOrphansAndToleratesBrokenSections(t *testing.T) {
	h := newHost(t, Config{Market: market.Options{Style: market.StyleMekHQ}})
	record, err := h.host.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	record.Sections[storage.SectionMarket] = []byte("{broken")
	record.Sections[storage.SectionTurnover] = []byte(`{"unresolved":[{"mission":"m9","people":["ghost","old"]}],"payouts":[{"person":"ghost","amount":"10"},{"person":"old","amount":"20"}]}`)

	if err := h.host.Restore(record); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if h.host.Market().Style() != market.StyleDisabled {
		t.Fatalf("style = %s, want disabled after a broken market section", h.host.Market().Style())
	}
	payouts := h.host.Tracker().Payouts()
	if _, ok := payouts["ghost"]; ok || len(payouts) != 1 {
		t.Fatalf("payouts = %v, want only old", payouts)
	}
	if got := h.host.Tracker().UnresolvedFor("m9"); len(got) != 1 || got[0] != "old" {
		t.Fatalf("unresolved = %v, want [old]", got)
	}

	delete(record.Sections, storage.SectionRoster)
	if err := h.host.Restore(record); apperrors.GetCode(err) != apperrors.CodeSaveDecode {
		t.Fatalf("error = %v, want save decode", err)
	}
}

func TestLoadFixture(t *testing.T) {
	doc := `
campaign:
  id: kell
  date: 3050-06-01
  faction: FS
  system: robinson
  funds: "250000.50"
  hire_cap: 3
  standings: {FS: 1.5}
market:
  style: mekhq
turnover:
  fixed_target: 6
  annual_rolls: true
people:
  - id: ada
    name: Ada
    profession: mekwarrior
    birthday: 3020-01-01
    recruited: 3040-06-01
    salary: 1000
units:
  - id: lance
    kind: mek
    commander_id: ada
    member_ids: [ada]
missions:
  - id: m1
    name: Raid
    kind: raid
    end: 3050-09-01
    outcome: failed
`
	f, err := LoadFixture(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Campaign.ID != "kell" || f.Campaign.HireCap != 3 || !f.Campaign.Funds.Equal(decimal.RequireFromString("250000.5")) {
		t.Fatalf("campaign = %+v", f.Campaign)
	}
	if f.Market.Style != market.StyleMekHQ || f.Turnover.FixedTarget == nil || *f.Turnover.FixedTarget != 6 || !f.Turnover.AnnualRolls {
		t.Fatalf("options = %+v %+v", f.Market, f.Turnover)
	}
	c := f.Roster()
	ada, ok := c.Person("ada")
	if !ok || ada.Status != roster.StatusActive || !ada.Salary.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("ada = %+v", ada)
	}
	if c.Regard("FS") != 1.5 {
		t.Fatalf("regard = %v, want 1.5", c.Regard("FS"))
	}
	m, ok := c.Mission("m1")
	if !ok || !m.IsActive() || !m.EndsOn(roster.MustParseDate("3050-09-01")) {
		t.Fatalf("mission = %+v", m)
	}
	if got := f.Outcomes()["m1"]; got != roster.MissionFailed {
		t.Fatalf("outcome = %s, want failed", got)
	}
	if _, ok := c.Unit("lance"); !ok {
		t.Fatal("expected unit lance")
	}

	if _, err := LoadFixture(strings.NewReader("campaign: {id: x}\n")); apperrors.GetCode(err) != apperrors.CodeFixtureLoad {
		t.Fatalf("error = %v, want fixture load for a missing date", err)
	}
	if _, err := LoadFixture(strings.NewReader("campaign: {date: 3050-01-01}\npeople: [{name: nobody}]\n")); err == nil {
		t.Fatal("expected error for a person without id")
	}
}
