// Package personnel parses personnel command flags and runs a campaign
// simulation against fixture data, persisting the result to SQLite.
package personnel

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/louisbranch/personnel.dynamics/internal/faction"
	entrypoint "github.com/louisbranch/personnel.dynamics/internal/platform/cmd"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/platform/timeouts"
	"github.com/louisbranch/personnel.dynamics/internal/random"
	"github.com/louisbranch/personnel.dynamics/internal/report"
	"github.com/louisbranch/personnel.dynamics/internal/ruletable"
	"github.com/louisbranch/personnel.dynamics/internal/simulation"
	"github.com/louisbranch/personnel.dynamics/internal/storage"
	"github.com/louisbranch/personnel.dynamics/internal/storage/sqlite"
)

// Config holds personnel command configuration.
type Config struct {
	RulesPath    string `env:"PERSONNEL_RULES_PATH"    envDefault:"fixtures/rules.yaml"`
	FactionsPath string `env:"PERSONNEL_FACTIONS_PATH" envDefault:"fixtures/factions.yaml"`
	CampaignPath string `env:"PERSONNEL_CAMPAIGN_PATH" envDefault:"fixtures/campaign.yaml"`
	DBPath       string `env:"PERSONNEL_DB_PATH"       envDefault:"data/personnel.db"`
	// Seed zero draws a crypto seed.
	Seed       int64  `env:"PERSONNEL_SEED"`
	Days       int    `env:"PERSONNEL_DAYS"        envDefault:"365"`
	CampaignID string `env:"PERSONNEL_CAMPAIGN_ID"`
	Locale     string `env:"PERSONNEL_LOCALE"      envDefault:"en-US"`
	// Resume continues from the stored save instead of the fixture roster.
	Resume bool `env:"PERSONNEL_RESUME"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.RulesPath, "rules", cfg.RulesPath, "Recruitment rule table YAML path")
	fs.StringVar(&cfg.FactionsPath, "factions", cfg.FactionsPath, "Faction registry YAML path")
	fs.StringVar(&cfg.CampaignPath, "campaign", cfg.CampaignPath, "Campaign fixture YAML path")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The campaign save SQLite database path")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 draws one)")
	fs.IntVar(&cfg.Days, "days", cfg.Days, "Number of days to simulate")
	fs.StringVar(&cfg.CampaignID, "campaign-id", cfg.CampaignID, "Save key; defaults to the fixture campaign id")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Report locale")
	fs.BoolVar(&cfg.Resume, "resume", cfg.Resume, "Continue from the stored save")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Days < 0 {
		return Config{}, fmt.Errorf("days must be zero or more, got %d", cfg.Days)
	}
	return cfg, nil
}

// Run simulates the campaign and writes reports to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePersonnel, func(ctx context.Context) error {
		return simulate(ctx, cfg, out)
	})
}

func simulate(ctx context.Context, cfg Config, out io.Writer) error {
	seed, generated, err := random.ResolveSeed(cfg.Seed, random.NewSeed)
	if err != nil {
		return fmt.Errorf("resolve seed: %w", err)
	}
	if generated {
		log.Printf("generated seed %d", seed)
	}

	tables, err := ruletable.LoadFile(cfg.RulesPath)
	if err != nil {
		return err
	}
	for _, problem := range ruletable.Problems(tables) {
		log.Printf("%s", apperrors.LogLinef(problem, "rule tables"))
	}
	factions, err := faction.LoadFile(cfg.FactionsPath)
	if err != nil {
		return err
	}
	fixture, err := simulation.LoadFixtureFile(cfg.CampaignPath)
	if err != nil {
		return err
	}
	campaignID := cfg.CampaignID
	if campaignID == "" {
		campaignID = fixture.Campaign.ID
	}

	loc := report.NewLocalizer(cfg.Locale)
	host, err := simulation.New(simulation.Config{
		CampaignID:        campaignID,
		Campaign:          fixture.Roster(),
		Factions:          factions,
		Tables:            tables,
		Market:            fixture.Market,
		Turnover:          fixture.Turnover,
		Source:            random.NewSeeded(seed),
		Funds:             fixture.Campaign.Funds,
		HireCap:           fixture.Campaign.HireCap,
		ShareValue:        fixture.Campaign.ShareValue,
		OfferingIncentive: fixture.Campaign.OfferingIncentive,
		Outcomes:          fixture.Outcomes(),
		Localizer:         loc,
		Report:            func(text string) { fmt.Fprintln(out, text) },
	})
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close save store: %v", err)
		}
	}()

	if cfg.Resume {
		loadCtx, cancel := context.WithTimeout(ctx, timeouts.SaveStore)
		err := host.Load(loadCtx, store, campaignID)
		cancel()
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Printf("no save for %s, starting from the fixture", campaignID)
		case err != nil:
			return err
		}
	}

	summary, err := host.Run(ctx, cfg.Days)
	if err != nil {
		return err
	}
	saveCtx, cancel := context.WithTimeout(ctx, timeouts.SaveStore)
	defer cancel()
	record, err := host.Save(saveCtx, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d days simulated to %s, %d hired, %d departed, paid %s, balance %s (save revision %d)\n",
		campaignID,
		summary.Days,
		summary.Date.Format("2006-01-02"),
		summary.Hired,
		summary.Departures,
		loc.Money(summary.PaidOut),
		loc.Money(summary.Balance),
		record.Revision,
	)
	return nil
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open save store: %w", err)
	}
	return store, nil
}
