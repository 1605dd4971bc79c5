package simulation

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
	"github.com/louisbranch/personnel.dynamics/internal/save"
	"github.com/louisbranch/personnel.dynamics/internal/storage"
)

const rosterVersion = 1

type rosterDocument struct {
	Version            int                `json:"version"`
	Date               time.Time          `json:"date"`
	Faction            string             `json:"faction"`
	Location           roster.Location    `json:"location"`
	Reputation         int                `json:"reputation,omitempty"`
	UnitRatingModifier int                `json:"unit_rating_modifier,omitempty"`
	Standings          map[string]float64 `json:"standings,omitempty"`
	People             []*roster.Person   `json:"people"`
	Units              []*roster.Unit     `json:"units,omitempty"`
	Missions           []*roster.Mission  `json:"missions,omitempty"`
	Balance            decimal.Decimal    `json:"balance"`
	Ledger             []LedgerEntry      `json:"ledger,omitempty"`
}

// Snapshot encodes the campaign into a save record with the market,
// turnover and roster sections.
func (h *Host) Snapshot() (storage.SaveRecord, error) {
	marketSection, err := save.EncodeMarket(h.market.State())
	if err != nil {
		return storage.SaveRecord{}, err
	}
	turnoverSection, err := save.EncodeTracker(h.tracker.State())
	if err != nil {
		return storage.SaveRecord{}, err
	}
	c := h.campaign
	rosterSection, err := json.Marshal(rosterDocument{
		Version:            rosterVersion,
		Date:               c.Today(),
		Faction:            c.FactionCode(),
		Location:           c.Location(),
		Reputation:         c.Rep,
		UnitRatingModifier: c.RatingMod,
		Standings:          c.Standings,
		People:             c.Personnel(),
		Units:              c.Units(),
		Missions:           c.Missions(),
		Balance:            h.ledger.Balance(),
		Ledger:             h.ledger.Entries(),
	})
	if err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeSaveEncode, "encode roster", err)
	}
	return storage.SaveRecord{
		CampaignID: h.id,
		Sections: map[string][]byte{
			storage.SectionMarket:   marketSection,
			storage.SectionTurnover: turnoverSection,
			storage.SectionRoster:   rosterSection,
		},
	}, nil
}

// Restore replaces the campaign with a saved one. The roster section is
// required; broken market or turnover sections fall back to their defaults.
// Turnover entries of people missing from the roster are dropped.
func (h *Host) Restore(record storage.SaveRecord) error {
	data := record.Sections[storage.SectionRoster]
	if len(data) == 0 {
		return apperrors.New(apperrors.CodeSaveDecode, "roster section is missing")
	}
	var doc rosterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(apperrors.CodeSaveDecode, "decode roster", err)
	}
	if doc.Version > rosterVersion {
		return apperrors.Newf(apperrors.CodeSaveDecode, "unsupported roster version %d", doc.Version)
	}

	c := roster.NewMemory(doc.Date, doc.Faction, doc.Location)
	c.Rep = doc.Reputation
	c.RatingMod = doc.UnitRatingModifier
	for code, regard := range doc.Standings {
		c.Standings[code] = regard
	}
	for _, p := range doc.People {
		if !c.AddPerson(p) {
			h.logf("restore: skip person without a unique id")
		}
	}
	for _, u := range doc.Units {
		c.PutUnit(u)
	}
	for _, m := range doc.Missions {
		c.PutMission(m)
	}

	marketState, _ := save.DecodeMarket(record.Sections[storage.SectionMarket], h.logf)
	trackerState, _ := save.DecodeTracker(record.Sections[storage.SectionTurnover], h.logf)

	h.campaign = c
	h.ledger = &Ledger{balance: doc.Balance, entries: doc.Ledger}
	if record.CampaignID != "" {
		h.id = record.CampaignID
	}
	h.market.Restore(marketState)
	h.tracker.Restore(trackerState)
	h.tracker.CleanupOrphans(c)
	h.anchorAnnualRoll()
	return nil
}

// Save writes the campaign to store and returns the stored record.
func (h *Host) Save(ctx context.Context, store storage.SaveStore) (storage.SaveRecord, error) {
	record, err := h.Snapshot()
	if err != nil {
		return storage.SaveRecord{}, err
	}
	return store.PutSave(ctx, record)
}

// Load restores the campaign saved under campaignID. It returns
// storage.ErrNotFound when there is no save.
func (h *Host) Load(ctx context.Context, store storage.SaveStore, campaignID string) error {
	record, err := store.GetSave(ctx, campaignID)
	if err != nil {
		return err
	}
	return h.Restore(record)
}
