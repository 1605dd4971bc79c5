package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
)

// ErrNotFound indicates a requested save is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "save not found")

// Section names of a campaign save.
const (
	SectionMarket   = "market"
	SectionTurnover = "turnover"
	SectionRoster   = "roster"
)

// SaveRecord is one campaign save: encoded sections keyed by name.
type SaveRecord struct {
	CampaignID string
	// Revision increases by one on every write.
	Revision  int64
	Sections  map[string][]byte
	UpdatedAt time.Time
}

// SaveStore persists campaign saves. Put writes every section of a record
// or none of them.
type SaveStore interface {
	PutSave(ctx context.Context, record SaveRecord) (SaveRecord, error)
	GetSave(ctx context.Context, campaignID string) (SaveRecord, error)
	DeleteSave(ctx context.Context, campaignID string) error
}
