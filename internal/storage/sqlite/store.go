// Package sqlite provides the SQLite-backed campaign save store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/personnel.dynamics/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/personnel.dynamics/internal/storage"
	"github.com/louisbranch/personnel.dynamics/internal/storage/sqlite/migrations"
)

// Store provides SQLite-backed campaign save persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a save store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, apperrors.New(apperrors.CodeStorage, "storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "open sqlite db", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorage, "ping sqlite db", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorage, "run migrations", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSave replaces the save of a campaign in one transaction and returns the
// stored record with its new revision. Empty sections are not stored.
func (s *Store) PutSave(ctx context.Context, record storage.SaveRecord) (storage.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SaveRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SaveRecord{}, apperrors.New(apperrors.CodeStorage, "storage is not configured")
	}
	record.CampaignID = strings.TrimSpace(record.CampaignID)
	if record.CampaignID == "" {
		return storage.SaveRecord{}, apperrors.New(apperrors.CodeStorage, "campaign id is required")
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = s.now()
	}
	record.UpdatedAt = record.UpdatedAt.UTC()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	var revision int64
	err = tx.QueryRowContext(ctx, `SELECT revision FROM campaign_saves WHERE campaign_id = ?`, record.CampaignID).Scan(&revision)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "read revision", err)
	}
	record.Revision = revision + 1

	if _, err := tx.ExecContext(ctx, `
INSERT INTO campaign_saves (campaign_id, revision, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (campaign_id) DO UPDATE SET
	revision = excluded.revision,
	updated_at = excluded.updated_at
`,
		record.CampaignID,
		record.Revision,
		record.UpdatedAt.UnixMilli(),
	); err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "write save", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_save_sections WHERE campaign_id = ?`, record.CampaignID); err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "clear sections", err)
	}
	for _, name := range slices.Sorted(maps.Keys(record.Sections)) {
		if len(record.Sections[name]) == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO campaign_save_sections (campaign_id, section, body)
VALUES (?, ?, ?)
`,
			record.CampaignID,
			name,
			record.Sections[name],
		); err != nil {
			return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("write section %s", name), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "commit save", err)
	}
	return record, nil
}

// GetSave loads the save of a campaign.
func (s *Store) GetSave(ctx context.Context, campaignID string) (storage.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SaveRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SaveRecord{}, apperrors.New(apperrors.CodeStorage, "storage is not configured")
	}
	campaignID = strings.TrimSpace(campaignID)

	record := storage.SaveRecord{CampaignID: campaignID, Sections: map[string][]byte{}}
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT revision, updated_at FROM campaign_saves WHERE campaign_id = ?
`, campaignID).Scan(&record.Revision, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.SaveRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "read save", err)
	}
	record.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT section, body FROM campaign_save_sections WHERE campaign_id = ? ORDER BY section
`, campaignID)
	if err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "list sections", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name string
			body []byte
		)
		if err := rows.Scan(&name, &body); err != nil {
			return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "scan section", err)
		}
		record.Sections[name] = body
	}
	if err := rows.Err(); err != nil {
		return storage.SaveRecord{}, apperrors.Wrap(apperrors.CodeStorage, "iterate sections", err)
	}
	return record, nil
}

// DeleteSave removes the save of a campaign. Missing saves are not an error.
func (s *Store) DeleteSave(ctx context.Context, campaignID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return apperrors.New(apperrors.CodeStorage, "storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM campaign_saves WHERE campaign_id = ?`, strings.TrimSpace(campaignID)); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "delete save", err)
	}
	return nil
}

var _ storage.SaveStore = (*Store)(nil)
