// Package journal keeps a local record of uploads submitted from this client.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ngmaloney/coral-terminal/internal/database"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

// Store is the journal surface the UI depends on
type Store interface {
	Record(ctx context.Context, rec *models.UploadRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.UploadRecord, error)
}

// Repository handles persistence for the upload journal
type Repository struct {
	dbPath string
}

// NewRepository creates a journal repository backed by the sqlite file at dbPath
func NewRepository(dbPath string) *Repository {
	return &Repository{dbPath: dbPath}
}

// Record appends an upload to the journal and sets its ID
func (r *Repository) Record(ctx context.Context, rec *models.UploadRecord) error {
	if err := database.EnsureSchema(r.dbPath); err != nil {
		return err
	}

	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO uploads (coral_internal_id, dive_site, filename, message, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		rec.CoralInternalID,
		rec.DiveSite,
		rec.Filename,
		rec.Message,
		rec.UploadedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	rec.ID = id

	return nil
}

// ListRecent returns up to limit uploads, newest first
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	if err := database.EnsureSchema(r.dbPath); err != nil {
		return nil, err
	}

	db, err := database.Open(r.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, coral_internal_id, dive_site, filename, message, uploaded_at
		 FROM uploads ORDER BY uploaded_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	var records []models.UploadRecord
	for rows.Next() {
		var rec models.UploadRecord
		var filename, message sql.NullString

		if err := rows.Scan(&rec.ID, &rec.CoralInternalID, &rec.DiveSite, &filename, &message, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning upload: %w", err)
		}
		rec.Filename = filename.String
		rec.Message = message.String
		records = append(records, rec)
	}

	return records, rows.Err()
}
