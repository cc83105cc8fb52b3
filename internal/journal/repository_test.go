package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ngmaloney/coral-terminal/internal/models"
)

func TestRepository_RecordAndListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(filepath.Join(t.TempDir(), "journal.db"))

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"C1", "C2", "C3"} {
		rec := &models.UploadRecord{
			CoralInternalID: id,
			DiveSite:        "Blue Hole",
			Filename:        id + ".jpg",
			Message:         "Upload successful",
			UploadedAt:      base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record(%s) error = %v", id, err)
		}
		if rec.ID == 0 {
			t.Errorf("Record(%s) did not set ID", id)
		}
	}

	got, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}

	var ids []string
	for _, r := range got {
		ids = append(ids, r.CoralInternalID)
	}
	if diff := cmp.Diff([]string{"C3", "C2"}, ids); diff != "" {
		t.Errorf("ListRecent() ids mismatch (-want +got):\n%s", diff)
	}
	if !got[0].UploadedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("UploadedAt = %v, want %v", got[0].UploadedAt, base.Add(2*time.Hour))
	}
	if got[0].Filename != "C3.jpg" || got[0].DiveSite != "Blue Hole" {
		t.Errorf("unexpected record: %+v", got[0])
	}
}

func TestRepository_ListRecentEmpty(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "journal.db"))

	got, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestRepository_RecordSetsTimestamp(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "journal.db"))

	rec := &models.UploadRecord{CoralInternalID: "C7", DiveSite: "Reef"}
	before := time.Now()
	if err := repo.Record(context.Background(), rec); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec.UploadedAt.Before(before) {
		t.Errorf("UploadedAt = %v, want >= %v", rec.UploadedAt, before)
	}
}
