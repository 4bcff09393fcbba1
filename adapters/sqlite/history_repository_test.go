package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"edakit/domain/core"
	"edakit/domain/eda"
	"edakit/internal/errors"
	"edakit/ports"
)

func openTestRepository(t *testing.T) ports.HistoryRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewHistoryRepository(db)
}

func testRecord(filename string, score float64, createdAt time.Time) *ports.AnalysisRecord {
	return &ports.AnalysisRecord{
		ID:       core.NewAnalysisID(),
		Filename: filename,
		Rows:     100,
		Cols:     5,
		Score:    score,
		Flags: eda.QualityResult{
			Score:      score,
			TooFewRows: score < 0.9,
			Triggered:  []string{},
		},
		CreatedAt: core.NewTimestamp(createdAt),
	}
}

func TestRecordAndListRecent(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	record := testRecord("users.csv", 0.85, time.Now())
	if err := repo.Record(ctx, record); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	records, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	got := records[0]
	if got.ID != record.ID {
		t.Errorf("id = %s, want %s", got.ID, record.ID)
	}
	if got.Filename != "users.csv" || got.Rows != 100 || got.Cols != 5 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Score != 0.85 {
		t.Errorf("score = %f, want 0.85", got.Score)
	}
	if !got.Flags.TooFewRows {
		t.Error("flags should survive the round trip")
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first.csv", "second.csv", "third.csv"} {
		record := testRecord(name, 0.5, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Record(ctx, record); err != nil {
			t.Fatalf("record %s failed: %v", name, err)
		}
	}

	records, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Filename != "third.csv" || records[1].Filename != "second.csv" {
		t.Errorf("wrong order: %s, %s", records[0].Filename, records[1].Filename)
	}
}

func TestListRecentEmpty(t *testing.T) {
	repo := openTestRepository(t)

	records, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want none", len(records))
	}
}

func TestRecordOnClosedDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	db.Close()
	repo := NewHistoryRepository(db)

	err = repo.Record(context.Background(), testRecord("late.csv", 0.5, time.Now()))
	if err == nil {
		t.Fatal("expected an error on a closed database")
	}
	if errors.GetCode(err) != errors.CodeDatabaseError {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeDatabaseError)
	}
}

func TestRecordDuplicateID(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	record := testRecord("dup.csv", 0.7, time.Now())
	if err := repo.Record(ctx, record); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := repo.Record(ctx, record); err == nil {
		t.Error("re-inserting the same id should violate the primary key")
	}
}
