// Package sqlite persists analysis history in an embedded database. The
// service records one row per processed dataset and serves them back on
// /history; nothing in the engine depends on this store.
package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"edakit/domain/core"
	"edakit/domain/eda"
	"edakit/internal/errors"
	"edakit/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	rows       INTEGER NOT NULL,
	cols       INTEGER NOT NULL,
	score      REAL NOT NULL,
	flags      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// historyRepository implements ports.HistoryRepository on sqlite
type historyRepository struct {
	db *sqlx.DB
}

// Open connects to the sqlite file at path (":memory:" for tests) and
// ensures the schema exists.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError("failed to open history database"), err.Error())
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.DatabaseError("failed to create history schema"), err.Error())
	}
	return db, nil
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

// Record inserts one analysis run
func (r *historyRepository) Record(ctx context.Context, record *ports.AnalysisRecord) error {
	flagsJSON, err := json.Marshal(record.Flags)
	if err != nil {
		return errors.Wrap(errors.InternalError("failed to marshal flags"), err.Error())
	}

	query := `INSERT INTO analyses (id, filename, rows, cols, score, flags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		record.ID.String(), record.Filename, record.Rows, record.Cols,
		record.Score, string(flagsJSON), record.CreatedAt.Time(),
	)
	if err != nil {
		return errors.Wrap(errors.DatabaseError("failed to record analysis"), err.Error())
	}
	return nil
}

// ListRecent returns up to limit analyses, newest first
func (r *historyRepository) ListRecent(ctx context.Context, limit int) ([]*ports.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, filename, rows, cols, score, flags, created_at
		FROM analyses ORDER BY created_at DESC, id DESC LIMIT ?`
	dbRows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError("failed to list analyses"), err.Error())
	}
	defer dbRows.Close()

	var records []*ports.AnalysisRecord
	for dbRows.Next() {
		var (
			record    ports.AnalysisRecord
			id        string
			flagsJSON string
			createdAt time.Time
		)
		if err := dbRows.Scan(&id, &record.Filename, &record.Rows, &record.Cols,
			&record.Score, &flagsJSON, &createdAt); err != nil {
			return nil, errors.Wrap(errors.DatabaseError("failed to scan analysis row"), err.Error())
		}
		record.ID = core.AnalysisID(id)
		record.CreatedAt = core.NewTimestamp(createdAt)

		var flags eda.QualityResult
		if err := json.Unmarshal([]byte(flagsJSON), &flags); err != nil {
			return nil, errors.Wrap(errors.InternalError("failed to unmarshal flags"), err.Error())
		}
		record.Flags = flags
		records = append(records, &record)
	}
	return records, dbRows.Err()
}
