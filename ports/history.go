package ports

import (
	"context"

	"edakit/domain/core"
	"edakit/domain/eda"
)

// AnalysisRecord is one persisted dataset analysis
type AnalysisRecord struct {
	ID        core.AnalysisID   `json:"id" db:"id"`
	Filename  string            `json:"filename" db:"filename"`
	Rows      int               `json:"rows" db:"rows"`
	Cols      int               `json:"cols" db:"cols"`
	Score     float64           `json:"score" db:"score"`
	Flags     eda.QualityResult `json:"flags" db:"-"`
	CreatedAt core.Timestamp    `json:"created_at" db:"created_at"`
}

// HistoryRepository persists analysis runs for the service's /history view
type HistoryRepository interface {
	Record(ctx context.Context, record *AnalysisRecord) error
	ListRecent(ctx context.Context, limit int) ([]*AnalysisRecord, error)
}
