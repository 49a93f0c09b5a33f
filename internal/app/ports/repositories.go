package ports

import (
	"context"
	"time"

	"hipstertrail/internal/domain/trail"
)

type TierAttempt struct {
	Backend  string `json:"backend"`
	Source   string `json:"source"`
	Error    string `json:"error,omitempty"`
	Duration int64  `json:"duration_ms"`
}

// GenerationRecord is the diagnostic trace of one resolved chain.
type GenerationRecord struct {
	ID         string           `json:"id"`
	Feature    string           `json:"feature"`
	DataSource trail.DataSource `json:"data_source"`
	Attempts   []TierAttempt    `json:"attempts"`
	DurationMS int64            `json:"duration_ms"`
	CreatedAt  time.Time        `json:"created_at"`
}

type GenerationLogRepository interface {
	Save(ctx context.Context, record GenerationRecord) error
	ListRecent(ctx context.Context, feature string, limit int) ([]GenerationRecord, error)
}
