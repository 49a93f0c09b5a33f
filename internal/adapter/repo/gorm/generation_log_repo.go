package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hipstertrail/internal/adapter/repo/gorm/model"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/domain/trail"
)

type GenerationLogRepo struct {
	db *gorm.DB
	tx ports.TxManager
}

func NewGenerationLogRepo(db *gorm.DB) GenerationLogRepo {
	return GenerationLogRepo{db: db, tx: NewTxManager(db)}
}

func (r GenerationLogRepo) Save(ctx context.Context, record ports.GenerationRecord) error {
	return r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := getDBFromCtx(txCtx, r.db)
		row := model.GenerationLog{
			ID:         record.ID,
			Feature:    record.Feature,
			DataSource: string(record.DataSource),
			DurationMS: record.DurationMS,
			CreatedAt:  record.CreatedAt,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		if len(record.Attempts) == 0 {
			return nil
		}
		attempts := make([]model.GenerationAttempt, 0, len(record.Attempts))
		for i, a := range record.Attempts {
			attempts = append(attempts, model.GenerationAttempt{
				GenerationID: record.ID,
				Position:     int32(i),
				Backend:      a.Backend,
				DataSource:   a.Source,
				Error:        a.Error,
				DurationMS:   a.Duration,
			})
		}
		return db.Create(&attempts).Error
	})
}

// ListRecent returns the newest records first. An empty feature lists all.
func (r GenerationLogRepo) ListRecent(ctx context.Context, feature string, limit int) ([]ports.GenerationRecord, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	rows := []model.GenerationLog{}
	query := db.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}, Desc: true}},
	})
	if feature != "" {
		query = query.Where(&model.GenerationLog{Feature: feature})
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	attemptRows := []model.GenerationAttempt{}
	if err := db.Where("generation_id IN ?", ids).Order("generation_id, position").Find(&attemptRows).Error; err != nil {
		return nil, err
	}
	byGeneration := make(map[string][]ports.TierAttempt, len(rows))
	for _, a := range attemptRows {
		byGeneration[a.GenerationID] = append(byGeneration[a.GenerationID], ports.TierAttempt{
			Backend:  a.Backend,
			Source:   a.DataSource,
			Error:    a.Error,
			Duration: a.DurationMS,
		})
	}

	out := make([]ports.GenerationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.GenerationRecord{
			ID:         row.ID,
			Feature:    row.Feature,
			DataSource: trail.DataSource(row.DataSource),
			Attempts:   byGeneration[row.ID],
			DurationMS: row.DurationMS,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}
