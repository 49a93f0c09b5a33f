package model

import "time"

const (
	TableNameGenerationLog     = "generation_logs"
	TableNameGenerationAttempt = "generation_attempts"
)

type GenerationLog struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	Feature    string    `gorm:"column:feature;not null" json:"feature"`
	DataSource string    `gorm:"column:data_source;not null" json:"data_source"`
	DurationMS int64     `gorm:"column:duration_ms;not null" json:"duration_ms"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (*GenerationLog) TableName() string {
	return TableNameGenerationLog
}

type GenerationAttempt struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	GenerationID string `gorm:"column:generation_id;not null" json:"generation_id"`
	Position     int32  `gorm:"column:position;not null" json:"position"`
	Backend      string `gorm:"column:backend;not null" json:"backend"`
	DataSource   string `gorm:"column:data_source;not null" json:"data_source"`
	Error        string `gorm:"column:error;not null" json:"error"`
	DurationMS   int64  `gorm:"column:duration_ms;not null" json:"duration_ms"`
}

func (*GenerationAttempt) TableName() string {
	return TableNameGenerationAttempt
}
