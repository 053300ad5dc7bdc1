package model

import "time"

// MatchInsight AI 战报，异步生成
type MatchInsight struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	UserID       string `gorm:"type:varchar(36);index:idx_insight_user;index:idx_insight_pair,unique;not null"`
	TournamentID string `gorm:"type:varchar(36);not null;index:idx_insight_pair,unique"`
	Status       string `gorm:"type:varchar(16);index;default:'pending'"`
	Summary      string `gorm:"type:text"`
	ErrorMessage string `gorm:"type:text"`
	GeneratedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (MatchInsight) TableName() string { return "match_insights" }

// MatchInsight 状态常量
const (
	InsightStatusPending    = "pending"
	InsightStatusProcessing = "processing"
	InsightStatusCompleted  = "completed"
	InsightStatusFailed     = "failed"
)
