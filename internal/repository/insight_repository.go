package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinverse/gamerlink/internal/model"
)

type InsightRepository interface {
	// GetOrCreate 同一 (user, tournament) 只保留一条记录
	GetOrCreate(ctx context.Context, userID, tournamentID string) (*model.MatchInsight, bool, error)
	MarkProcessing(ctx context.Context, id string) error
	Complete(ctx context.Context, id, summary string) error
	Fail(ctx context.Context, id, errMsg string) error
	GetByID(ctx context.Context, id string) (*model.MatchInsight, error)
	ListByUser(ctx context.Context, userID string) ([]*model.MatchInsight, error)
}

type insightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository { return &insightRepository{db: db} }

func (r *insightRepository) GetOrCreate(ctx context.Context, userID, tournamentID string) (*model.MatchInsight, bool, error) {
	in := &model.MatchInsight{
		ID:           uuid.New().String(),
		UserID:       userID,
		TournamentID: tournamentID,
		Status:       model.InsightStatusPending,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(in)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return in, true, nil
	}
	var existing model.MatchInsight
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *insightRepository) MarkProcessing(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.MatchInsight{}).
		Where("id = ?", id).
		Update("status", model.InsightStatusProcessing).Error
}

func (r *insightRepository) Complete(ctx context.Context, id, summary string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.MatchInsight{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       model.InsightStatusCompleted,
			"summary":      summary,
			"generated_at": &now,
		}).Error
}

func (r *insightRepository) Fail(ctx context.Context, id, errMsg string) error {
	return r.db.WithContext(ctx).
		Model(&model.MatchInsight{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        model.InsightStatusFailed,
			"error_message": errMsg,
		}).Error
}

func (r *insightRepository) GetByID(ctx context.Context, id string) (*model.MatchInsight, error) {
	var in model.MatchInsight
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&in).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *insightRepository) ListByUser(ctx context.Context, userID string) ([]*model.MatchInsight, error) {
	var ins []*model.MatchInsight
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ins).Error
	return ins, err
}
