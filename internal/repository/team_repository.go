package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinverse/gamerlink/internal/model"
)

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	List(ctx context.Context) ([]*model.Team, error)
	// AddMember set 语义：重复加入静默忽略
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	CountMembers(ctx context.Context, teamID string) (int64, error)
	ListMemberIDs(ctx context.Context, teamID string) ([]string, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository { return &teamRepository{db: db} }

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var t model.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) List(ctx context.Context) ([]*model.Team, error) {
	var teams []*model.Team
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&teams).Error
	return teams, err
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	m := &model.TeamMember{ID: uuid.New().String(), TeamID: teamID, UserID: userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{}).Error
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *teamRepository) CountMembers(ctx context.Context, teamID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&cnt).Error
	return cnt, err
}

func (r *teamRepository) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ?", teamID).
		Pluck("user_id", &ids).Error
	return ids, err
}
