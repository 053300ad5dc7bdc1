package service

import (
	"context"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

// TeamView 战队视图，带当前成员数
type TeamView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Game        string `json:"game"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members"`
	MemberCount int64  `json:"member_count"`
	CreatedByID string `json:"created_by"`
}

// TeamService 战队成员管理：入队校验上限，退队无条件
type TeamService interface {
	Create(ctx context.Context, creatorID, name, game, description string, maxMembers int) (*model.Team, error)
	List(ctx context.Context) ([]TeamView, error)
	Join(ctx context.Context, teamID, userID string) error
	Leave(ctx context.Context, teamID, userID string) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) TeamService {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo}
}

func (s *teamService) Create(ctx context.Context, creatorID, name, game, description string, maxMembers int) (*model.Team, error) {
	if maxMembers <= 0 {
		maxMembers = 5
	}
	team := &model.Team{
		Name:        name,
		Game:        game,
		Description: description,
		MaxMembers:  maxMembers,
		CreatedByID: creatorID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	// 创建者自动入队
	if err := s.teamRepo.AddMember(ctx, team.ID, creatorID); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]TeamView, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]TeamView, 0, len(teams))
	for _, t := range teams {
		cnt, err := s.teamRepo.CountMembers(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, TeamView{
			ID:          t.ID,
			Name:        t.Name,
			Game:        t.Game,
			Description: t.Description,
			MaxMembers:  t.MaxMembers,
			MemberCount: cnt,
			CreatedByID: t.CreatedByID,
		})
	}
	return views, nil
}

func (s *teamService) Join(ctx context.Context, teamID, userID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return asNotFound(err, "team")
	}
	// 已是成员时重复加入是 no-op，不触发满员校验
	isMember, err := s.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return nil
	}
	cnt, err := s.teamRepo.CountMembers(ctx, teamID)
	if err != nil {
		return err
	}
	if cnt >= int64(team.MaxMembers) {
		return ErrTeamFull
	}
	return s.teamRepo.AddMember(ctx, teamID, userID)
}

func (s *teamService) Leave(ctx context.Context, teamID, userID string) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return asNotFound(err, "team")
	}
	// 非成员也算成功
	return s.teamRepo.RemoveMember(ctx, teamID, userID)
}

func (s *teamService) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	return s.teamRepo.IsMember(ctx, teamID, userID)
}
