package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
	"github.com/vinverse/gamerlink/pkg/logger"
)

// RoomPublisher 消息落库后的实时投递通道
type RoomPublisher interface {
	Publish(ctx context.Context, room string, msg MessageView) error
}

// RoomView 频道视图
type RoomView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	RoomType    model.RoomType `json:"room_type"`
	Game        string         `json:"game,omitempty"`
	Description string         `json:"description,omitempty"`
}

// ChatService 频道访问控制与消息读写
type ChatService interface {
	// CanAccess global/game 全开放；team 按战队成员；private 按成员表或创建者
	CanAccess(ctx context.Context, room *model.Room, userID string) (bool, error)
	CreateRoom(ctx context.Context, creatorID, name, displayName, game, description string, roomType model.RoomType, teamID string) (*model.Room, error)
	ListRooms(ctx context.Context, userID string, filter repository.RoomFilter) ([]RoomView, error)
	DefaultRooms(ctx context.Context) ([]RoomView, error)
	// CanJoin websocket 入口用：按频道名做一次访问判定
	CanJoin(ctx context.Context, roomName, userID string) (bool, error)
	// ListMessages 频道不存在或无权访问时返回空列表而非错误
	ListMessages(ctx context.Context, roomName, viewerID string, limit int) ([]MessageView, error)
	PostMessage(ctx context.Context, roomName, authorID, content string) (*MessageView, error)
}

type chatService struct {
	roomRepo  repository.RoomRepository
	teamRepo  repository.TeamRepository
	userRepo  repository.UserRepository
	publisher RoomPublisher
}

func NewChatService(roomRepo repository.RoomRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository, publisher RoomPublisher) ChatService {
	return &chatService{roomRepo: roomRepo, teamRepo: teamRepo, userRepo: userRepo, publisher: publisher}
}

func (s *chatService) CanAccess(ctx context.Context, room *model.Room, userID string) (bool, error) {
	switch room.RoomType {
	case model.RoomGlobal, model.RoomGame:
		return true, nil
	case model.RoomTeam:
		if room.TeamID == nil {
			return false, nil
		}
		return s.teamRepo.IsMember(ctx, *room.TeamID, userID)
	case model.RoomPrivate:
		if room.CreatedByID != nil && *room.CreatedByID == userID {
			return true, nil
		}
		return s.roomRepo.IsMember(ctx, room.ID, userID)
	default:
		return false, nil
	}
}

func (s *chatService) CreateRoom(ctx context.Context, creatorID, name, displayName, game, description string, roomType model.RoomType, teamID string) (*model.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContent
	}
	room := &model.Room{
		Name:        name,
		DisplayName: displayName,
		RoomType:    roomType,
		Game:        game,
		Description: description,
		CreatedByID: &creatorID,
		Active:      true,
	}
	if roomType == model.RoomTeam {
		if teamID == "" {
			return nil, ErrEmptyContent
		}
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return nil, asNotFound(err, "team")
		}
		room.TeamID = &teamID
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	// 私有频道创建者进成员表
	if roomType == model.RoomPrivate {
		if err := s.roomRepo.AddMember(ctx, room.ID, creatorID); err != nil {
			return nil, err
		}
	}
	return room, nil
}

func (s *chatService) ListRooms(ctx context.Context, userID string, filter repository.RoomFilter) ([]RoomView, error) {
	rooms, err := s.roomRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		ok, err := s.CanAccess(ctx, room, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		views = append(views, newRoomView(room))
	}
	return views, nil
}

func (s *chatService) DefaultRooms(ctx context.Context) ([]RoomView, error) {
	rooms, err := s.roomRepo.ListDefault(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, newRoomView(room))
	}
	return views, nil
}

func (s *chatService) CanJoin(ctx context.Context, roomName, userID string) (bool, error) {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.CanAccess(ctx, room, userID)
}

func (s *chatService) ListMessages(ctx context.Context, roomName, viewerID string, limit int) ([]MessageView, error) {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []MessageView{}, nil
		}
		return nil, err
	}
	ok, err := s.CanAccess(ctx, room, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []MessageView{}, nil
	}

	msgs, err := s.roomRepo.ListMessages(ctx, room.ID, limit)
	if err != nil {
		return nil, err
	}
	return s.messageViews(ctx, room, msgs)
}

func (s *chatService) PostMessage(ctx context.Context, roomName, authorID, content string) (*MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return nil, asNotFound(err, "room")
	}
	ok, err := s.CanAccess(ctx, room, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}

	msg := &model.Message{RoomID: room.ID, AuthorID: authorID, Content: content}
	if err := s.roomRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	view := MessageView{
		ID:        msg.ID,
		Room:      room.Name,
		Author:    NewUserProfile(author),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	// 实时投递是旁路，失败只记日志
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, room.Name, view); err != nil {
			logger.Warn("message publish failed", zap.String("room", room.Name), zap.Error(err))
		}
	}
	return &view, nil
}

func (s *chatService) messageViews(ctx context.Context, room *model.Room, msgs []*model.Message) ([]MessageView, error) {
	authorIDs := make([]string, 0, len(msgs))
	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.AuthorID]; !ok {
			seen[m.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, m.AuthorID)
		}
	}
	authors, err := s.userRepo.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		author, ok := byID[m.AuthorID]
		if !ok {
			continue
		}
		views = append(views, MessageView{
			ID:        m.ID,
			Room:      room.Name,
			Author:    NewUserProfile(author),
			Content:   m.Content,
			Edited:    m.Edited,
			CreatedAt: m.CreatedAt,
		})
	}
	return views, nil
}

func newRoomView(room *model.Room) RoomView {
	return RoomView{
		ID:          room.ID,
		Name:        room.Name,
		DisplayName: room.DisplayName,
		RoomType:    room.RoomType,
		Game:        room.Game,
		Description: room.Description,
	}
}
