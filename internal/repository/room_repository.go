package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinverse/gamerlink/internal/model"
)

// RoomFilter 频道列表过滤条件
type RoomFilter struct {
	RoomType string
	Game     string
}

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByName(ctx context.Context, name string) (*model.Room, error)
	ListActive(ctx context.Context, filter RoomFilter) ([]*model.Room, error)
	ListDefault(ctx context.Context) ([]*model.Room, error)
	AddMember(ctx context.Context, roomID, userID string) error
	IsMember(ctx context.Context, roomID, userID string) (bool, error)

	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, roomID string, limit int) ([]*model.Message, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository { return &roomRepository{db: db} }

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) GetByName(ctx context.Context, name string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).
		Where("name = ? AND active = ?", name, true).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListActive(ctx context.Context, filter RoomFilter) ([]*model.Room, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	if filter.Game != "" {
		q = q.Where(`LOWER(game) LIKE ? ESCAPE '\'`, contains(filter.Game))
	}
	var rooms []*model.Room
	err := q.Order("room_type, display_name").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) ListDefault(ctx context.Context) ([]*model.Room, error) {
	var rooms []*model.Room
	err := r.db.WithContext(ctx).
		Where("active = ? AND room_type IN ?", true, []model.RoomType{model.RoomGlobal, model.RoomGame}).
		Order("room_type, display_name").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) AddMember(ctx context.Context, roomID, userID string) error {
	m := &model.RoomMember{ID: uuid.New().String(), RoomID: roomID, UserID: userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

func (r *roomRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *roomRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListMessages 返回最近 limit 条，按时间正序
func (r *roomRepository) ListMessages(ctx context.Context, roomID string, limit int) ([]*model.Message, error) {
	var msgs []*model.Message
	q := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
