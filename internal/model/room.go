package model

import "time"

// RoomType 频道类型
type RoomType string

const (
	RoomGlobal  RoomType = "global"
	RoomGame    RoomType = "game"
	RoomTeam    RoomType = "team"
	RoomPrivate RoomType = "private"
)

// Room 聊天频道。访问控制只看 room_type：
// global/game 公开，team 按战队成员，private 按成员表或创建者。
type Room struct {
	ID          string   `gorm:"primaryKey;type:varchar(36)"`
	Name        string   `gorm:"type:varchar(200);uniqueIndex;not null"`
	DisplayName string   `gorm:"type:varchar(200);not null"`
	RoomType    RoomType `gorm:"type:varchar(20);index;default:'global'"`
	Game        string   `gorm:"type:varchar(100)"`
	TeamID      *string  `gorm:"type:varchar(36);index"`
	Description string   `gorm:"type:text"`
	CreatedByID *string  `gorm:"type:varchar(36)"`
	Active      bool     `gorm:"default:true;index"`
	CreatedAt   time.Time
}

func (Room) TableName() string { return "rooms" }

// RoomMember 私有频道成员
type RoomMember struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	RoomID    string `gorm:"type:varchar(36);index:idx_room_member_room;index:idx_room_member_pair,unique;not null"`
	UserID    string `gorm:"type:varchar(36);not null;index:idx_room_member_pair,unique"`
	CreatedAt time.Time
}

func (RoomMember) TableName() string { return "room_members" }

// Message 频道消息，频道内按创建时间排序
type Message struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	RoomID    string    `gorm:"type:varchar(36);index:idx_message_room_created;not null"`
	AuthorID  string    `gorm:"type:varchar(36);not null"`
	Content   string    `gorm:"type:varchar(1000);not null"`
	Edited    bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"index:idx_message_room_created"`
	UpdatedAt time.Time
}

func (Message) TableName() string { return "messages" }
