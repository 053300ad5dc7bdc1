package model

import "time"

// Team 战队，成员上限在加入时校验
type Team struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Game        string `gorm:"type:varchar(100)"`
	Description string `gorm:"type:text"`
	MaxMembers  int    `gorm:"not null;default:5"`
	CreatedByID string `gorm:"type:varchar(36);index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Team) TableName() string { return "teams" }

// TeamMember 战队成员（set 语义，重复加入无效果）
type TeamMember struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	TeamID    string `gorm:"type:varchar(36);index:idx_member_team;index:idx_member_pair,unique;not null"`
	UserID    string `gorm:"type:varchar(36);not null;index:idx_member_pair,unique"`
	CreatedAt time.Time
}

func (TeamMember) TableName() string { return "team_members" }
