package model

import "time"

// LFTPost 找队广告（Looking For Team）
type LFTPost struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string `gorm:"type:varchar(36);index:idx_lft_author;not null"`
	Game      string `gorm:"type:varchar(100);index"`
	GameID    string `gorm:"type:varchar(100)"`
	Rank      string `gorm:"type:varchar(100)"`
	Region    string `gorm:"type:varchar(50)"`
	PlayStyle string `gorm:"type:varchar(50)"`
	Message   string `gorm:"type:text"`
	Active    bool   `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LFTPost) TableName() string { return "lft_posts" }
