package service

import (
	"time"

	"github.com/vinverse/gamerlink/internal/model"
)

// UserProfile 公开档案视图
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	GamerTag string `json:"gamer_tag"`
	Rank     string `json:"rank"`
	Verified bool   `json:"verified"`
	VinID    string `json:"vin_id"`
	XPPoints int    `json:"xp_points"`
	IsOnline bool   `json:"is_online"`
}

func NewUserProfile(u *model.User) UserProfile {
	return UserProfile{
		ID:       u.ID,
		Username: u.Username,
		GamerTag: u.GamerTag,
		Rank:     u.Rank,
		Verified: u.Verified,
		VinID:    u.VinID,
		XPPoints: u.XPPoints,
		IsOnline: u.IsOnline,
	}
}

// PostView feed 条目：内容 + 作者 + 互动计数
type PostView struct {
	ID           string      `json:"id"`
	Author       UserProfile `json:"author"`
	Content      string      `json:"content"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	Liked        bool        `json:"liked"`
	CreatedAt    time.Time   `json:"created_at"`
}

// CommentView 评论视图
type CommentView struct {
	ID        string      `json:"id"`
	Author    UserProfile `json:"author"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// MessageView 频道消息视图
type MessageView struct {
	ID        string      `json:"id"`
	Room      string      `json:"room"`
	Author    UserProfile `json:"author"`
	Content   string      `json:"content"`
	Edited    bool        `json:"edited"`
	CreatedAt time.Time   `json:"created_at"`
}
