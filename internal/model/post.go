package model

import "time"

// Post 内容主体
type Post struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
    Content   string    `gorm:"type:text;not null"`
    CreatedAt time.Time `gorm:"index:idx_post_created"`
    UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }

// PostLike 点赞（每个用户对一条内容最多一条）
type PostLike struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    PostID    string    `gorm:"type:varchar(36);index:idx_like_post;index:idx_like_pair,unique;not null"`
    UserID    string    `gorm:"type:varchar(36);not null;index:idx_like_pair,unique"`
    // idx_like_pair = (post_id, user_id)
    CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }

// PostComment 评论，按创建时间排序，只追加
type PostComment struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null"`
    AuthorID  string    `gorm:"type:varchar(36);not null"`
    Content   string    `gorm:"type:text;not null"`
    CreatedAt time.Time `gorm:"index:idx_comment_post_created"`
}

func (PostComment) TableName() string { return "post_comments" }
