package model

import "time"

// NotificationType 通知类型（闭集）
type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationPost    NotificationType = "post"
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
)

// Notification 站内通知，一条事件对应一个接收者
type Notification struct {
	ID            string           `gorm:"primaryKey;type:varchar(36)"`
	UserID        string           `gorm:"type:varchar(36);index:idx_notif_user;not null"`
	Type          NotificationType `gorm:"type:varchar(20);index:idx_notif_user_type;not null"`
	RelatedUserID string           `gorm:"type:varchar(36);index"`
	Title         string           `gorm:"type:varchar(100)"`
	Message       string           `gorm:"type:text"`
	RelatedURL    string           `gorm:"type:varchar(200)"`
	Read          bool             `gorm:"default:false;index"`
	CreatedAt     time.Time        `gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
