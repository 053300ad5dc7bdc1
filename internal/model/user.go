package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户主体（esports 档案字段冗余在主表，读多写少）
type User struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	Username string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email    string `gorm:"type:varchar(254);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(128);not null"`

	Bio      string `gorm:"type:text"`
	Rank     string `gorm:"type:varchar(100)"`
	GamerTag string `gorm:"type:varchar(50)"`
	Verified bool   `gorm:"default:false"`
	// VinID 平台唯一编号，格式 VIN-0000001
	VinID    string `gorm:"type:varchar(20);uniqueIndex"`
	XPPoints int    `gorm:"default:0"`
	IsOnline bool   `gorm:"default:false"`
	LastSeen time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

// SetPassword hashes and stores the plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
