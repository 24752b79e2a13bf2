package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`                      // 主键
	Username       string         `gorm:"uniqueIndex;not null" json:"username"`      // 登录名
	PasswordHash   string         `gorm:"not null" json:"-"`                         // 密码哈希（不返回给前端）
	ReferralCode   string         `gorm:"uniqueIndex;not null" json:"referral_code"` // 本人推荐码
	ReferredBy     *uint          `gorm:"index" json:"referred_by,omitempty"`        // 推荐人用户ID
	IsApproved     bool           `gorm:"not null;default:false" json:"is_approved"` // 管理员是否已审核
	IsAdmin        bool           `gorm:"not null;default:false" json:"is_admin"`    // 管理员标记
	ProfilePicture string         `gorm:"size:255" json:"profile_picture"`           // 头像地址
	LastLoginAt    *time.Time     `json:"last_login_at"`                             // 最后登录时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                   // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间

	Referrer *User `gorm:"foreignKey:ReferredBy" json:"referrer,omitempty"` // 推荐人
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
