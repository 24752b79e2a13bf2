package models

import (
	"time"

	"gorm.io/gorm"
)

// ReferralEarning 推荐奖励记录（每个被推荐用户至多产生一条）
type ReferralEarning struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                // 主键
	UserID         uint           `gorm:"not null;index" json:"user_id"`                       // 奖励归属用户（推荐人）
	ReferredUserID uint           `gorm:"not null;uniqueIndex" json:"referred_user_id"`        // 被推荐用户
	Amount         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 奖励金额
	EarnedAt       time.Time      `gorm:"not null;index" json:"earned_at"`                     // 奖励产生时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	User         User `gorm:"foreignKey:UserID" json:"user,omitempty"`                   // 推荐人
	ReferredUser User `gorm:"foreignKey:ReferredUserID" json:"referred_user,omitempty"` // 被推荐用户
}

// TableName 指定表名
func (ReferralEarning) TableName() string {
	return "referral_earnings"
}
