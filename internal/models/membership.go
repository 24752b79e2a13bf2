package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership 会员购买记录（每个用户至多一条）
type Membership struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                       // 主键
	UserID        uint           `gorm:"not null;uniqueIndex" json:"user_id"`                        // 购买用户ID
	OriginalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 原价
	PaidPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"paid_price"`     // 实付金额
	CouponUsed    string         `gorm:"type:varchar(64)" json:"coupon_used"`                        // 使用的优惠码（已归一化大写）
	Status        string         `gorm:"type:varchar(32);not null;index" json:"status"`              // 会员状态
	PaymentRef    string         `gorm:"type:varchar(255)" json:"payment_ref"`                       // 支付凭证/交易号
	ReviewedAt    *time.Time     `gorm:"index" json:"reviewed_at,omitempty"`                         // 审核时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 购买用户
}

// TableName 指定表名
func (Membership) TableName() string {
	return "memberships"
}
