package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentQRCode 收款二维码配置
type PaymentQRCode struct {
	ID          uint           `gorm:"primarykey" json:"id"`                    // 主键
	Name        string         `gorm:"type:varchar(128);not null" json:"name"`  // 展示名称
	QRCodeImage string         `gorm:"not null" json:"qr_code_image"`           // 二维码图片地址
	UPIID       string         `gorm:"type:varchar(128)" json:"upi_id"`         // UPI 收款账号
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`  // 是否启用
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`    // 排序值（越小越靠前）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                 // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (PaymentQRCode) TableName() string {
	return "payment_qr_codes"
}
