package repository

import (
	"errors"

	"github.com/anup1414/AffiliateEngine/internal/models"

	"gorm.io/gorm"
)

// QRCodeRepository 收款二维码数据访问接口
type QRCodeRepository interface {
	GetByID(id uint) (*models.PaymentQRCode, error)
	Create(qrCode *models.PaymentQRCode) error
	Update(qrCode *models.PaymentQRCode) error
	Delete(id uint) error
	List(filter QRCodeListFilter) ([]models.PaymentQRCode, int64, error)
	ListActive() ([]models.PaymentQRCode, error)
}

// GormQRCodeRepository GORM 收款二维码仓储
type GormQRCodeRepository struct {
	db *gorm.DB
}

// NewQRCodeRepository 创建收款二维码仓储
func NewQRCodeRepository(db *gorm.DB) *GormQRCodeRepository {
	return &GormQRCodeRepository{db: db}
}

// GetByID 按ID获取二维码
func (r *GormQRCodeRepository) GetByID(id uint) (*models.PaymentQRCode, error) {
	if id == 0 {
		return nil, nil
	}
	var qrCode models.PaymentQRCode
	if err := r.db.First(&qrCode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &qrCode, nil
}

// Create 创建二维码
func (r *GormQRCodeRepository) Create(qrCode *models.PaymentQRCode) error {
	return r.db.Create(qrCode).Error
}

// Update 更新二维码
func (r *GormQRCodeRepository) Update(qrCode *models.PaymentQRCode) error {
	return r.db.Save(qrCode).Error
}

// Delete 删除二维码（软删除）
func (r *GormQRCodeRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.PaymentQRCode{}, id).Error
}

// List 二维码列表
func (r *GormQRCodeRepository) List(filter QRCodeListFilter) ([]models.PaymentQRCode, int64, error) {
	query := r.db.Model(&models.PaymentQRCode{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR upi_id LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var qrCodes []models.PaymentQRCode
	if err := query.Order("sort_order ASC, id ASC").Find(&qrCodes).Error; err != nil {
		return nil, 0, err
	}
	return qrCodes, total, nil
}

// ListActive 启用中的二维码列表
func (r *GormQRCodeRepository) ListActive() ([]models.PaymentQRCode, error) {
	var qrCodes []models.PaymentQRCode
	if err := r.db.Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&qrCodes).Error; err != nil {
		return nil, err
	}
	return qrCodes, nil
}
