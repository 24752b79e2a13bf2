package service

import (
	"strings"

	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"
)

// QRCodeService 收款二维码管理服务
type QRCodeService struct {
	qrCodeRepo repository.QRCodeRepository
}

// NewQRCodeService 创建收款二维码服务
func NewQRCodeService(qrCodeRepo repository.QRCodeRepository) *QRCodeService {
	return &QRCodeService{qrCodeRepo: qrCodeRepo}
}

// QRCodeInput 二维码创建/更新入参
type QRCodeInput struct {
	Name        string `json:"name"`
	QRCodeImage string `json:"qr_code_image"`
	UPIID       string `json:"upi_id"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

// Create 创建二维码
func (s *QRCodeService) Create(input QRCodeInput) (*models.PaymentQRCode, error) {
	name := strings.TrimSpace(input.Name)
	image := strings.TrimSpace(input.QRCodeImage)
	if name == "" || image == "" {
		return nil, ErrQRCodeInvalid
	}

	qrCode := &models.PaymentQRCode{
		Name:        name,
		QRCodeImage: image,
		UPIID:       strings.TrimSpace(input.UPIID),
		IsActive:    true,
	}
	if input.IsActive != nil {
		qrCode.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		qrCode.SortOrder = *input.SortOrder
	}

	if err := s.qrCodeRepo.Create(qrCode); err != nil {
		return nil, err
	}
	logger.Infow("payment_qr_code_created", "qr_code_id", qrCode.ID, "name", qrCode.Name)
	return qrCode, nil
}

// Update 更新二维码
func (s *QRCodeService) Update(id uint, input QRCodeInput) (*models.PaymentQRCode, error) {
	qrCode, err := s.qrCodeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qrCode == nil {
		return nil, ErrQRCodeNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		qrCode.Name = name
	}
	if image := strings.TrimSpace(input.QRCodeImage); image != "" {
		qrCode.QRCodeImage = image
	}
	if upi := strings.TrimSpace(input.UPIID); upi != "" {
		qrCode.UPIID = upi
	}
	if input.IsActive != nil {
		qrCode.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		qrCode.SortOrder = *input.SortOrder
	}

	if err := s.qrCodeRepo.Update(qrCode); err != nil {
		return nil, err
	}
	logger.Infow("payment_qr_code_updated", "qr_code_id", qrCode.ID)
	return qrCode, nil
}

// Delete 删除二维码
func (s *QRCodeService) Delete(id uint) error {
	qrCode, err := s.qrCodeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if qrCode == nil {
		return ErrQRCodeNotFound
	}
	if err := s.qrCodeRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("payment_qr_code_deleted", "qr_code_id", id)
	return nil
}

// Get 获取二维码
func (s *QRCodeService) Get(id uint) (*models.PaymentQRCode, error) {
	qrCode, err := s.qrCodeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qrCode == nil {
		return nil, ErrQRCodeNotFound
	}
	return qrCode, nil
}

// List 二维码列表（管理端）
func (s *QRCodeService) List(filter repository.QRCodeListFilter) ([]models.PaymentQRCode, int64, error) {
	return s.qrCodeRepo.List(filter)
}

// ListActive 启用中的二维码（用户支付页）
func (s *QRCodeService) ListActive() ([]models.PaymentQRCode, error) {
	return s.qrCodeRepo.ListActive()
}
