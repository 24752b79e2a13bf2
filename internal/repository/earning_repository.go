package repository

import (
	"errors"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

// EarningRepository 推荐奖励数据访问接口
type EarningRepository interface {
	WithTx(tx *gorm.DB) EarningRepository

	GetByReferredUserID(referredUserID uint) (*models.ReferralEarning, error)
	Create(earning *models.ReferralEarning) error
	List(filter EarningListFilter) ([]models.ReferralEarning, int64, error)
	SumByUser(userID uint, from, to *time.Time) (decimal.Decimal, error)
	SumAll() (decimal.Decimal, error)
	CountByUser(userID uint) (int64, error)
}

// GormEarningRepository GORM 推荐奖励仓储
type GormEarningRepository struct {
	db *gorm.DB
}

// NewEarningRepository 创建推荐奖励仓储
func NewEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEarningRepository) WithTx(tx *gorm.DB) EarningRepository {
	if tx == nil {
		return r
	}
	return &GormEarningRepository{db: tx}
}

// GetByReferredUserID 按被推荐用户获取奖励记录
func (r *GormEarningRepository) GetByReferredUserID(referredUserID uint) (*models.ReferralEarning, error) {
	if referredUserID == 0 {
		return nil, nil
	}
	var earning models.ReferralEarning
	if err := r.db.Where("referred_user_id = ?", referredUserID).First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &earning, nil
}

// Create 创建奖励记录
func (r *GormEarningRepository) Create(earning *models.ReferralEarning) error {
	return r.db.Create(earning).Error
}

// List 奖励记录列表
func (r *GormEarningRepository) List(filter EarningListFilter) ([]models.ReferralEarning, int64, error) {
	query := r.db.Model(&models.ReferralEarning{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.EarnedFrom != nil {
		query = query.Where("earned_at >= ?", *filter.EarnedFrom)
	}
	if filter.EarnedTo != nil {
		query = query.Where("earned_at < ?", *filter.EarnedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var earnings []models.ReferralEarning
	if err := query.Preload("ReferredUser").Order("earned_at DESC").Find(&earnings).Error; err != nil {
		return nil, 0, err
	}
	return earnings, total, nil
}

// SumByUser 汇总用户在时间窗口内的奖励金额（from、to 均含）
func (r *GormEarningRepository) SumByUser(userID uint, from, to *time.Time) (decimal.Decimal, error) {
	if userID == 0 {
		return decimal.Zero, nil
	}
	query := r.db.Model(&models.ReferralEarning{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("earned_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("earned_at <= ?", *to)
	}
	var sum decimal.Decimal
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// SumAll 汇总全平台奖励金额
func (r *GormEarningRepository) SumAll() (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.Model(&models.ReferralEarning{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountByUser 统计用户奖励记录数
func (r *GormEarningRepository) CountByUser(userID uint) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.Model(&models.ReferralEarning{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
