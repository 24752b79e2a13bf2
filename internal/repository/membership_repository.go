package repository

import (
	"errors"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/models"

	"gorm.io/gorm"
)

// MembershipRepository 会员记录数据访问接口
type MembershipRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) MembershipRepository

	GetByID(id uint) (*models.Membership, error)
	GetByUserID(userID uint) (*models.Membership, error)
	Create(membership *models.Membership) error
	Update(membership *models.Membership) error
	List(filter MembershipListFilter) ([]models.Membership, int64, error)
	TransitionFromPending(userID uint, toStatus string, reviewedAt time.Time) (int64, error)
	UpdateStatus(userID uint, toStatus string, reviewedAt time.Time) (int64, error)
	CountByStatus(status string) (int64, error)
}

// GormMembershipRepository GORM 会员记录仓储
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository 创建会员记录仓储
func NewMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMembershipRepository) WithTx(tx *gorm.DB) MembershipRepository {
	if tx == nil {
		return r
	}
	return &GormMembershipRepository{db: tx}
}

// Transaction 执行事务
func (r *GormMembershipRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取会员记录
func (r *GormMembershipRepository) GetByID(id uint) (*models.Membership, error) {
	if id == 0 {
		return nil, nil
	}
	var membership models.Membership
	if err := r.db.Preload("User").First(&membership, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// GetByUserID 按用户ID获取会员记录
func (r *GormMembershipRepository) GetByUserID(userID uint) (*models.Membership, error) {
	if userID == 0 {
		return nil, nil
	}
	var membership models.Membership
	if err := r.db.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// Create 创建会员记录
func (r *GormMembershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

// Update 更新会员记录
func (r *GormMembershipRepository) Update(membership *models.Membership) error {
	return r.db.Save(membership).Error
}

// List 会员记录列表
func (r *GormMembershipRepository) List(filter MembershipListFilter) ([]models.Membership, int64, error) {
	query := r.db.Model(&models.Membership{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var memberships []models.Membership
	if err := query.Preload("User").Order("id DESC").Find(&memberships).Error; err != nil {
		return nil, 0, err
	}
	return memberships, total, nil
}

// TransitionFromPending 仅当记录处于待审核态时迁移状态，返回影响行数
func (r *GormMembershipRepository) TransitionFromPending(userID uint, toStatus string, reviewedAt time.Time) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Membership{}).
		Where("user_id = ? AND status = ?", userID, constants.MembershipStatusPending).
		Updates(map[string]interface{}{
			"status":      toStatus,
			"reviewed_at": reviewedAt,
			"updated_at":  reviewedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateStatus 无条件迁移状态（管理员直接设置），返回影响行数
func (r *GormMembershipRepository) UpdateStatus(userID uint, toStatus string, reviewedAt time.Time) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Membership{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":      toStatus,
			"reviewed_at": reviewedAt,
			"updated_at":  reviewedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByStatus 按状态统计会员记录数
func (r *GormMembershipRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Membership{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
