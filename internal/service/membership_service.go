package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/cache"
	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/queue"
	"github.com/anup1414/AffiliateEngine/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MembershipService 会员购买与审核服务
type MembershipService struct {
	membershipRepo repository.MembershipRepository
	earningRepo    repository.EarningRepository
	userRepo       repository.UserRepository
	pricing        *PricingService
	queueClient    *queue.Client
	rewardAmount   decimal.Decimal
}

// NewMembershipService 创建会员服务
func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	earningRepo repository.EarningRepository,
	userRepo repository.UserRepository,
	pricing *PricingService,
	queueClient *queue.Client,
	rewardAmount float64,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		earningRepo:    earningRepo,
		userRepo:       userRepo,
		pricing:        pricing,
		queueClient:    queueClient,
		rewardAmount:   decimal.NewFromFloat(rewardAmount),
	}
}

// Purchase 提交会员购买，生成待审核记录
func (s *MembershipService) Purchase(userID uint, couponCode, paymentRef string) (*models.Membership, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.membershipRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMembershipExists
	}

	// 未识别的优惠码按原价处理，不拒绝购买
	quote := s.pricing.ResolvePrice(couponCode)

	membership := &models.Membership{
		UserID:        userID,
		OriginalPrice: quote.OriginalPrice,
		PaidPrice:     quote.FinalPrice,
		CouponUsed:    quote.CouponCode,
		Status:        constants.MembershipStatusPending,
		PaymentRef:    strings.TrimSpace(paymentRef),
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrMembershipExists
		}
		return nil, err
	}

	logger.Infow("membership_submitted",
		"user_id", userID,
		"membership_id", membership.ID,
		"paid_price", membership.PaidPrice.String(),
		"coupon", membership.CouponUsed,
	)
	return membership, nil
}

// Confirm 审核通过：pending -> active，并为推荐人记账
func (s *MembershipService) Confirm(userID uint, now time.Time) (*models.Membership, error) {
	var membership *models.Membership
	var referrerID *uint

	err := s.membershipRepo.Transaction(func(tx *gorm.DB) error {
		membershipRepo := s.membershipRepo.WithTx(tx)

		rows, err := membershipRepo.TransitionFromPending(userID, constants.MembershipStatusActive, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			existing, err := membershipRepo.GetByUserID(userID)
			if err != nil {
				return err
			}
			if existing == nil {
				return ErrMembershipNotFound
			}
			return ErrInvalidTransition
		}

		current, err := membershipRepo.GetByUserID(userID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrMembershipNotFound
		}
		membership = current

		refID, err := s.recordReferralEarning(tx, userID, now)
		if err != nil {
			return err
		}
		referrerID = refID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterActivation(membership, referrerID)
	return membership, nil
}

// Reject 审核拒绝：pending -> rejected
func (s *MembershipService) Reject(userID uint, now time.Time) (*models.Membership, error) {
	rows, err := s.membershipRepo.TransitionFromPending(userID, constants.MembershipStatusRejected, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		existing, err := s.membershipRepo.GetByUserID(userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrMembershipNotFound
		}
		return nil, ErrInvalidTransition
	}

	membership, err := s.membershipRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	logger.Infow("membership_rejected", "user_id", userID)
	if membership != nil {
		if err := s.queueClient.EnqueueMembershipRejected(queue.MembershipRejectedPayload{
			UserID:       userID,
			MembershipID: membership.ID,
		}); err != nil {
			logger.Warnw("membership_rejected_enqueue_failed", "user_id", userID, "error", err)
		}
	}
	return membership, nil
}

// SetStatus 管理员直接设置会员状态；迁移到 active 时同样触发推荐记账
func (s *MembershipService) SetStatus(userID uint, status string, now time.Time) (*models.Membership, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !constants.IsValidMembershipStatus(normalized) {
		return nil, ErrInvalidStatus
	}

	var membership *models.Membership
	var referrerID *uint

	err := s.membershipRepo.Transaction(func(tx *gorm.DB) error {
		membershipRepo := s.membershipRepo.WithTx(tx)

		rows, err := membershipRepo.UpdateStatus(userID, normalized, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrMembershipNotFound
		}

		current, err := membershipRepo.GetByUserID(userID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrMembershipNotFound
		}
		membership = current

		if normalized == constants.MembershipStatusActive {
			refID, err := s.recordReferralEarning(tx, userID, now)
			if err != nil {
				return err
			}
			referrerID = refID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("membership_status_set", "user_id", userID, "status", normalized)
	if normalized == constants.MembershipStatusActive {
		s.afterActivation(membership, referrerID)
	}
	return membership, nil
}

// GetByUserID 获取用户会员记录
func (s *MembershipService) GetByUserID(userID uint) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrMembershipNotFound
	}
	return membership, nil
}

// List 会员记录列表
func (s *MembershipService) List(filter repository.MembershipListFilter) ([]models.Membership, int64, error) {
	return s.membershipRepo.List(filter)
}

// recordReferralEarning 为推荐人创建奖励记录；事务内先查重，唯一索引兜底并发
func (s *MembershipService) recordReferralEarning(tx *gorm.DB, userID uint, now time.Time) (*uint, error) {
	user, err := s.userRepo.WithTx(tx).GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	// 无推荐人或自荐不记账
	if user.ReferredBy == nil || *user.ReferredBy == userID {
		return nil, nil
	}

	existing, err := s.earningRepo.WithTx(tx).GetByReferredUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Infow("referral_earning_already_recorded",
			"referrer_id", *user.ReferredBy,
			"referred_user_id", userID,
		)
		return user.ReferredBy, nil
	}

	earning := &models.ReferralEarning{
		UserID:         *user.ReferredBy,
		ReferredUserID: userID,
		Amount:         models.NewMoneyFromDecimal(s.rewardAmount),
		EarnedAt:       now,
	}
	// 并发竞争由唯一索引兜底，违反约束时整个事务回滚
	if err := s.earningRepo.WithTx(tx).Create(earning); err != nil {
		return nil, err
	}

	logger.Infow("referral_earning_recorded",
		"referrer_id", *user.ReferredBy,
		"referred_user_id", userID,
		"amount", earning.Amount.String(),
	)
	return user.ReferredBy, nil
}

func (s *MembershipService) afterActivation(membership *models.Membership, referrerID *uint) {
	if membership == nil {
		return
	}

	logger.Infow("membership_activated",
		"user_id", membership.UserID,
		"membership_id", membership.ID,
	)

	if err := s.queueClient.EnqueueMembershipActivated(queue.MembershipActivatedPayload{
		UserID:         membership.UserID,
		MembershipID:   membership.ID,
		ReferrerUserID: referrerID,
	}); err != nil {
		logger.Warnw("membership_activated_enqueue_failed",
			"user_id", membership.UserID,
			"error", err,
		)
	}

	ctx := context.Background()
	if err := cache.Del(ctx, constants.CacheKeyPlatformStats); err != nil {
		logger.Warnw("platform_stats_cache_invalidate_failed", "error", err)
	}
	if referrerID != nil {
		key := fmt.Sprintf(constants.CacheKeyEarningsStats, *referrerID)
		if err := cache.Del(ctx, key); err != nil {
			logger.Warnw("earnings_stats_cache_invalidate_failed", "user_id", *referrerID, "error", err)
		}
	}
}
