package service

import (
	"context"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/cache"
	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"
)

const platformStatsCacheTTL = 60 * time.Second

// AdminService 管理端聚合服务
type AdminService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	earningRepo    repository.EarningRepository
}

// NewAdminService 创建管理端服务
func NewAdminService(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	earningRepo repository.EarningRepository,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		earningRepo:    earningRepo,
	}
}

// SetUserApproval 设置用户审核状态，重复设置视为成功
func (s *AdminService) SetUserApproval(userID uint, approved bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	rows, err := s.userRepo.SetApproved(userID, approved, time.Now())
	if err != nil {
		return nil, err
	}
	if rows > 0 {
		user.IsApproved = approved
		logger.Infow("user_approval_set", "user_id", userID, "approved", approved)
	}
	return user, nil
}

// UserDetail 管理端用户视图
type UserDetail struct {
	User             models.User  `json:"user"`
	MembershipStatus string       `json:"membership_status"` // 无记录时为空串
	ReferralCount    int64        `json:"referral_count"`
	TotalEarnings    models.Money `json:"total_earnings"`
}

// ListUsersWithDetail 带会员状态与推荐数据的用户列表
func (s *AdminService) ListUsersWithDetail(filter repository.UserListFilter) ([]UserDetail, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	details := make([]UserDetail, 0, len(users))
	for _, user := range users {
		detail := UserDetail{User: user}

		membership, err := s.membershipRepo.GetByUserID(user.ID)
		if err != nil {
			return nil, 0, err
		}
		if membership != nil {
			detail.MembershipStatus = membership.Status
		}

		referralCount, err := s.userRepo.CountReferredBy(user.ID)
		if err != nil {
			return nil, 0, err
		}
		detail.ReferralCount = referralCount

		totalEarnings, err := s.earningRepo.SumByUser(user.ID, nil, nil)
		if err != nil {
			return nil, 0, err
		}
		detail.TotalEarnings = models.NewMoneyFromDecimal(totalEarnings)

		details = append(details, detail)
	}
	return details, total, nil
}

// PlatformStats 平台统计
type PlatformStats struct {
	TotalUsers         int64        `json:"total_users"`
	ApprovedUsers      int64        `json:"approved_users"`
	PendingMemberships int64        `json:"pending_memberships"`
	ActiveMemberships  int64        `json:"active_memberships"`
	TotalEarningsPaid  models.Money `json:"total_earnings_paid"`
}

// Stats 平台统计，优先读缓存
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	var cached PlatformStats
	hit, err := cache.GetJSON(ctx, constants.CacheKeyPlatformStats, &cached)
	if err != nil {
		logger.Warnw("platform_stats_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	stats, err := s.computeStats()
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, constants.CacheKeyPlatformStats, stats, platformStatsCacheTTL); err != nil {
		logger.Warnw("platform_stats_cache_write_failed", "error", err)
	}
	return stats, nil
}

func (s *AdminService) computeStats() (*PlatformStats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	approvedUsers, err := s.userRepo.CountApproved()
	if err != nil {
		return nil, err
	}
	pending, err := s.membershipRepo.CountByStatus(constants.MembershipStatusPending)
	if err != nil {
		return nil, err
	}
	active, err := s.membershipRepo.CountByStatus(constants.MembershipStatusActive)
	if err != nil {
		return nil, err
	}
	totalEarnings, err := s.earningRepo.SumAll()
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:         totalUsers,
		ApprovedUsers:      approvedUsers,
		PendingMemberships: pending,
		ActiveMemberships:  active,
		TotalEarningsPaid:  models.NewMoneyFromDecimal(totalEarnings),
	}, nil
}
