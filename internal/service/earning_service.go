package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/cache"
	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"
)

const earningsStatsCacheTTL = 60 * time.Second

// EarningsStats 推荐奖励统计
type EarningsStats struct {
	Daily    models.Money `json:"daily"`    // 当日（自然日）
	Weekly   models.Money `json:"weekly"`   // 最近 7 天
	Lifetime models.Money `json:"lifetime"` // 累计
}

// EarningService 推荐奖励查询服务
type EarningService struct {
	earningRepo repository.EarningRepository
	userRepo    repository.UserRepository
}

// NewEarningService 创建推荐奖励查询服务
func NewEarningService(earningRepo repository.EarningRepository, userRepo repository.UserRepository) *EarningService {
	return &EarningService{
		earningRepo: earningRepo,
		userRepo:    userRepo,
	}
}

// Stats 以当前时间统计奖励，优先读缓存
func (s *EarningService) Stats(ctx context.Context, userID uint) (*EarningsStats, error) {
	key := fmt.Sprintf(constants.CacheKeyEarningsStats, userID)

	var cached EarningsStats
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("earnings_stats_cache_read_failed", "user_id", userID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	stats, err := s.StatsAt(userID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, key, stats, earningsStatsCacheTTL); err != nil {
		logger.Warnw("earnings_stats_cache_write_failed", "user_id", userID, "error", err)
	}
	return stats, nil
}

// StatsAt 以给定时间点统计奖励（当日、最近 7 天、累计）
func (s *EarningService) StatsAt(userID uint, now time.Time) (*EarningsStats, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}

	// 滚动窗口：当日 = 最近 24 小时，区间两端均含
	dayStart := now.Add(-24 * time.Hour)
	weekStart := now.AddDate(0, 0, -7)
	upperBound := now

	daily, err := s.earningRepo.SumByUser(userID, &dayStart, &upperBound)
	if err != nil {
		return nil, err
	}
	weekly, err := s.earningRepo.SumByUser(userID, &weekStart, &upperBound)
	if err != nil {
		return nil, err
	}
	lifetime, err := s.earningRepo.SumByUser(userID, nil, nil)
	if err != nil {
		return nil, err
	}

	return &EarningsStats{
		Daily:    models.NewMoneyFromDecimal(daily),
		Weekly:   models.NewMoneyFromDecimal(weekly),
		Lifetime: models.NewMoneyFromDecimal(lifetime),
	}, nil
}

// List 奖励明细列表
func (s *EarningService) List(filter repository.EarningListFilter) ([]models.ReferralEarning, int64, error) {
	return s.earningRepo.List(filter)
}

// ReferralSummary 推荐概况
type ReferralSummary struct {
	ReferralCount int64        `json:"referral_count"` // 名下注册人数
	EarningCount  int64        `json:"earning_count"`  // 产生奖励的人数
	TotalEarnings models.Money `json:"total_earnings"` // 累计奖励
}

// Summary 用户推荐概况
func (s *EarningService) Summary(userID uint) (*ReferralSummary, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}

	referralCount, err := s.userRepo.CountReferredBy(userID)
	if err != nil {
		return nil, err
	}
	earningCount, err := s.earningRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	total, err := s.earningRepo.SumByUser(userID, nil, nil)
	if err != nil {
		return nil, err
	}

	return &ReferralSummary{
		ReferralCount: referralCount,
		EarningCount:  earningCount,
		TotalEarnings: models.NewMoneyFromDecimal(total),
	}, nil
}
