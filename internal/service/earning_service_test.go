package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupEarningServiceTest(t *testing.T) (*EarningService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:earning_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ReferralEarning{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	earningRepo := repository.NewEarningRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewEarningService(earningRepo, userRepo), db
}

func createTestEarning(t *testing.T, db *gorm.DB, userID, referredUserID uint, amount int64, earnedAt time.Time) {
	t.Helper()
	earning := models.ReferralEarning{
		UserID:         userID,
		ReferredUserID: referredUserID,
		Amount:         models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		EarnedAt:       earnedAt,
	}
	if err := db.Create(&earning).Error; err != nil {
		t.Fatalf("create earning failed: %v", err)
	}
}

func TestEarningStatsWindows(t *testing.T) {
	svc, db := setupEarningServiceTest(t)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 最近 24 小时内
	createTestEarning(t, db, 1, 10, 2000, now.Add(-10*time.Hour))
	// 本周内但非当日：3 天前
	createTestEarning(t, db, 1, 11, 2000, now.AddDate(0, 0, -3))
	// 超出 7 天窗口：10 天前
	createTestEarning(t, db, 1, 12, 2000, now.AddDate(0, 0, -10))
	// 其他用户的奖励不计入
	createTestEarning(t, db, 2, 13, 2000, now.Add(-time.Hour))

	stats, err := svc.StatsAt(1, now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Daily.String() != "2000.00" {
		t.Fatalf("daily want 2000.00 got %s", stats.Daily.String())
	}
	if stats.Weekly.String() != "4000.00" {
		t.Fatalf("weekly want 4000.00 got %s", stats.Weekly.String())
	}
	if stats.Lifetime.String() != "6000.00" {
		t.Fatalf("lifetime want 6000.00 got %s", stats.Lifetime.String())
	}
}

func TestEarningStatsWindowBoundaries(t *testing.T) {
	svc, db := setupEarningServiceTest(t)

	// 02:00 为基准，滚动窗口不受日历日边界影响
	now := time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC)

	// 前一日历日 23:00，仍在最近 24 小时内
	createTestEarning(t, db, 1, 20, 2000, now.Add(-3*time.Hour))
	// 上下界均为闭区间
	createTestEarning(t, db, 1, 21, 2000, now)
	createTestEarning(t, db, 1, 22, 2000, now.Add(-24*time.Hour))
	// 刚好落在 24 小时窗口之外，仅计入本周
	createTestEarning(t, db, 1, 23, 2000, now.Add(-24*time.Hour-time.Second))

	stats, err := svc.StatsAt(1, now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Daily.String() != "6000.00" {
		t.Fatalf("daily want 6000.00 got %s", stats.Daily.String())
	}
	if stats.Weekly.String() != "8000.00" {
		t.Fatalf("weekly want 8000.00 got %s", stats.Weekly.String())
	}
	if stats.Lifetime.String() != "8000.00" {
		t.Fatalf("lifetime want 8000.00 got %s", stats.Lifetime.String())
	}
}

func TestEarningStatsEmpty(t *testing.T) {
	svc, _ := setupEarningServiceTest(t)

	stats, err := svc.StatsAt(1, time.Now())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Lifetime.String() != "0.00" {
		t.Fatalf("lifetime want 0.00 got %s", stats.Lifetime.String())
	}

	if _, err := svc.StatsAt(0, time.Now()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("zero user want ErrUserNotFound got %v", err)
	}
}

func TestEarningSummary(t *testing.T) {
	svc, db := setupEarningServiceTest(t)

	referrerID := uint(1)
	users := []models.User{
		{ID: 1, Username: "referrer", PasswordHash: "hash", ReferralCode: "REFCODE00001"},
		{ID: 2, Username: "ref_a", PasswordHash: "hash", ReferralCode: "REFCODE00002", ReferredBy: &referrerID},
		{ID: 3, Username: "ref_b", PasswordHash: "hash", ReferralCode: "REFCODE00003", ReferredBy: &referrerID},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}
	// 两个下级中只有一个已激活产生奖励
	createTestEarning(t, db, 1, 2, 2000, time.Now().Add(-time.Hour))

	summary, err := svc.Summary(1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.ReferralCount != 2 {
		t.Fatalf("referral count want 2 got %d", summary.ReferralCount)
	}
	if summary.EarningCount != 1 {
		t.Fatalf("earning count want 1 got %d", summary.EarningCount)
	}
	if summary.TotalEarnings.String() != "2000.00" {
		t.Fatalf("total earnings want 2000.00 got %s", summary.TotalEarnings.String())
	}
}
