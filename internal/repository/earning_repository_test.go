package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupEarningRepositoryTest(t *testing.T) (*GormEarningRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:earning_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return NewEarningRepository(db), db
}

func newEarning(userID, referredUserID uint, amount int64, earnedAt time.Time) *models.ReferralEarning {
	return &models.ReferralEarning{
		UserID:         userID,
		ReferredUserID: referredUserID,
		Amount:         models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		EarnedAt:       earnedAt,
	}
}

func TestEarningUniquePerReferredUser(t *testing.T) {
	repo, _ := setupEarningRepositoryTest(t)
	now := time.Now()

	if err := repo.Create(newEarning(1, 2, 2000, now)); err != nil {
		t.Fatalf("create earning failed: %v", err)
	}

	err := repo.Create(newEarning(1, 2, 2000, now))
	if err == nil {
		t.Fatalf("duplicate referred_user_id should fail")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// 同一推荐人的其他下级不受影响
	if err := repo.Create(newEarning(1, 3, 2000, now)); err != nil {
		t.Fatalf("create second earning failed: %v", err)
	}
}

func TestSumByUserWindow(t *testing.T) {
	repo, _ := setupEarningRepositoryTest(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if err := repo.Create(newEarning(1, 2, 2000, now.Add(-time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newEarning(1, 3, 2000, now.AddDate(0, 0, -9))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newEarning(9, 4, 2000, now.Add(-time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// 窗口上界为闭区间
	if err := repo.Create(newEarning(1, 5, 2000, now)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	from := now.AddDate(0, 0, -7)
	sum, err := repo.SumByUser(1, &from, &now)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("windowed sum want 4000 got %s", sum.String())
	}

	lifetime, err := repo.SumByUser(1, nil, nil)
	if err != nil {
		t.Fatalf("lifetime sum failed: %v", err)
	}
	if !lifetime.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("lifetime sum want 6000 got %s", lifetime.String())
	}

	empty, err := repo.SumByUser(42, nil, nil)
	if err != nil {
		t.Fatalf("empty sum failed: %v", err)
	}
	if !empty.Equal(decimal.Zero) {
		t.Fatalf("empty sum want 0 got %s", empty.String())
	}
}

func TestEarningListOrderedByEarnedAt(t *testing.T) {
	repo, _ := setupEarningRepositoryTest(t)
	now := time.Now()

	if err := repo.Create(newEarning(1, 2, 2000, now.Add(-2*time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newEarning(1, 3, 2000, now.Add(-time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	earnings, total, err := repo.List(EarningListFilter{Page: 1, PageSize: 10, UserID: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(earnings) != 2 {
		t.Fatalf("list want 2 got total=%d len=%d", total, len(earnings))
	}
	if earnings[0].ReferredUserID != 3 {
		t.Fatalf("newest earning should come first, got referred_user_id=%d", earnings[0].ReferredUserID)
	}
}
