package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMembershipRepositoryTest(t *testing.T) (*GormMembershipRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:membership_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Membership{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewMembershipRepository(db), db
}

func createPendingMembership(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	membership := models.Membership{
		UserID:        userID,
		OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
		PaidPrice:     models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
		Status:        constants.MembershipStatusPending,
	}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("create membership failed: %v", err)
	}
}

func TestTransitionFromPending(t *testing.T) {
	repo, db := setupMembershipRepositoryTest(t)
	createPendingMembership(t, db, 1)

	now := time.Now()
	rows, err := repo.TransitionFromPending(1, constants.MembershipStatusActive, now)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows want 1 got %d", rows)
	}

	membership, err := repo.GetByUserID(1)
	if err != nil {
		t.Fatalf("get membership failed: %v", err)
	}
	if membership.Status != constants.MembershipStatusActive {
		t.Fatalf("status want active got %s", membership.Status)
	}
	if membership.ReviewedAt == nil {
		t.Fatalf("reviewed_at should be set")
	}

	// 已离开 pending 态后迁移不再生效
	rows, err = repo.TransitionFromPending(1, constants.MembershipStatusRejected, now)
	if err != nil {
		t.Fatalf("second transition failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows want 0 got %d", rows)
	}

	// 不存在的用户
	rows, err = repo.TransitionFromPending(404, constants.MembershipStatusActive, now)
	if err != nil {
		t.Fatalf("transition missing failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("missing membership rows want 0 got %d", rows)
	}
}

func TestUpdateStatusUnconditional(t *testing.T) {
	repo, db := setupMembershipRepositoryTest(t)
	createPendingMembership(t, db, 1)

	now := time.Now()
	if _, err := repo.TransitionFromPending(1, constants.MembershipStatusRejected, now); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	// 管理员可从任意状态直接设置
	rows, err := repo.UpdateStatus(1, constants.MembershipStatusActive, now)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows want 1 got %d", rows)
	}

	membership, err := repo.GetByUserID(1)
	if err != nil {
		t.Fatalf("get membership failed: %v", err)
	}
	if membership.Status != constants.MembershipStatusActive {
		t.Fatalf("status want active got %s", membership.Status)
	}
}

func TestMembershipListFilterByStatus(t *testing.T) {
	repo, db := setupMembershipRepositoryTest(t)
	createPendingMembership(t, db, 1)
	createPendingMembership(t, db, 2)
	if _, err := repo.TransitionFromPending(2, constants.MembershipStatusActive, time.Now()); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	pending, total, err := repo.List(MembershipListFilter{Page: 1, PageSize: 10, Status: constants.MembershipStatusPending})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(pending) != 1 {
		t.Fatalf("pending list want 1 got total=%d len=%d", total, len(pending))
	}
	if pending[0].UserID != 1 {
		t.Fatalf("pending user want 1 got %d", pending[0].UserID)
	}

	count, err := repo.CountByStatus(constants.MembershipStatusActive)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("active count want 1 got %d", count)
	}
}
