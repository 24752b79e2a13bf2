package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupQRCodeServiceTest(t *testing.T) *QRCodeService {
	t.Helper()
	dsn := fmt.Sprintf("file:qr_code_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PaymentQRCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewQRCodeService(repository.NewQRCodeRepository(db))
}

func TestQRCodeCreate(t *testing.T) {
	svc := setupQRCodeServiceTest(t)

	qrCode, err := svc.Create(QRCodeInput{
		Name:        " 主收款码 ",
		QRCodeImage: "/uploads/qrcode/main.png",
		UPIID:       "shop@upi",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if qrCode.Name != "主收款码" {
		t.Fatalf("name should be trimmed, got %q", qrCode.Name)
	}
	if !qrCode.IsActive {
		t.Fatalf("qr code should default to active")
	}

	if _, err := svc.Create(QRCodeInput{Name: "缺图"}); !errors.Is(err, ErrQRCodeInvalid) {
		t.Fatalf("missing image want ErrQRCodeInvalid got %v", err)
	}
	if _, err := svc.Create(QRCodeInput{QRCodeImage: "/x.png"}); !errors.Is(err, ErrQRCodeInvalid) {
		t.Fatalf("missing name want ErrQRCodeInvalid got %v", err)
	}
}

func TestQRCodeUpdatePartial(t *testing.T) {
	svc := setupQRCodeServiceTest(t)

	created, err := svc.Create(QRCodeInput{
		Name:        "旧名称",
		QRCodeImage: "/uploads/qrcode/old.png",
		UPIID:       "old@upi",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	order := 5
	updated, err := svc.Update(created.ID, QRCodeInput{
		Name:      "新名称",
		IsActive:  &inactive,
		SortOrder: &order,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "新名称" {
		t.Fatalf("name want 新名称 got %s", updated.Name)
	}
	if updated.QRCodeImage != "/uploads/qrcode/old.png" {
		t.Fatalf("image should be unchanged, got %s", updated.QRCodeImage)
	}
	if updated.UPIID != "old@upi" {
		t.Fatalf("upi should be unchanged, got %s", updated.UPIID)
	}
	if updated.IsActive {
		t.Fatalf("qr code should be inactive")
	}
	if updated.SortOrder != 5 {
		t.Fatalf("sort order want 5 got %d", updated.SortOrder)
	}

	if _, err := svc.Update(404, QRCodeInput{Name: "x"}); !errors.Is(err, ErrQRCodeNotFound) {
		t.Fatalf("want ErrQRCodeNotFound got %v", err)
	}
}

func TestQRCodeDelete(t *testing.T) {
	svc := setupQRCodeServiceTest(t)

	created, err := svc.Create(QRCodeInput{Name: "待删除", QRCodeImage: "/uploads/qrcode/del.png"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrQRCodeNotFound) {
		t.Fatalf("deleted qr code want ErrQRCodeNotFound got %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrQRCodeNotFound) {
		t.Fatalf("repeat delete want ErrQRCodeNotFound got %v", err)
	}
}

func TestQRCodeListActive(t *testing.T) {
	svc := setupQRCodeServiceTest(t)

	inactive := false
	orderFirst := 1
	orderSecond := 2
	if _, err := svc.Create(QRCodeInput{Name: "second", QRCodeImage: "/2.png", SortOrder: &orderSecond}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(QRCodeInput{Name: "first", QRCodeImage: "/1.png", SortOrder: &orderFirst}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(QRCodeInput{Name: "hidden", QRCodeImage: "/3.png", IsActive: &inactive}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	active, err := svc.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active count want 2 got %d", len(active))
	}
	if active[0].Name != "first" || active[1].Name != "second" {
		t.Fatalf("active list should be ordered by sort_order, got %s, %s", active[0].Name, active[1].Name)
	}
}
