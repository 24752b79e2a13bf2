package main

import (
	"fmt"
	"log"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/config"
	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 收款二维码
	qrCodes := []models.PaymentQRCode{
		{Name: "UPI 主收款码", QRCodeImage: "/uploads/qrcode/demo-upi-primary.png", UPIID: "demo@upi", IsActive: true, SortOrder: 1},
		{Name: "UPI 备用收款码", QRCodeImage: "/uploads/qrcode/demo-upi-backup.png", UPIID: "demo.backup@upi", IsActive: false, SortOrder: 2},
	}
	for _, qr := range qrCodes {
		var existing models.PaymentQRCode
		if err := models.DB.Where("name = ?", qr.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&qr).Error; err != nil {
				stdLog.Printf("Failed to create qr code %s: %v", qr.Name, err)
			} else {
				stdLog.Printf("Created qr code: %s", qr.Name)
			}
		} else {
			stdLog.Printf("QR code already exists: %s", qr.Name)
		}
	}

	// 推荐人账号
	referrer := seedUser(stdLog, "demo_referrer", "password123", nil)
	if referrer == nil {
		return
	}

	// 被推荐人与会员记录
	rewardAmount := decimal.NewFromFloat(cfg.Referral.RewardAmount)
	basePrice := decimal.NewFromFloat(cfg.Membership.BasePrice)
	for i := 1; i <= 3; i++ {
		username := fmt.Sprintf("demo_member_%02d", i)
		user := seedUser(stdLog, username, "password123", &referrer.ID)
		if user == nil {
			continue
		}

		var membership models.Membership
		if err := models.DB.Where("user_id = ?", user.ID).First(&membership).Error; err == nil {
			stdLog.Printf("Membership already exists: %s", username)
			continue
		}

		activatedAt := time.Now().AddDate(0, 0, -i)
		membership = models.Membership{
			UserID:        user.ID,
			OriginalPrice: models.NewMoneyFromDecimal(basePrice),
			PaidPrice:     models.NewMoneyFromDecimal(basePrice),
			Status:        constants.MembershipStatusActive,
			ReviewedAt:    &activatedAt,
		}
		if err := models.DB.Create(&membership).Error; err != nil {
			stdLog.Printf("Failed to create membership for %s: %v", username, err)
			continue
		}

		earning := models.ReferralEarning{
			UserID:         referrer.ID,
			ReferredUserID: user.ID,
			Amount:         models.NewMoneyFromDecimal(rewardAmount),
			EarnedAt:       activatedAt,
		}
		if err := models.DB.Create(&earning).Error; err != nil {
			stdLog.Printf("Failed to create earning for %s: %v", username, err)
			continue
		}
		stdLog.Printf("Created membership and earning: %s", username)
	}

	stdLog.Printf("Seed finished")
}

func seedUser(stdLog *log.Logger, username, password string, referredBy *uint) *models.User {
	var existing models.User
	if err := models.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		stdLog.Printf("User already exists: %s", username)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("Failed to hash password for %s: %v", username, err)
		return nil
	}
	code, err := models.NewReferralCode(12)
	if err != nil {
		stdLog.Printf("Failed to generate referral code for %s: %v", username, err)
		return nil
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		ReferralCode: code,
		ReferredBy:   referredBy,
		IsApproved:   true,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("Failed to create user %s: %v", username, err)
		return nil
	}
	stdLog.Printf("Created user: %s", username)
	return &user
}
