package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/config"
	"github.com/anup1414/AffiliateEngine/internal/constants"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "user-service-test-secret-0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.JWT.RememberMeExpireHours = 168
	cfg.Referral.CodeLength = 12
	cfg.Security.PasswordPolicy.MinLength = 6

	userRepo := repository.NewUserRepository(db)
	return NewUserService(cfg, userRepo), db
}

func TestUserRegisterGeneratesReferralCode(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.Register("alice", "secret123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(user.ReferralCode) != 12 {
		t.Fatalf("referral code length want 12 got %d", len(user.ReferralCode))
	}
	for _, r := range user.ReferralCode {
		if !strings.ContainsRune(constants.ReferralCodeAlphabet, r) {
			t.Fatalf("referral code contains invalid rune %q", r)
		}
	}
	if user.ReferredBy != nil {
		t.Fatalf("referred_by should be nil without referral code")
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password should be hashed")
	}
}

func TestUserRegisterDuplicateUsername(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	if _, err := svc.Register("bob", "secret123", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register("bob", "secret456", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken got %v", err)
	}
}

func TestUserRegisterPasswordTooShort(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	if _, err := svc.Register("carol", "123", ""); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("want ErrPasswordTooShort got %v", err)
	}
}

func TestUserRegisterWithReferralCode(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	referrer, err := svc.Register("dave", "secret123", "")
	if err != nil {
		t.Fatalf("register referrer failed: %v", err)
	}

	// 推荐码大小写不敏感
	user, err := svc.Register("erin", "secret123", strings.ToLower(referrer.ReferralCode))
	if err != nil {
		t.Fatalf("register with referral failed: %v", err)
	}
	if user.ReferredBy == nil || *user.ReferredBy != referrer.ID {
		t.Fatalf("referred_by want %d got %v", referrer.ID, user.ReferredBy)
	}
}

func TestUserRegisterUnknownReferralCode(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.Register("frank", "secret123", "NOSUCHCODE42")
	if err != nil {
		t.Fatalf("register with unresolved referral code failed: %v", err)
	}
	if user.ReferredBy != nil {
		t.Fatalf("referred_by want nil got %v", *user.ReferredBy)
	}
}

func TestUserLoginAndJWT(t *testing.T) {
	svc, db := setupUserServiceTest(t)

	registered, err := svc.Register("grace", "secret123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, expiresAt, err := svc.Login("grace", "secret123", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login user id want %d got %d", registered.ID, user.ID)
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("token should be issued with future expiry")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != registered.ID || claims.Username != "grace" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	var stored models.User
	if err := db.First(&stored, registered.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Fatalf("last_login_at should be set after login")
	}

	if _, _, _, err := svc.Login("grace", "wrong-pass", false); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("wrong password want ErrInvalidCredential got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "secret123", false); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("unknown user want ErrInvalidCredential got %v", err)
	}
}

func TestUserChangePassword(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.Register("henry", "secret123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-old", "newsecret123"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("wrong old password want ErrInvalidCredential got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret123", "123"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short new password want ErrPasswordTooShort got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret123", "newsecret123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("henry", "newsecret123", false); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.Register("peter", "secret123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	picture := " /uploads/avatar/2025/06/a.png "
	updated, err := svc.UpdateProfile(user.ID, &picture)
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.ProfilePicture != "/uploads/avatar/2025/06/a.png" {
		t.Fatalf("profile picture want trimmed path got %q", updated.ProfilePicture)
	}

	updated, err = svc.UpdateProfile(user.ID, nil)
	if err != nil {
		t.Fatalf("update profile with nil picture failed: %v", err)
	}
	if updated.ProfilePicture != "/uploads/avatar/2025/06/a.png" {
		t.Fatalf("nil picture should keep existing value, got %q", updated.ProfilePicture)
	}

	if _, err := svc.UpdateProfile(9999, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user want ErrUserNotFound got %v", err)
	}
}

func TestUserListReferrals(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	referrer, err := svc.Register("iris", "secret123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Register(fmt.Sprintf("iris_ref_%d", i), "secret123", referrer.ReferralCode); err != nil {
			t.Fatalf("register referral failed: %v", err)
		}
	}

	referrals, total, err := svc.ListReferrals(referrer.ID, 1, 2)
	if err != nil {
		t.Fatalf("list referrals failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(referrals) != 2 {
		t.Fatalf("page size want 2 got %d", len(referrals))
	}
}
