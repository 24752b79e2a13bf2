package service

import (
	"errors"
	"strings"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/config"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const maxReferralCodeRetry = 8

// UserService 用户账户服务
type UserService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserService 创建用户账户服务
func NewUserService(cfg *config.Config, userRepo repository.UserRepository) *UserService {
	return &UserService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成用户 JWT Token
func (s *UserService) GenerateJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if rememberMe && s.cfg.JWT.RememberMeExpireHours > 0 {
		expireHours = s.cfg.JWT.RememberMeExpireHours
	}
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析用户 JWT Token
func (s *UserService) ParseJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 用户注册，推荐码可选；返回新建用户
func (s *UserService) Register(username, password, referralCode string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidCredential
	}
	if len(password) < s.passwordMinLength() {
		return nil, ErrPasswordTooShort
	}

	// 推荐码尽力解析：无法解析时照常注册，结算时按无推荐人处理
	var referredBy *uint
	normalizedCode := strings.ToUpper(strings.TrimSpace(referralCode))
	if normalizedCode != "" {
		referrer, err := s.userRepo.GetByReferralCode(normalizedCode)
		if err != nil {
			return nil, err
		}
		if referrer != nil {
			referredBy = &referrer.ID
		} else {
			logger.Infow("referral_code_unresolved", "referral_code", normalizedCode)
		}
	}

	exist, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	for i := 0; i < maxReferralCodeRetry; i++ {
		code, genErr := models.NewReferralCode(s.cfg.Referral.CodeLength)
		if genErr != nil {
			return nil, genErr
		}
		user := &models.User{
			Username:     username,
			PasswordHash: string(hashedPassword),
			ReferralCode: code,
			ReferredBy:   referredBy,
		}
		if err := s.userRepo.Create(user); err != nil {
			if isUniqueViolation(err) {
				// 推荐码撞库则重试；用户名撞库直接返回
				dup, dupErr := s.userRepo.GetByUsername(username)
				if dupErr == nil && dup != nil {
					return nil, ErrUsernameTaken
				}
				continue
			}
			return nil, err
		}
		logger.Infow("user_registered",
			"user_id", user.ID,
			"username", user.Username,
			"referred_by", referredBy,
		)
		return user, nil
	}
	return nil, errors.New("推荐码生成失败")
}

// Login 用户登录
func (s *UserService) Login(username, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredential
	}

	token, expiresAt, err := s.GenerateJWT(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	logger.Infow("user_logged_in", "user_id", user.ID, "username", user.Username)
	return user, token, expiresAt, nil
}

// GetByID 获取用户
func (s *UserService) GetByID(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < s.passwordMinLength() {
		return ErrPasswordTooShort
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredential
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	logger.Infow("user_password_changed", "user_id", userID)
	return nil
}

// UpdateProfile 更新用户资料（目前仅支持头像）
func (s *UserService) UpdateProfile(userID uint, profilePicture *string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if profilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*profilePicture)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	logger.Infow("user_profile_updated", "user_id", userID)
	return user, nil
}

// ListReferrals 列出用户名下的被推荐用户
func (s *UserService) ListReferrals(userID uint, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(repository.UserListFilter{
		Page:       page,
		PageSize:   pageSize,
		ReferredBy: userID,
	})
}

func (s *UserService) passwordMinLength() int {
	if s.cfg.Security.PasswordPolicy.MinLength > 0 {
		return s.cfg.Security.PasswordPolicy.MinLength
	}
	return 6
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
