package public

import (
	"errors"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, err := h.UserService.Register(req.Username, req.Password, req.ReferralCode)
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "注册失败")
		return
	}

	response.Success(c, gin.H{
		"user": userView(user),
	})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, token, expiresAt, err := h.UserService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			respondError(c, response.CodeUnauthorized, "用户名或密码错误", nil)
			return
		}
		respondError(c, response.CodeInternal, "登录失败", err)
		return
	}

	response.Success(c, gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Logout 用户登出。令牌为无状态 JWT，此处仅确认登出，客户端自行丢弃令牌。
func (h *Handler) Logout(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	response.SuccessWithMsg(c, "已退出登录", nil)
}

// Me 当前用户信息
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "用户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取用户信息失败", err)
		return
	}

	response.Success(c, gin.H{"user": userView(user)})
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"referral_code":   user.ReferralCode,
		"referred_by":     user.ReferredBy,
		"is_approved":     user.IsApproved,
		"is_admin":        user.IsAdmin,
		"profile_picture": user.ProfilePicture,
		"created_at":      user.CreatedAt,
	}
}
