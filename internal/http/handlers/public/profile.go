package public

import (
	"errors"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.UserService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredential):
			respondError(c, response.CodeBadRequest, "原密码错误", nil)
		case errors.Is(err, service.ErrPasswordTooShort):
			respondError(c, response.CodeBadRequest, "密码长度不足", nil)
		default:
			respondError(c, response.CodeInternal, "修改密码失败", err)
		}
		return
	}

	response.SuccessWithMsg(c, "密码已更新", nil)
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateProfile 更新用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, err := h.UserService.UpdateProfile(userID, req.ProfilePicture)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "用户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "更新资料失败", err)
		return
	}

	response.SuccessWithMsg(c, "资料已更新", user)
}

// UploadAvatar 上传头像图片
func (h *Handler) UploadAvatar(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", err)
		return
	}

	path, err := h.UploadService.SaveFile(file, "avatar")
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, gin.H{"url": path})
}

// UploadPaymentProof 上传支付凭证图片
func (h *Handler) UploadPaymentProof(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", err)
		return
	}

	path, err := h.UploadService.SaveFile(file, "payment_proof")
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, gin.H{"url": path})
}
