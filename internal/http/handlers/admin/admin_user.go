package admin

import (
	"errors"
	"strconv"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/repository"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 获取后台用户列表（含会员状态与推荐数据）
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
	}
	if raw := c.Query("approved"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "请求参数错误", err)
			return
		}
		filter.Approved = &parsed
	}

	users, total, err := h.AdminService.ListUsersWithDetail(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户列表失败", err)
		return
	}

	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// UserApprovalRequest 用户审核请求
type UserApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetUserApproval 设置用户审核状态
func (h *Handler) SetUserApproval(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UserApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, err := h.AdminService.SetUserApproval(userID, *req.Approved)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "用户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "设置审核状态失败", err)
		return
	}

	response.Success(c, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"is_approved": user.IsApproved,
	})
}
