package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/repository"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminMemberships 获取后台会员记录列表
func (h *Handler) GetAdminMemberships(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	memberships, total, err := h.MembershipService.List(repository.MembershipListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取会员记录失败", err)
		return
	}

	response.SuccessWithPage(c, memberships, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func respondMembershipReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMembershipNotFound):
		respondError(c, response.CodeNotFound, "会员记录不存在", nil)
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(c, response.CodeConflict, "会员状态不允许此操作", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(c, response.CodeBadRequest, "非法的会员状态", nil)
	default:
		respondError(c, response.CodeInternal, "会员审核操作失败", err)
	}
}

// ConfirmMembership 审核通过会员
func (h *Handler) ConfirmMembership(c *gin.Context) {
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	membership, err := h.MembershipService.Confirm(userID, time.Now())
	if err != nil {
		respondMembershipReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"membership": membership})
}

// RejectMembership 审核拒绝会员
func (h *Handler) RejectMembership(c *gin.Context) {
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	membership, err := h.MembershipService.Reject(userID, time.Now())
	if err != nil {
		respondMembershipReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"membership": membership})
}

// MembershipStatusRequest 会员状态设置请求
type MembershipStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetMembershipStatus 管理员直接设置会员状态
func (h *Handler) SetMembershipStatus(c *gin.Context) {
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	var req MembershipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	membership, err := h.MembershipService.SetStatus(userID, req.Status, time.Now())
	if err != nil {
		respondMembershipReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"membership": membership})
}
