package public

import (
	"strconv"

	handlershared "github.com/anup1414/AffiliateEngine/internal/http/handlers/shared"
	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/repository"

	"github.com/gin-gonic/gin"
)

// EarningsStats 当前用户奖励统计（当日/近7天/累计）
func (h *Handler) EarningsStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	stats, err := h.EarningService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取奖励统计失败", err)
		return
	}
	response.Success(c, stats)
}

// EarningsHistory 当前用户奖励明细
func (h *Handler) EarningsHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	earnings, total, err := h.EarningService.List(repository.EarningListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取奖励明细失败", err)
		return
	}

	response.SuccessWithPage(c, earnings, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// ReferralSummary 当前用户推荐概况
func (h *Handler) ReferralSummary(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	summary, err := h.EarningService.Summary(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取推荐概况失败", err)
		return
	}
	response.Success(c, summary)
}

// Referrals 当前用户名下被推荐用户列表
func (h *Handler) Referrals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	users, total, err := h.UserService.ListReferrals(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取推荐用户失败", err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}

	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
