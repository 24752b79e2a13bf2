package admin

import (
	"github.com/anup1414/AffiliateEngine/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetPlatformStats 获取平台统计
func (h *Handler) GetPlatformStats(c *gin.Context) {
	stats, err := h.AdminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "获取平台统计失败", err)
		return
	}
	response.Success(c, stats)
}
