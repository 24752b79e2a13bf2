package admin

import (
	"strconv"

	handlershared "github.com/anup1414/AffiliateEngine/internal/http/handlers/shared"
	"github.com/anup1414/AffiliateEngine/internal/http/response"

	"github.com/gin-gonic/gin"
)

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// parseUintParam 解析路径中的数字参数，失败时直接响应错误。
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "路径参数无效", err)
		return 0, false
	}
	return uint(value), true
}
