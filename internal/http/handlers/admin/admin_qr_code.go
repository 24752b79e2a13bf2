package admin

import (
	"errors"
	"strconv"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/repository"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// QRCodeUpsertRequest 收款二维码创建/更新请求
type QRCodeUpsertRequest struct {
	Name        string `json:"name"`
	QRCodeImage string `json:"qr_code_image"`
	UPIID       string `json:"upi_id"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

func (r QRCodeUpsertRequest) toInput() service.QRCodeInput {
	return service.QRCodeInput{
		Name:        r.Name,
		QRCodeImage: r.QRCodeImage,
		UPIID:       r.UPIID,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

func respondQRCodeError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrQRCodeNotFound):
		respondError(c, response.CodeNotFound, "收款二维码不存在", nil)
	case errors.Is(err, service.ErrQRCodeInvalid):
		respondError(c, response.CodeBadRequest, "收款二维码参数不完整", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// GetAdminQRCodes 获取后台二维码列表
func (h *Handler) GetAdminQRCodes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.QRCodeListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "请求参数错误", err)
			return
		}
		filter.IsActive = &parsed
	}

	qrCodes, total, err := h.QRCodeService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取二维码列表失败", err)
		return
	}

	response.SuccessWithPage(c, qrCodes, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateQRCode 创建二维码
func (h *Handler) CreateQRCode(c *gin.Context) {
	var req QRCodeUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	qrCode, err := h.QRCodeService.Create(req.toInput())
	if err != nil {
		respondQRCodeError(c, err, "创建二维码失败")
		return
	}
	response.Success(c, qrCode)
}

// UpdateQRCode 更新二维码
func (h *Handler) UpdateQRCode(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req QRCodeUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	qrCode, err := h.QRCodeService.Update(id, req.toInput())
	if err != nil {
		respondQRCodeError(c, err, "更新二维码失败")
		return
	}
	response.Success(c, qrCode)
}

// DeleteQRCode 删除二维码
func (h *Handler) DeleteQRCode(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.QRCodeService.Delete(id); err != nil {
		respondQRCodeError(c, err, "删除二维码失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UploadQRCodeImage 上传二维码图片
func (h *Handler) UploadQRCodeImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", err)
		return
	}

	path, err := h.UploadService.SaveFile(file, "qrcode")
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}
	response.Success(c, gin.H{"url": path})
}
