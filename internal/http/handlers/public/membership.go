package public

import (
	"errors"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipQuoteRequest 会员价格试算请求
type MembershipQuoteRequest struct {
	CouponCode string `form:"coupon_code" json:"coupon_code"`
}

// MembershipQuote 会员价格试算
func (h *Handler) MembershipQuote(c *gin.Context) {
	var req MembershipQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	quote := h.PricingService.ResolvePrice(req.CouponCode)
	response.Success(c, quote)
}

// MembershipPurchaseRequest 会员购买请求
type MembershipPurchaseRequest struct {
	CouponCode string `json:"coupon_code"`
	PaymentRef string `json:"payment_ref"`
}

// MembershipPurchase 提交会员购买
func (h *Handler) MembershipPurchase(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req MembershipPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	membership, err := h.MembershipService.Purchase(userID, req.CouponCode, req.PaymentRef)
	if err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "提交会员购买失败")
		return
	}

	response.Success(c, gin.H{"membership": membership})
}

// MembershipStatus 当前用户会员状态
func (h *Handler) MembershipStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	membership, err := h.MembershipService.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, service.ErrMembershipNotFound) {
			response.Success(c, gin.H{"membership": nil})
			return
		}
		respondError(c, response.CodeInternal, "获取会员状态失败", err)
		return
	}

	response.Success(c, gin.H{"membership": membership})
}

// PaymentQRCodes 支付页可用二维码列表
func (h *Handler) PaymentQRCodes(c *gin.Context) {
	qrCodes, err := h.QRCodeService.ListActive()
	if err != nil {
		respondError(c, response.CodeInternal, "获取收款二维码失败", err)
		return
	}
	response.Success(c, gin.H{"qr_codes": qrCodes})
}
