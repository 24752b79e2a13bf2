package service

import (
	"strings"

	"github.com/anup1414/AffiliateEngine/internal/config"
	"github.com/anup1414/AffiliateEngine/internal/models"

	"github.com/shopspring/decimal"
)

// PriceQuote 会员价格计算结果
type PriceQuote struct {
	OriginalPrice models.Money `json:"original_price"`
	FinalPrice    models.Money `json:"final_price"`
	CouponApplied bool         `json:"coupon_applied"`
	CouponCode    string       `json:"coupon_code,omitempty"` // 归一化后的优惠码
}

// PricingService 会员定价服务
type PricingService struct {
	basePrice decimal.Decimal
	coupons   map[string]decimal.Decimal // 键为大写优惠码
}

// NewPricingService 创建会员定价服务
func NewPricingService(cfg config.MembershipConfig) *PricingService {
	coupons := make(map[string]decimal.Decimal, len(cfg.Coupons))
	for code, price := range cfg.Coupons {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if normalized == "" {
			continue
		}
		coupons[normalized] = decimal.NewFromFloat(price)
	}
	return &PricingService{
		basePrice: decimal.NewFromFloat(cfg.BasePrice),
		coupons:   coupons,
	}
}

// ResolvePrice 计算会员价格，优惠码大小写不敏感；未知优惠码按原价处理
func (s *PricingService) ResolvePrice(couponCode string) PriceQuote {
	quote := PriceQuote{
		OriginalPrice: models.NewMoneyFromDecimal(s.basePrice),
		FinalPrice:    models.NewMoneyFromDecimal(s.basePrice),
	}

	normalized := strings.ToUpper(strings.TrimSpace(couponCode))
	if normalized == "" {
		return quote
	}

	price, ok := s.coupons[normalized]
	if !ok {
		return quote
	}

	quote.FinalPrice = models.NewMoneyFromDecimal(price)
	quote.CouponApplied = true
	quote.CouponCode = normalized
	return quote
}

// BasePrice 返回会员原价
func (s *PricingService) BasePrice() models.Money {
	return models.NewMoneyFromDecimal(s.basePrice)
}
