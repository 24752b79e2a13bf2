package models

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/anup1414/AffiliateEngine/internal/constants"
)

const defaultReferralCodeLength = 12

// NewReferralCode 生成指定长度的推荐码
func NewReferralCode(length int) (string, error) {
	if length <= 0 {
		length = defaultReferralCodeLength
	}
	alphabet := constants.ReferralCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate referral code failed: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
