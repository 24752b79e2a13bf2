package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Approved    *bool
	IsAdmin     *bool
	ReferredBy  uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MembershipListFilter 查询会员记录列表的过滤条件
type MembershipListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// EarningListFilter 查询推荐奖励列表的过滤条件
type EarningListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	EarnedFrom *time.Time
	EarnedTo   *time.Time
}

// QRCodeListFilter 查询收款二维码列表的过滤条件
type QRCodeListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}
