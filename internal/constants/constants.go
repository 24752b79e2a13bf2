package constants

// 会员状态
const (
	MembershipStatusPending  = "pending"  // 已提交支付凭证，等待审核
	MembershipStatusActive   = "active"   // 审核通过，会员生效
	MembershipStatusRejected = "rejected" // 审核拒绝
	MembershipStatusExpired  = "expired"  // 会员过期
)

// MembershipStatuses 会员状态全集
var MembershipStatuses = []string{
	MembershipStatusPending,
	MembershipStatusActive,
	MembershipStatusRejected,
	MembershipStatusExpired,
}

// IsValidMembershipStatus 校验会员状态取值
func IsValidMembershipStatus(status string) bool {
	for _, s := range MembershipStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 推荐码字符集（去除易混淆字符 0/O/1/I）
const ReferralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// 异步任务类型
const (
	TaskMembershipActivated = "membership:activated"
	TaskMembershipRejected  = "membership:rejected"
)

// 队列名
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 缓存键
const (
	CacheKeyPlatformStats = "stats:platform"
	CacheKeyEarningsStats = "stats:earnings:%d" // 按用户 ID
)
