package queue

import (
	"encoding/json"

	"github.com/anup1414/AffiliateEngine/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskMembershipActivated 会员激活通知任务
	TaskMembershipActivated = constants.TaskMembershipActivated
	// TaskMembershipRejected 会员审核拒绝通知任务
	TaskMembershipRejected = constants.TaskMembershipRejected
)

// MembershipActivatedPayload 会员激活任务载荷
type MembershipActivatedPayload struct {
	UserID         uint  `json:"user_id"`
	MembershipID   uint  `json:"membership_id"`
	ReferrerUserID *uint `json:"referrer_user_id,omitempty"`
}

// MembershipRejectedPayload 会员审核拒绝任务载荷
type MembershipRejectedPayload struct {
	UserID       uint `json:"user_id"`
	MembershipID uint `json:"membership_id"`
}

// NewMembershipActivatedTask 创建会员激活任务
func NewMembershipActivatedTask(payload MembershipActivatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMembershipActivated, body), nil
}

// NewMembershipRejectedTask 创建会员审核拒绝任务
func NewMembershipRejectedTask(payload MembershipRejectedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMembershipRejected, body), nil
}
