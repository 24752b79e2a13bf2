package worker

import (
	"context"
	"encoding/json"

	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/provider"
	"github.com/anup1414/AffiliateEngine/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMembershipActivated, c.handleMembershipActivated)
	mux.HandleFunc(queue.TaskMembershipRejected, c.handleMembershipRejected)
}

func (c *Consumer) handleMembershipActivated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_membership_activated_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MembershipActivatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_membership_activated_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_membership_activated_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	membership, err := c.MembershipRepo.GetByUserID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_membership_activated_fetch_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if membership == nil {
		logger.Debugw("worker_membership_activated_skip_not_found", "user_id", payload.UserID)
		return nil
	}

	// 预热推荐人收益统计与平台统计缓存
	if payload.ReferrerUserID != nil && *payload.ReferrerUserID != 0 && c.EarningService != nil {
		if _, err := c.EarningService.Stats(ctx, *payload.ReferrerUserID); err != nil {
			logger.Warnw("worker_membership_activated_warm_earnings_failed",
				"user_id", payload.UserID,
				"referrer_user_id", *payload.ReferrerUserID,
				"error", err,
			)
		}
	}
	if c.AdminService != nil {
		if _, err := c.AdminService.Stats(ctx); err != nil {
			logger.Warnw("worker_membership_activated_warm_stats_failed", "user_id", payload.UserID, "error", err)
		}
	}

	logger.Infow("worker_membership_activated_processed",
		"user_id", payload.UserID,
		"membership_id", payload.MembershipID,
		"status", membership.Status,
	)
	return nil
}

func (c *Consumer) handleMembershipRejected(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_membership_rejected_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MembershipRejectedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_membership_rejected_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_membership_rejected_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	membership, err := c.MembershipRepo.GetByUserID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_membership_rejected_fetch_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if membership == nil {
		logger.Debugw("worker_membership_rejected_skip_not_found", "user_id", payload.UserID)
		return nil
	}
	logger.Infow("worker_membership_rejected_processed",
		"user_id", payload.UserID,
		"membership_id", payload.MembershipID,
		"status", membership.Status,
	)
	return nil
}
