package service

import "errors"

// 服务层统一错误定义
var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameTaken     = errors.New("用户名已被占用")
	ErrInvalidCredential = errors.New("用户名或密码错误")
	ErrUserNotApproved   = errors.New("账号尚未通过审核")
	ErrPasswordTooShort  = errors.New("密码长度不足")

	ErrMembershipExists   = errors.New("会员记录已存在")
	ErrMembershipNotFound = errors.New("会员记录不存在")
	ErrInvalidTransition  = errors.New("会员状态不允许此操作")
	ErrInvalidStatus      = errors.New("非法的会员状态")
	ErrPriceMismatch      = errors.New("支付金额与应付金额不一致")

	ErrQRCodeNotFound = errors.New("收款二维码不存在")
	ErrQRCodeInvalid  = errors.New("收款二维码参数不完整")

	ErrPermissionDenied = errors.New("无权执行此操作")
)
