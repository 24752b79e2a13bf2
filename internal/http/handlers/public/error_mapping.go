package public

import (
	"errors"

	"github.com/anup1414/AffiliateEngine/internal/http/response"
	"github.com/anup1414/AffiliateEngine/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameTaken, code: response.CodeBadRequest, msg: "用户名已被占用"},
	{target: service.ErrPasswordTooShort, code: response.CodeBadRequest, msg: "密码长度不足"},
	{target: service.ErrInvalidCredential, code: response.CodeBadRequest, msg: "用户名不合法"},
}

var purchaseErrorRules = []mappedHandlerError{
	{target: service.ErrMembershipExists, code: response.CodeConflict, msg: "会员记录已存在"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "用户不存在"},
}
