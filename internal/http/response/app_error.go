package response

import "fmt"

// AppError 业务错误，携带业务状态码，由统一出口渲染
type AppError struct {
	Code    int
	Message string
	Err     error
}

// WrapError 以业务状态码包装底层错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
