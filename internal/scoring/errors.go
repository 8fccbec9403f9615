package scoring

import (
	"errors"
	"fmt"
)

// 三类错误对应不同的处理方：配置错误面向管理员，完整性错误应中止并记录，
// 未完成提交错误提示学生补答后重新提交。引擎本身从不重试。
var (
	ErrConfiguration        = errors.New("instrument configuration error")
	ErrIntegrity            = errors.New("scoring integrity error")
	ErrIncompleteSubmission = errors.New("incomplete submission")
)

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func integrityErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}

func incompleteErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIncompleteSubmission, fmt.Sprintf(format, args...))
}
