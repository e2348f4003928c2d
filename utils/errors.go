package utils

import "fmt"

/*
WrapError 给 err 附加一段说明，err 为 nil 时返回 nil。

包装后的错误保留原始错误，可以通过 errors.Is / errors.As 判断。
*/
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", msg, err)
}

/*
WrapErrorf 与 WrapError 相同，说明部分按 format 格式化。
*/
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
