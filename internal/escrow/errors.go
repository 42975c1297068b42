package escrow

import "errors"

// 错误分类，调用方通过 errors.Is 判断错误类型
var (
	// ErrInvalidInput 参数无效（空文本、金额为0、时长越界等）
	ErrInvalidInput = errors.New("参数无效")
	// ErrNotFound 活动不存在（ID 超出已分配范围）
	ErrNotFound = errors.New("活动不存在")
	// ErrUnauthorized 调用者无权限执行该操作
	ErrUnauthorized = errors.New("无权限执行该操作")
	// ErrInvalidState 活动当前生命周期状态不允许该操作
	ErrInvalidState = errors.New("当前状态不允许该操作")
	// ErrTransferFailed 外部转账失败（内部状态已提交，不回滚）
	ErrTransferFailed = errors.New("转账失败")
)
