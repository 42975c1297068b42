package escrow

import "time"

// Transfer 外部转账能力，金额以最小不可分割单位计
//
// 协议约定：调用 Transfer 之前内部账务必须已全部提交，
// 转账目标即使重入平台的其他操作，也只能看到完整提交后的状态
type Transfer interface {
	Transfer(to string, amount int64) error
}

// Clock 当前时间来源，注入以便结算逻辑可测试
type Clock func() time.Time
