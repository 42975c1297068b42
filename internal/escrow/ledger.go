package escrow

import "time"

// ContributionEntry 单笔出资记录
type ContributionEntry struct {
	Contributor string    `json:"contributor"`
	Amount      int64     `json:"amount"`
	Time        time.Time `json:"time"`
}

// ContributionLedger 单个活动的出资台账
//
// balances 提供 O(1) 的余额查询，contributors 按首次出资顺序
// 保存去重后的出资人，两者配合支撑查询与枚举；
// history 为只追加的流水，每次出资一条，从不合并。
// 余额为 0 表示"当前无可退款余额"，与"从未出资"不作区分，
// 与退款语义保持一致。
type ContributionLedger struct {
	balances     map[string]int64
	contributors []string
	history      []ContributionEntry
}

func newContributionLedger() *ContributionLedger {
	return &ContributionLedger{
		balances: make(map[string]int64),
	}
}

// credit 记入一笔出资，首次出资的地址加入出资人列表
func (l *ContributionLedger) credit(contributor string, amount int64, now time.Time) {
	if l.balances[contributor] == 0 && !l.seen(contributor) {
		l.contributors = append(l.contributors, contributor)
	}
	l.balances[contributor] += amount
	l.history = append(l.history, ContributionEntry{
		Contributor: contributor,
		Amount:      amount,
		Time:        now,
	})
}

// drain 清零指定地址的未退余额并返回清零前的金额
func (l *ContributionLedger) drain(contributor string) int64 {
	amount := l.balances[contributor]
	if amount > 0 {
		l.balances[contributor] = 0
	}
	return amount
}

// seen 该地址是否出资过（含余额已清零的情况）
func (l *ContributionLedger) seen(contributor string) bool {
	_, ok := l.balances[contributor]
	return ok
}

// BalanceOf 返回指定地址的未退余额
func (l *ContributionLedger) BalanceOf(contributor string) int64 {
	return l.balances[contributor]
}

// Contributors 返回按首次出资顺序排列的出资人列表
func (l *ContributionLedger) Contributors() []string {
	out := make([]string, len(l.contributors))
	copy(out, l.contributors)
	return out
}

// History 返回出资流水的副本
func (l *ContributionLedger) History() []ContributionEntry {
	out := make([]ContributionEntry, len(l.history))
	copy(out, l.history)
	return out
}

// outstanding 台账内全部未退余额之和
func (l *ContributionLedger) outstanding() int64 {
	var total int64
	for _, balance := range l.balances {
		total += balance
	}
	return total
}
