package escrow

import (
	"fmt"
	"sync"
	"time"
)

// 平台手续费率上限：1000 个基点（10%）
const maxFeeRateBps = 1000

// Platform 平台上下文，持有活动存储、计数器、平台所有者与费率
//
// 所有公开操作在同一把互斥锁下原子完成，任何操作都不会观察到
// 另一操作半途的状态；依赖以显式参数注入而非环境全局，
// 便于并行创建相互隔离的测试实例
type Platform struct {
	mu         sync.Mutex
	owner      string
	feeRateBps int64
	clock      Clock
	transfer   Transfer

	counter     int64
	campaigns   []*Campaign // 下标为 ID-1
	totalRaised int64
	events      []Event
}

// New 创建平台实例
func New(owner string, feeRateBps int64, clock Clock, transfer Transfer) (*Platform, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: 平台所有者地址不能为空", ErrInvalidInput)
	}
	if feeRateBps < 0 || feeRateBps > maxFeeRateBps {
		return nil, fmt.Errorf("%w: 手续费率必须在 0-%d 个基点之间", ErrInvalidInput, maxFeeRateBps)
	}
	if transfer == nil {
		return nil, fmt.Errorf("%w: 缺少转账能力", ErrInvalidInput)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Platform{
		owner:      owner,
		feeRateBps: feeRateBps,
		clock:      clock,
		transfer:   transfer,
	}, nil
}

// find 按ID查找活动，调用方必须持有锁
func (p *Platform) find(id int64) (*Campaign, error) {
	if id < 1 || id > p.counter {
		return nil, fmt.Errorf("%w: ID %d", ErrNotFound, id)
	}
	return p.campaigns[id-1], nil
}

// emit 追加一条状态变更事件，调用方必须持有锁
func (p *Platform) emit(ev Event) {
	p.events = append(p.events, ev)
}

// GetCampaign 获取活动快照
func (p *Platform) GetCampaign(id int64) (CampaignInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return CampaignInfo{}, err
	}
	return campaign.info(), nil
}

// Campaigns 获取全部活动快照，按ID升序
func (p *Platform) Campaigns() []CampaignInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]CampaignInfo, 0, len(p.campaigns))
	for _, campaign := range p.campaigns {
		out = append(out, campaign.info())
	}
	return out
}

// Deactivate 平台所有者强制停用活动
//
// 停用只阻止新的出资，不影响既有资金在截止后按原规则结算；
// 操作幂等，重复停用不报错
func (p *Platform) Deactivate(caller string, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if caller != p.owner {
		return fmt.Errorf("%w: 只有平台所有者可以停用活动", ErrUnauthorized)
	}
	campaign, err := p.find(id)
	if err != nil {
		return err
	}

	changed := campaign.IsActive
	campaign.IsActive = false
	if changed {
		p.emit(Event{
			Type:       EventCampaignStatusChanged,
			CampaignID: campaign.ID,
			IsActive:   false,
			Time:       p.clock(),
		})
	}
	return nil
}

// SetFeeRate 平台所有者调整手续费率（基点）
func (p *Platform) SetFeeRate(caller string, bps int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if caller != p.owner {
		return fmt.Errorf("%w: 只有平台所有者可以调整手续费率", ErrUnauthorized)
	}
	if bps < 0 || bps > maxFeeRateBps {
		return fmt.Errorf("%w: 手续费率必须在 0-%d 个基点之间", ErrInvalidInput, maxFeeRateBps)
	}
	p.feeRateBps = bps
	return nil
}

// FeeRate 当前手续费率（基点）
func (p *Platform) FeeRate() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.feeRateBps
}

// Owner 平台所有者地址
func (p *Platform) Owner() string {
	return p.owner
}

// DrainEvents 取走并清空已累积的状态变更事件
func (p *Platform) DrainEvents() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := p.events
	p.events = nil
	return events
}
