package escrow

import (
	"fmt"
	"time"
)

// 活动时长限制（天）
const (
	minDurationDays = 1
	maxDurationDays = 365
)

// Campaign 众筹活动实体
//
// TargetAmount 与 Deadline 创建后不可变更；RaisedAmount 只被
// 出资与退款操作改动，任何时刻等于台账内未退余额之和
type Campaign struct {
	ID             int64
	Creator        string
	Title          string
	Description    string
	TargetAmount   int64
	RaisedAmount   int64
	Deadline       time.Time
	CreatedAt      time.Time
	IsActive       bool
	FundsWithdrawn bool

	ledger *ContributionLedger
}

// CampaignInfo 活动快照，供查询接口返回
type CampaignInfo struct {
	ID               int64     `json:"id"`
	Creator          string    `json:"creator"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	TargetAmount     int64     `json:"target_amount"`
	RaisedAmount     int64     `json:"raised_amount"`
	Deadline         time.Time `json:"deadline"`
	CreatedAt        time.Time `json:"created_at"`
	IsActive         bool      `json:"is_active"`
	FundsWithdrawn   bool      `json:"funds_withdrawn"`
	ContributorCount int       `json:"contributor_count"`
}

func (c *Campaign) info() CampaignInfo {
	return CampaignInfo{
		ID:               c.ID,
		Creator:          c.Creator,
		Title:            c.Title,
		Description:      c.Description,
		TargetAmount:     c.TargetAmount,
		RaisedAmount:     c.RaisedAmount,
		Deadline:         c.Deadline,
		CreatedAt:        c.CreatedAt,
		IsActive:         c.IsActive,
		FundsWithdrawn:   c.FundsWithdrawn,
		ContributorCount: len(c.ledger.contributors),
	}
}

// CreateCampaign 创建众筹活动，返回顺序分配的活动ID
func (p *Platform) CreateCampaign(caller, title, description string, targetAmount int64, durationDays int) (int64, error) {
	// 验证活动数据
	if caller == "" {
		return 0, fmt.Errorf("%w: 创建者地址不能为空", ErrInvalidInput)
	}
	if title == "" {
		return 0, fmt.Errorf("%w: 活动标题不能为空", ErrInvalidInput)
	}
	if description == "" {
		return 0, fmt.Errorf("%w: 活动描述不能为空", ErrInvalidInput)
	}
	if targetAmount <= 0 {
		return 0, fmt.Errorf("%w: 目标金额必须大于0", ErrInvalidInput)
	}
	if durationDays < minDurationDays || durationDays > maxDurationDays {
		return 0, fmt.Errorf("%w: 活动时长必须在 %d-%d 天之间", ErrInvalidInput, minDurationDays, maxDurationDays)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	campaign := &Campaign{
		ID:           p.counter + 1,
		Creator:      caller,
		Title:        title,
		Description:  description,
		TargetAmount: targetAmount,
		Deadline:     now.Add(time.Duration(durationDays) * 24 * time.Hour),
		CreatedAt:    now,
		IsActive:     true,
		ledger:       newContributionLedger(),
	}
	p.counter++
	p.campaigns = append(p.campaigns, campaign)

	p.emit(Event{
		Type:       EventCampaignCreated,
		CampaignID: campaign.ID,
		Actor:      campaign.Creator,
		Title:      campaign.Title,
		Target:     campaign.TargetAmount,
		Deadline:   campaign.Deadline,
		Time:       now,
	})

	return campaign.ID, nil
}

// Contribute 向活动出资
//
// 这是资金进入系统的唯一入口：台账余额、活动已筹金额与平台
// 累计金额在同一临界区内一起更新，不存在只改其一的中间状态
func (p *Platform) Contribute(id int64, caller string, amount int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return err
	}

	now := p.clock()
	if !campaign.IsActive {
		return fmt.Errorf("%w: 活动已停用", ErrInvalidState)
	}
	if !now.Before(campaign.Deadline) {
		return fmt.Errorf("%w: 活动已到截止时间", ErrInvalidState)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: 出资金额必须大于0", ErrInvalidInput)
	}
	if caller == campaign.Creator {
		return fmt.Errorf("%w: 创建者不能给自己的活动出资", ErrUnauthorized)
	}

	campaign.ledger.credit(caller, amount, now)
	campaign.RaisedAmount += amount
	p.totalRaised += amount

	p.emit(Event{
		Type:       EventContributionMade,
		CampaignID: campaign.ID,
		Actor:      caller,
		Amount:     amount,
		Time:       now,
	})

	return nil
}
