package escrow

// PlatformStats 平台汇总统计
type PlatformStats struct {
	TotalCampaigns int64 `json:"total_campaigns"`
	TotalRaised    int64 `json:"total_raised"` // 历史累计出资额，退款不扣减
	ActiveCount    int64 `json:"active_count"`
}

// Stats 获取平台汇总统计
//
// ActiveCount 每次全量扫描重新计算而不维护计数器：活动会随时间
// 流逝隐式过期，没有任何写操作发生，缓存计数必然漂移
func (p *Platform) Stats() PlatformStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	stats := PlatformStats{
		TotalCampaigns: p.counter,
		TotalRaised:    p.totalRaised,
	}
	for _, campaign := range p.campaigns {
		if campaign.IsActive && now.Before(campaign.Deadline) {
			stats.ActiveCount++
		}
	}
	return stats
}

// ContributionOf 查询出资人在活动中的未退余额
func (p *Platform) ContributionOf(id int64, contributor string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return 0, err
	}
	return campaign.ledger.BalanceOf(contributor), nil
}

// Contributors 查询活动的出资人列表，按首次出资顺序
func (p *Platform) Contributors(id int64) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return nil, err
	}
	return campaign.ledger.Contributors(), nil
}

// ContributionHistory 查询活动的出资流水
func (p *Platform) ContributionHistory(id int64) ([]ContributionEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return nil, err
	}
	return campaign.ledger.History(), nil
}

// IsSuccessful 活动是否达标（已筹金额不低于目标金额）
func (p *Platform) IsSuccessful(id int64) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return false, err
	}
	return campaign.RaisedAmount >= campaign.TargetAmount, nil
}
