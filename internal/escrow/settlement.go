package escrow

import "fmt"

// 结算逻辑：活动到期后唯一一次不可逆的资金归属裁决
//
// 提交先于外部转账：commitWithdraw / commitRefund 在锁内完成全部
// 账务变更并返回后，才向外部转账能力发起调用。转账目标重入
// 平台操作时看到的已是终态，无法借失败或重入重复拿到款项；
// 代价是转账失败后终态标志不回滚，留给人工处置

// Settlement 提现结算结果
type Settlement struct {
	CreatorAmount int64 `json:"creator_amount"`
	FeeAmount     int64 `json:"fee_amount"`
}

// Withdraw 创建者提取达标活动的全部筹款
//
// 手续费 = floor(已筹金额 * 费率 / 10000)，创建者获得剩余部分，
// 两者之和恒等于已筹金额
func (p *Platform) Withdraw(id int64, caller string) (Settlement, error) {
	settlement, creator, err := p.commitWithdraw(id, caller)
	if err != nil {
		return Settlement{}, err
	}

	// 内部状态已提交，开始请求外部转账
	if settlement.FeeAmount > 0 {
		if err := p.transfer.Transfer(p.owner, settlement.FeeAmount); err != nil {
			return Settlement{}, fmt.Errorf("%w: 平台手续费划转: %v", ErrTransferFailed, err)
		}
	}
	if err := p.transfer.Transfer(creator, settlement.CreatorAmount); err != nil {
		return Settlement{}, fmt.Errorf("%w: 创建者提现划转: %v", ErrTransferFailed, err)
	}
	return settlement, nil
}

// commitWithdraw 校验提现条件并提交终态标志，返回结算金额
func (p *Platform) commitWithdraw(id int64, caller string) (Settlement, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return Settlement{}, "", err
	}
	if caller != campaign.Creator {
		return Settlement{}, "", fmt.Errorf("%w: 只有创建者可以提现", ErrUnauthorized)
	}

	now := p.clock()
	if now.Before(campaign.Deadline) {
		return Settlement{}, "", fmt.Errorf("%w: 活动尚未到截止时间", ErrInvalidState)
	}
	if campaign.FundsWithdrawn {
		return Settlement{}, "", fmt.Errorf("%w: 筹款已提取", ErrInvalidState)
	}
	if campaign.RaisedAmount < campaign.TargetAmount {
		return Settlement{}, "", fmt.Errorf("%w: 活动未达标，不能提现", ErrInvalidState)
	}
	if campaign.RaisedAmount == 0 {
		return Settlement{}, "", fmt.Errorf("%w: 活动没有筹到资金", ErrInvalidState)
	}

	raised := campaign.RaisedAmount
	feeAmount := raised * p.feeRateBps / 10000
	settlement := Settlement{
		CreatorAmount: raised - feeAmount,
		FeeAmount:     feeAmount,
	}

	campaign.FundsWithdrawn = true
	campaign.IsActive = false

	p.emit(Event{
		Type:       EventFundsWithdrawn,
		CampaignID: campaign.ID,
		Actor:      campaign.Creator,
		Amount:     raised,
		Time:       now,
	})
	p.emit(Event{
		Type:       EventCampaignStatusChanged,
		CampaignID: campaign.ID,
		IsActive:   false,
		Time:       now,
	})

	return settlement, campaign.Creator, nil
}

// Refund 出资人在活动失败后取回自己的未退余额
//
// 每个出资人单独退款，每份余额只能退一次；返回退款金额
func (p *Platform) Refund(id int64, caller string) (int64, error) {
	amount, err := p.commitRefund(id, caller)
	if err != nil {
		return 0, err
	}

	// 台账已清零，开始请求外部转账
	if err := p.transfer.Transfer(caller, amount); err != nil {
		return 0, fmt.Errorf("%w: 退款划转: %v", ErrTransferFailed, err)
	}
	return amount, nil
}

// commitRefund 校验退款条件并清零出资人余额，返回退款金额
func (p *Platform) commitRefund(id int64, caller string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	campaign, err := p.find(id)
	if err != nil {
		return 0, err
	}

	now := p.clock()
	if now.Before(campaign.Deadline) {
		return 0, fmt.Errorf("%w: 活动尚未到截止时间", ErrInvalidState)
	}
	if campaign.RaisedAmount >= campaign.TargetAmount {
		return 0, fmt.Errorf("%w: 活动已达标，不能退款", ErrInvalidState)
	}
	if campaign.FundsWithdrawn {
		return 0, fmt.Errorf("%w: 筹款已提取", ErrInvalidState)
	}

	amount := campaign.ledger.drain(caller)
	if amount == 0 {
		return 0, fmt.Errorf("%w: 没有可退款的余额", ErrInvalidInput)
	}
	campaign.RaisedAmount -= amount

	p.emit(Event{
		Type:       EventRefundIssued,
		CampaignID: campaign.ID,
		Actor:      caller,
		Amount:     amount,
		Time:       now,
	})

	return amount, nil
}
