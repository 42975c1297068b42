package escrow

import "time"

// 事件类型
const (
	EventCampaignCreated       = "CampaignCreated"
	EventContributionMade      = "ContributionMade"
	EventFundsWithdrawn        = "FundsWithdrawn"
	EventRefundIssued          = "RefundIssued"
	EventCampaignStatusChanged = "CampaignStatusChanged"
)

// Event 状态变更事件，每次状态迁移产生一条记录
// 事件只是数据，投递与持久化由外部负责
type Event struct {
	Type       string    `json:"type"`
	CampaignID int64     `json:"campaign_id"`
	Actor      string    `json:"actor,omitempty"`  // 创建者或出资人地址
	Amount     int64     `json:"amount,omitempty"` // 涉及金额
	Title      string    `json:"title,omitempty"`
	Target     int64     `json:"target,omitempty"`
	Deadline   time.Time `json:"deadline,omitempty"`
	IsActive   bool      `json:"is_active,omitempty"`
	Time       time.Time `json:"time"`
}
