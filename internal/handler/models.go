package handler

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	TargetAmount int64  `json:"target_amount" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// SetFeeRateRequest 调整手续费率请求
type SetFeeRateRequest struct {
	FeeRateBps int64 `json:"fee_rate_bps"`
}
