package model

import (
	"time"
)

// RefundRecordModel 退款记录
type RefundRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64     `json:"campaign_id" gorm:"not null;index"`
	Amount     int64     `json:"amount" gorm:"not null"`
	Address    string    `json:"address" gorm:"not null;index"`
	RefundedAt time.Time `json:"refunded_at" gorm:"not null"`
}

// TableName 自定义表名
func (RefundRecordModel) TableName() string {
	return "refund_record"
}
