package model

import (
	"time"
)

// ContributionRecordModel 出资记录
type ContributionRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId    int64     `json:"campaign_id" gorm:"not null;index"`
	Amount        int64     `json:"amount" gorm:"not null"`
	Address       string    `json:"address" gorm:"not null;index"`
	ContributedAt time.Time `json:"contributed_at" gorm:"not null"`
}

// TableName 自定义表名
func (ContributionRecordModel) TableName() string {
	return "contribution_record"
}
