package model

import (
	"time"
)

// CampaignModel 活动快照
//
// 内存核心是权威数据源，这里只是供审计与查询的落库副本，
// 由后台任务周期性同步
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// 众筹信息
	TargetAmount int64 `json:"target_amount" gorm:"not null"`
	RaisedAmount int64 `json:"raised_amount" gorm:"default:0"`

	// 时间信息
	Deadline time.Time `json:"deadline" gorm:"not null"`

	// 状态
	Status           CampaignStatus `json:"status" gorm:"default:'active'"`
	FundsWithdrawn   bool           `json:"funds_withdrawn" gorm:"default:false"`
	ContributorCount int            `json:"contributor_count" gorm:"default:0"`

	// 创建者信息
	CreatorAddress string `json:"creator_address" gorm:"not null"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusActive      CampaignStatus = "active"      // 进行中
	CampaignStatusSuccess     CampaignStatus = "success"     // 已达标
	CampaignStatusFailed      CampaignStatus = "failed"      // 未达标
	CampaignStatusWithdrawn   CampaignStatus = "withdrawn"   // 已提现
	CampaignStatusDeactivated CampaignStatus = "deactivated" // 已停用
)

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
