package model

import (
	"time"
)

// EventModel 状态变更事件归档
//
// 核心以数据形式产出事件流，后台任务周期性取走并落库
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64     `json:"campaign_id" gorm:"index"`
	EventType  string    `json:"event_type" gorm:"not null;index"`
	Data       string    `json:"data" gorm:"type:text"` // 事件全文 JSON
	EventTime  time.Time `json:"event_time" gorm:"not null"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
