package logic

import (
	"encoding/json"
	"fmt"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/model"
	"gorm.io/gorm"
)

// EventLogic 事件归档业务逻辑
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件归档业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// Archive 批量归档核心产出的状态变更事件
func (l *EventLogic) Archive(events []escrow.Event) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]model.EventModel, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("序列化事件失败: %w", err)
		}
		records = append(records, model.EventModel{
			CampaignId: ev.CampaignID,
			EventType:  ev.Type,
			Data:       string(data),
			EventTime:  ev.Time,
		})
	}

	if err := l.db.Create(&records).Error; err != nil {
		return fmt.Errorf("归档事件失败: %w", err)
	}
	return nil
}

// GetCampaignEvents 获取活动的事件归档
func (l *EventLogic) GetCampaignEvents(campaignId int64, page, pageSize int) ([]model.EventModel, int64, error) {
	var records []model.EventModel
	var total int64

	// 获取总数
	if err := l.db.Model(&model.EventModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := l.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("event_time DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
