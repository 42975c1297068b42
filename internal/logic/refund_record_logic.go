package logic

import (
	"fmt"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/model"
	"gorm.io/gorm"
)

// RefundRecordLogic 退款记录业务逻辑
type RefundRecordLogic struct {
	db *gorm.DB
}

// NewRefundRecordLogic 创建退款记录业务逻辑
func NewRefundRecordLogic(db *gorm.DB) *RefundRecordLogic {
	return &RefundRecordLogic{db: db}
}

// RecordFromEvent 从 RefundIssued 事件落一条退款记录
func (l *RefundRecordLogic) RecordFromEvent(ev escrow.Event) error {
	record := model.RefundRecordModel{
		CampaignId: ev.CampaignID,
		Amount:     ev.Amount,
		Address:    ev.Actor,
		RefundedAt: ev.Time,
	}
	if err := l.db.Create(&record).Error; err != nil {
		return fmt.Errorf("创建退款记录失败: %w", err)
	}
	return nil
}

// GetCampaignRefunds 获取活动的退款记录
func (l *RefundRecordLogic) GetCampaignRefunds(campaignId int64, page, pageSize int) ([]model.RefundRecordModel, int64, error) {
	var records []model.RefundRecordModel
	var total int64

	// 获取总数
	if err := l.db.Model(&model.RefundRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := l.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("refunded_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
