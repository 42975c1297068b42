package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/model"
	"gorm.io/gorm"
)

// SettlementRecordLogic 结算记录业务逻辑
type SettlementRecordLogic struct {
	db *gorm.DB
}

// NewSettlementRecordLogic 创建结算记录业务逻辑
func NewSettlementRecordLogic(db *gorm.DB) *SettlementRecordLogic {
	return &SettlementRecordLogic{db: db}
}

// RecordSettlement 记录一次提现结算
//
// 每个活动只会成功提现一次，campaign_id 上有唯一索引兜底
func (l *SettlementRecordLogic) RecordSettlement(campaignId int64, creator string, settlement escrow.Settlement, settledAt time.Time) error {
	record := model.SettlementRecordModel{
		CampaignId:     campaignId,
		TotalAmount:    settlement.CreatorAmount + settlement.FeeAmount,
		PlatformFee:    settlement.FeeAmount,
		CreatorAmount:  settlement.CreatorAmount,
		CreatorAddress: creator,
		SettledAt:      settledAt,
	}
	if err := l.db.Create(&record).Error; err != nil {
		return fmt.Errorf("创建结算记录失败: %w", err)
	}
	return nil
}

// GetSettlement 获取活动的结算记录
func (l *SettlementRecordLogic) GetSettlement(campaignId int64) (*model.SettlementRecordModel, error) {
	var record model.SettlementRecordModel
	if err := l.db.Where("campaign_id = ?", campaignId).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("结算记录不存在")
		}
		return nil, fmt.Errorf("获取结算记录失败: %w", err)
	}
	return &record, nil
}
