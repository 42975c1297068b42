package logic

import (
	"fmt"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/model"
	"gorm.io/gorm"
)

// ContributionRecordLogic 出资记录业务逻辑
type ContributionRecordLogic struct {
	db *gorm.DB
}

// NewContributionRecordLogic 创建出资记录业务逻辑
func NewContributionRecordLogic(db *gorm.DB) *ContributionRecordLogic {
	return &ContributionRecordLogic{db: db}
}

// RecordFromEvent 从 ContributionMade 事件落一条出资记录
func (l *ContributionRecordLogic) RecordFromEvent(ev escrow.Event) error {
	record := model.ContributionRecordModel{
		CampaignId:    ev.CampaignID,
		Amount:        ev.Amount,
		Address:       ev.Actor,
		ContributedAt: ev.Time,
	}
	if err := l.db.Create(&record).Error; err != nil {
		return fmt.Errorf("创建出资记录失败: %w", err)
	}
	return nil
}

// GetCampaignContributions 获取活动的出资记录
func (l *ContributionRecordLogic) GetCampaignContributions(campaignId int64, page, pageSize int) ([]model.ContributionRecordModel, int64, error) {
	var records []model.ContributionRecordModel
	var total int64

	// 获取总数
	if err := l.db.Model(&model.ContributionRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := l.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("contributed_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetContributionStats 获取活动的出资统计信息
func (l *ContributionRecordLogic) GetContributionStats(campaignId int64) (map[string]interface{}, error) {
	var stats struct {
		TotalContributions int64 `json:"total_contributions"`
		TotalAmount        int64 `json:"total_amount"`
		UniqueContributors int64 `json:"unique_contributors"`
	}

	// 总出资笔数
	if err := l.db.Model(&model.ContributionRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&stats.TotalContributions).Error; err != nil {
		return nil, fmt.Errorf("获取总出资笔数失败: %w", err)
	}

	// 总出资金额
	if err := l.db.Model(&model.ContributionRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error; err != nil {
		return nil, fmt.Errorf("获取总出资金额失败: %w", err)
	}

	// 去重后的出资人数量
	if err := l.db.Model(&model.ContributionRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Select("COUNT(DISTINCT address)").
		Scan(&stats.UniqueContributors).Error; err != nil {
		return nil, fmt.Errorf("获取出资人数量失败: %w", err)
	}

	averageAmount := int64(0)
	if stats.TotalContributions > 0 {
		averageAmount = stats.TotalAmount / stats.TotalContributions
	}

	return map[string]interface{}{
		"total_contributions": stats.TotalContributions,
		"total_amount":        stats.TotalAmount,
		"unique_contributors": stats.UniqueContributors,
		"average_amount":      averageAmount,
	}, nil
}
