package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignLogic 活动快照业务逻辑
type CampaignLogic struct {
	db *gorm.DB
}

// NewCampaignLogic 创建活动快照业务逻辑
func NewCampaignLogic(db *gorm.DB) *CampaignLogic {
	return &CampaignLogic{db: db}
}

// SyncSnapshot 将核心的活动快照同步到数据库（存在则更新）
func (l *CampaignLogic) SyncSnapshot(info escrow.CampaignInfo, now time.Time) error {
	snapshot := model.CampaignModel{
		Id:               info.ID,
		Title:            info.Title,
		Description:      info.Description,
		TargetAmount:     info.TargetAmount,
		RaisedAmount:     info.RaisedAmount,
		Deadline:         info.Deadline,
		Status:           deriveStatus(info, now),
		FundsWithdrawn:   info.FundsWithdrawn,
		ContributorCount: info.ContributorCount,
		CreatorAddress:   info.Creator,
	}

	if err := l.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"raised_amount", "status", "funds_withdrawn", "contributor_count", "updated_at",
		}),
	}).Create(&snapshot).Error; err != nil {
		return fmt.Errorf("同步活动快照失败: %w", err)
	}
	return nil
}

// deriveStatus 从核心快照推导展示用状态
func deriveStatus(info escrow.CampaignInfo, now time.Time) model.CampaignStatus {
	switch {
	case info.FundsWithdrawn:
		return model.CampaignStatusWithdrawn
	case !info.IsActive:
		return model.CampaignStatusDeactivated
	case now.Before(info.Deadline):
		return model.CampaignStatusActive
	case info.RaisedAmount >= info.TargetAmount:
		return model.CampaignStatusSuccess
	default:
		return model.CampaignStatusFailed
	}
}

// GetCampaigns 获取活动快照列表
func (l *CampaignLogic) GetCampaigns(status string, page, pageSize int) ([]model.CampaignModel, int64, error) {
	var campaigns []model.CampaignModel
	var total int64

	query := l.db.Model(&model.CampaignModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("id DESC").
		Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// GetCampaign 获取单个活动快照
func (l *CampaignLogic) GetCampaign(id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := l.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("活动快照不存在")
		}
		return nil, fmt.Errorf("获取活动快照失败: %w", err)
	}
	return &campaign, nil
}
