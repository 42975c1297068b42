package task

import (
	"time"

	"github.com/blues/els/internal/config"
	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/logger"
	"github.com/blues/els/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CampaignSyncJob 活动快照同步任务
//
// 内存核心是权威数据源，这里把每个活动的快照周期性写入数据库，
// 过期引起的状态变化（active -> success/failed）也在此时落库
type CampaignSyncJob struct {
	platform      *escrow.Platform
	config        *config.Config
	campaignLogic *logic.CampaignLogic
}

// NewCampaignSyncJob 创建活动快照同步任务
func NewCampaignSyncJob(platform *escrow.Platform, db *gorm.DB, cfg *config.Config) *CampaignSyncJob {
	return &CampaignSyncJob{
		platform:      platform,
		config:        cfg,
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// GetName 获取任务名称
func (j *CampaignSyncJob) GetName() string {
	return "campaign_snapshot_syncer"
}

// GetSchedule 获取调度配置
func (j *CampaignSyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignSyncJob) Execute() {
	now := time.Now()
	campaigns := j.platform.Campaigns()

	syncedCount := 0
	for _, info := range campaigns {
		if err := j.campaignLogic.SyncSnapshot(info, now); err != nil {
			logger.Error("Failed to sync campaign %d snapshot: %v", info.ID, err)
			continue
		}
		syncedCount++
	}

	if syncedCount > 0 {
		logger.Debug("Campaign snapshot sync completed. Synced %d campaigns", syncedCount)
	}
}
