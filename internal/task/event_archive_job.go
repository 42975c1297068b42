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

// EventArchiveJob 事件归档任务
//
// 周期性取走核心累积的状态变更事件，整体归档到事件表，
// 并把出资/退款事件展开成对应的流水记录
type EventArchiveJob struct {
	platform          *escrow.Platform
	config            *config.Config
	eventLogic        *logic.EventLogic
	contributionLogic *logic.ContributionRecordLogic
	refundLogic       *logic.RefundRecordLogic
}

// NewEventArchiveJob 创建事件归档任务
func NewEventArchiveJob(platform *escrow.Platform, db *gorm.DB, cfg *config.Config) *EventArchiveJob {
	return &EventArchiveJob{
		platform:          platform,
		config:            cfg,
		eventLogic:        logic.NewEventLogic(db),
		contributionLogic: logic.NewContributionRecordLogic(db),
		refundLogic:       logic.NewRefundRecordLogic(db),
	}
}

// GetName 获取任务名称
func (j *EventArchiveJob) GetName() string {
	return "event_archiver"
}

// GetSchedule 获取调度配置
func (j *EventArchiveJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *EventArchiveJob) Execute() {
	events := j.platform.DrainEvents()
	if len(events) == 0 {
		return
	}

	if err := j.eventLogic.Archive(events); err != nil {
		logger.Error("Failed to archive %d events: %v", len(events), err)
	}

	for _, ev := range events {
		var err error
		switch ev.Type {
		case escrow.EventContributionMade:
			err = j.contributionLogic.RecordFromEvent(ev)
		case escrow.EventRefundIssued:
			err = j.refundLogic.RecordFromEvent(ev)
		}
		if err != nil {
			logger.Error("Failed to record %s event for campaign %d: %v", ev.Type, ev.CampaignID, err)
		}
	}

	logger.Info("Archived %d events", len(events))
}
