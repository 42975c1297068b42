package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 活动相关接口
type CampaignHandler struct {
	platform          *escrow.Platform
	contributionLogic *logic.ContributionRecordLogic
}

func NewCampaignHandler(platform *escrow.Platform, db *gorm.DB) *CampaignHandler {
	return &CampaignHandler{
		platform:          platform,
		contributionLogic: logic.NewContributionRecordLogic(db),
	}
}

// campaignID 解析路径里的活动ID
func campaignID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return 0, false
	}
	return id, true
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.platform.CreateCampaign(callerAddress(c), req.Title, req.Description, req.TargetAmount, req.DurationDays)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{"id": id})
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", gin.H{"campaigns": h.platform.Campaigns()})
}

// GetCampaign 获取单个活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	info, err := h.platform.GetCampaign(id)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}

	successful, _ := h.platform.IsSuccessful(id)
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaign":      info,
		"is_successful": successful,
	})
}

// GetCampaignContributors 获取活动出资人列表
func (h *CampaignHandler) GetCampaignContributors(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	contributors, err := h.platform.Contributors(id)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"contributors": contributors})
}

// GetCampaignHistory 获取活动出资流水
func (h *CampaignHandler) GetCampaignHistory(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	history, err := h.platform.ContributionHistory(id)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"history": history})
}

// GetCampaignContributions 获取活动出资记录（落库副本，分页）
func (h *CampaignHandler) GetCampaignContributions(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	records, total, err := h.contributionLogic.GetCampaignContributions(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"contributions": records,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

// GetCampaignStats 获取活动出资统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	// 先确认活动存在
	if _, err := h.platform.GetCampaign(id); err != nil {
		CoreErrorResponse(c, err)
		return
	}

	stats, err := h.contributionLogic.GetContributionStats(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "", stats)
}

// DeactivateCampaign 平台所有者停用活动
func (h *CampaignHandler) DeactivateCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	if err := h.platform.Deactivate(callerAddress(c), id); err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "活动已停用", nil)
}
