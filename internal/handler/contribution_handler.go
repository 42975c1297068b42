package handler

import (
	"net/http"

	"github.com/blues/els/internal/escrow"
	"github.com/gin-gonic/gin"
)

// ContributionHandler 出资相关接口
type ContributionHandler struct {
	platform *escrow.Platform
}

func NewContributionHandler(platform *escrow.Platform) *ContributionHandler {
	return &ContributionHandler{platform: platform}
}

// Contribute 向活动出资
func (h *ContributionHandler) Contribute(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.platform.Contribute(id, callerAddress(c), req.Amount); err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// GetContribution 查询出资人在活动中的未退余额
func (h *ContributionHandler) GetContribution(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	contributor := c.Param("address")
	balance, err := h.platform.ContributionOf(id, contributor)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaign_id": id,
		"contributor": contributor,
		"amount":      balance,
	})
}
