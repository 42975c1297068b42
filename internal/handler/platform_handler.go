package handler

import (
	"net/http"

	"github.com/blues/els/internal/escrow"
	"github.com/gin-gonic/gin"
)

// PlatformHandler 平台管理接口
type PlatformHandler struct {
	platform *escrow.Platform
}

func NewPlatformHandler(platform *escrow.Platform) *PlatformHandler {
	return &PlatformHandler{platform: platform}
}

// GetStats 获取平台汇总统计
func (h *PlatformHandler) GetStats(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", h.platform.Stats())
}

// GetFeeRate 获取当前手续费率
func (h *PlatformHandler) GetFeeRate(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", gin.H{"fee_rate_bps": h.platform.FeeRate()})
}

// SetFeeRate 平台所有者调整手续费率
func (h *PlatformHandler) SetFeeRate(c *gin.Context) {
	var req SetFeeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.platform.SetFeeRate(callerAddress(c), req.FeeRateBps); err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "手续费率已更新", gin.H{"fee_rate_bps": req.FeeRateBps})
}
