package handler

import (
	"net/http"
	"time"

	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/logger"
	"github.com/blues/els/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SettlementHandler 结算相关接口（提现与退款）
type SettlementHandler struct {
	platform        *escrow.Platform
	settlementLogic *logic.SettlementRecordLogic
}

func NewSettlementHandler(platform *escrow.Platform, db *gorm.DB) *SettlementHandler {
	return &SettlementHandler{
		platform:        platform,
		settlementLogic: logic.NewSettlementRecordLogic(db),
	}
}

// Withdraw 创建者提取达标活动的筹款
func (h *SettlementHandler) Withdraw(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	caller := callerAddress(c)
	settlement, err := h.platform.Withdraw(id, caller)
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}

	// 结算记录落库失败只告警，不影响已完成的提现
	if err := h.settlementLogic.RecordSettlement(id, caller, settlement, time.Now()); err != nil {
		logger.Error("Failed to record settlement for campaign %d: %v", id, err)
	}

	SuccessResponse(c, http.StatusOK, "提现成功", settlement)
}

// Refund 出资人取回失败活动中的余额
func (h *SettlementHandler) Refund(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	amount, err := h.platform.Refund(id, callerAddress(c))
	if err != nil {
		CoreErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "退款成功", gin.H{"amount": amount})
}

// GetSettlement 获取活动的结算记录
func (h *SettlementHandler) GetSettlement(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	record, err := h.settlementLogic.GetSettlement(id)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "", record)
}
