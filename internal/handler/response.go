package handler

import (
	"errors"
	"net/http"

	"github.com/blues/els/internal/escrow"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// CoreErrorResponse 按核心错误分类映射HTTP状态码
func CoreErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, escrow.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, escrow.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, escrow.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, escrow.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, escrow.ErrTransferFailed):
		status = http.StatusBadGateway
	}
	ErrorResponse(c, status, err.Error())
}

// callerAddress 从请求头取调用者身份
//
// 身份认证由外部网关负责，这里只透传不透明的地址串
func callerAddress(c *gin.Context) string {
	return c.GetHeader("X-Caller-Address")
}
