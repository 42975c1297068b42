package router

import (
	"github.com/blues/els/internal/config"
	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(platform *escrow.Platform, db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "escrow-ledger-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(platform, db)
		contributionHandler := handler.NewContributionHandler(platform)
		settlementHandler := handler.NewSettlementHandler(platform, db)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.DELETE("/:id", campaignHandler.DeactivateCampaign)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:id/contributors", campaignHandler.GetCampaignContributors)
			campaigns.GET("/:id/history", campaignHandler.GetCampaignHistory)
			campaigns.GET("/:id/contributions", campaignHandler.GetCampaignContributions)
			campaigns.GET("/:id/contributions/:address", contributionHandler.GetContribution)
			campaigns.POST("/:id/contributions", contributionHandler.Contribute)
			campaigns.POST("/:id/withdraw", settlementHandler.Withdraw)
			campaigns.POST("/:id/refund", settlementHandler.Refund)
			campaigns.GET("/:id/settlement", settlementHandler.GetSettlement)
		}

		// 平台管理路由
		platformHandler := handler.NewPlatformHandler(platform)
		admin := v1.Group("/platform")
		{
			admin.GET("/stats", platformHandler.GetStats)
			admin.GET("/fee-rate", platformHandler.GetFeeRate)
			admin.PUT("/fee-rate", platformHandler.SetFeeRate)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
