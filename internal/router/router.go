package router

import (
	"fmt"
	"strings"

	"github.com/hashhost/billing/internal/cache"
	"github.com/hashhost/billing/internal/config"
	publichandlers "github.com/hashhost/billing/internal/http/handlers/public"
	"github.com/hashhost/billing/internal/http/response"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	billingHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "billing"
	}
	cardRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:card", redisPrefix),
		WindowSeconds: cfg.Billing.CardRateLimit.WindowSeconds,
		MaxRequests:   cfg.Billing.CardRateLimit.MaxRequests,
	}
	redisClient := cache.Client()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	billing := apiV1.Group("/billing")
	{
		// 无需会话的接口
		billing.GET("/payment-methods", billingHandler.ListPaymentMethods)
		billing.POST("/sessions", billingHandler.CreateBillingSession)
		billing.GET("/history", billingHandler.ListPaymentHistory)
		billing.GET("/history/summary", billingHandler.GetPaymentHistorySummary)
		billing.GET("/history/:id", billingHandler.GetPaymentRecord)
		billing.POST("/history/sort/toggle", billingHandler.ToggleHistorySort)

		// 需要会话的接口
		session := billing.Group("")
		session.Use(BillingSessionMiddleware(c.BillingSessionService))
		{
			session.GET("/session", billingHandler.GetBillingOverview)
			session.GET("/cards", billingHandler.ListCards)
			session.POST("/cards", RateLimitMiddleware(redisClient, cardRule, KeyByBillingSession), billingHandler.AddCard)
			session.DELETE("/cards/:id", billingHandler.RemoveCard)
			session.POST("/cards/:id/default", billingHandler.SetDefaultCard)
			session.GET("/selection", billingHandler.GetSelection)
			session.PUT("/selection", billingHandler.UpdateSelection)
			session.POST("/selection/recurring", billingHandler.SelectRecurring)
			session.POST("/selection/manual", billingHandler.SelectManual)
		}
	}

	return r
}
