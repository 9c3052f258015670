package provider

import (
	"context"
	"time"

	"github.com/hashhost/billing/internal/cache"
	"github.com/hashhost/billing/internal/config"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/queue"
	"github.com/hashhost/billing/internal/repository"
	"github.com/hashhost/billing/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	BillingSessionRepo repository.BillingSessionRepository
	SavedCardRepo      repository.SavedCardRepository
	PaymentRecordRepo  repository.PaymentRecordRepository

	// Services
	PaymentMethodCatalog   *service.PaymentMethodCatalog
	NotificationPublisher  *service.NotificationPublisher
	SavedCardService       *service.SavedCardService
	MethodSelectionService *service.MethodSelectionService
	PaymentHistoryService  *service.PaymentHistoryService
	BillingSessionService  *service.BillingSessionService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 使用指定数据库与队列客户端初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.BillingSessionRepo = repository.NewBillingSessionRepository(db)
	c.SavedCardRepo = repository.NewSavedCardRepository(db)
	c.PaymentRecordRepo = repository.NewPaymentRecordRepository(db)
}

func (c *Container) initServices() {
	billing := c.Config.Billing

	c.PaymentMethodCatalog = service.NewPaymentMethodCatalog()
	c.NotificationPublisher = service.NewNotificationPublisher(c.QueueClient)
	c.SavedCardService = service.NewSavedCardService(
		c.SavedCardRepo,
		c.BillingSessionRepo,
		c.PaymentMethodCatalog,
		c.NotificationPublisher,
	)
	c.MethodSelectionService = service.NewMethodSelectionService(
		c.BillingSessionRepo,
		c.PaymentMethodCatalog,
		c.SavedCardService,
		c.NotificationPublisher,
	)
	c.PaymentHistoryService = service.NewPaymentHistoryService(
		c.PaymentRecordRepo,
		time.Duration(billing.HistoryCacheSeconds)*time.Second,
	)
	c.BillingSessionService = service.NewBillingSessionService(
		c.BillingSessionRepo,
		c.SavedCardRepo,
		c.PaymentMethodCatalog,
		c.SavedCardService,
		c.MethodSelectionService,
		service.BillingSessionOptions{
			SeedDefaultCard: billing.SeedDefaultCard,
			IdleTimeout:     time.Duration(billing.SessionIdleMinutes) * time.Minute,
		},
	)
}

// SeedHistory 按配置写入历史支付记录种子
func (c *Container) SeedHistory() error {
	if !c.Config.Billing.SeedHistory {
		return nil
	}
	inserted, err := c.PaymentRecordRepo.SeedIfEmpty(models.DefaultPaymentRecords())
	if err != nil {
		return err
	}
	if inserted > 0 {
		logger.Infow("billing_history_seeded", "inserted", inserted)
		c.PaymentHistoryService.InvalidateSummary(context.Background())
	}
	return nil
}
