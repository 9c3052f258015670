package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hashhost/billing/internal/config"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/queue"
	"github.com/hashhost/billing/internal/service"

	"github.com/hibiken/asynq"
)

const (
	sessionPurgeInterval = 5 * time.Minute
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = newAsynqLogger()
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// SessionJanitor 定期清理闲置会话
type SessionJanitor struct {
	sessions *service.BillingSessionService
	interval time.Duration
	stop     chan struct{}
}

// NewSessionJanitor 创建会话清理服务
func NewSessionJanitor(sessions *service.BillingSessionService, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = sessionPurgeInterval
	}
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Name 服务名称
func (j *SessionJanitor) Name() string {
	return "session_janitor"
}

// Start 启动清理循环，阻塞直到 ctx 结束或 Stop
func (j *SessionJanitor) Start(ctx context.Context) error {
	if j == nil || j.sessions == nil {
		return errors.New("session janitor not initialized")
	}
	runOnce := func() {
		if _, err := j.sessions.PurgeIdle(ctx, time.Now()); err != nil {
			logger.Warnw("worker_session_purge_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-j.stop:
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}

// Stop 停止清理循环
func (j *SessionJanitor) Stop(ctx context.Context) error {
	if j == nil {
		return nil
	}
	select {
	case <-j.stop:
	default:
		close(j.stop)
	}
	return nil
}
