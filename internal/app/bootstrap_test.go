package app

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/hashhost/billing/internal/config"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBootstrapTest(t *testing.T) (*config.Config, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()
	dsn := fmt.Sprintf("file:app_bootstrap_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.MigrateTargets()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		Billing: config.BillingConfig{Currency: "USD", SessionIdleMinutes: 120},
	}
	return cfg, provider.NewContainerWithDB(cfg, db, nil)
}

func TestBuildRunnerModes(t *testing.T) {
	cfg, container := setupBootstrapTest(t)

	runner, err := buildRunnerWithContainer(cfg, ModeAPI, container)
	if err != nil {
		t.Fatalf("api mode failed: %v", err)
	}
	if got := runner.Names(); !reflect.DeepEqual(got, []string{"http"}) {
		t.Fatalf("api mode services: %v", got)
	}

	runner, err = buildRunnerWithContainer(cfg, ModeAll, container)
	if err != nil {
		t.Fatalf("all mode failed: %v", err)
	}
	if got := runner.Names(); !reflect.DeepEqual(got, []string{"http", "session_janitor"}) {
		t.Fatalf("all mode services: %v", got)
	}
}

func TestBuildRunnerWorkerModeRequiresQueue(t *testing.T) {
	cfg, container := setupBootstrapTest(t)
	if _, err := buildRunnerWithContainer(cfg, ModeWorker, container); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	cfg, _ := setupBootstrapTest(t)
	if _, err := BuildRunner(cfg, "cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
}
