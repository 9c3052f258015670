package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hashhost/billing/internal/config"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/provider"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "billing-seed",
		Usage: "Seed billing demo data (payment history and sessions)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Aliases: []string{"d"}, Usage: "Database driver (sqlite/postgres)"},
			&cli.StringFlag{Name: "dsn", Usage: "Database DSN"},
		},
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "Insert the default payment history when the table is empty",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reset", Usage: "Delete existing payment records first"},
				},
				Action: seedHistory,
			},
			{
				Name:  "session",
				Usage: "Create billing sessions and print their ids",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "Number of sessions"},
					&cli.BoolFlag{Name: "without-card", Usage: "Do not seed the default Visa card"},
				},
				Action: seedSessions,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context, overrides ...func(*config.Config)) (*provider.Container, error) {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if c.IsSet("driver") {
		cfg.Database.Driver = c.String("driver")
	}
	if c.IsSet("dsn") {
		cfg.Database.DSN = c.String("dsn")
	}
	// 种子命令不依赖队列
	cfg.Queue.Enabled = false
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return provider.NewContainer(cfg), nil
}

func seedHistory(c *cli.Context) error {
	container, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Bool("reset") {
		if err := models.DB.Where("1 = 1").Delete(&models.PaymentRecord{}).Error; err != nil {
			return fmt.Errorf("failed to reset payment records: %w", err)
		}
		container.PaymentHistoryService.InvalidateSummary(ctx)
	}

	inserted, err := container.PaymentRecordRepo.SeedIfEmpty(models.DefaultPaymentRecords())
	if err != nil {
		return fmt.Errorf("failed to seed payment history: %w", err)
	}
	if inserted > 0 {
		container.PaymentHistoryService.InvalidateSummary(ctx)
	}

	summary, err := container.PaymentHistoryService.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("inserted %d records, %d total, grand total %s\n", inserted, summary.Count, summary.GrandTotal.String())
	return nil
}

func seedSessions(c *cli.Context) error {
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	container, err := setup(c, func(cfg *config.Config) {
		if c.Bool("without-card") {
			cfg.Billing.SeedDefaultCard = false
		}
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	for i := 0; i < count; i++ {
		session, err := container.BillingSessionService.Create(ctx)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		fmt.Println(session.ID)
	}
	return nil
}
