package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-audit/core/loader"
	"inventory-audit/core/logger"
	"inventory-audit/core/metrics"
	"inventory-audit/core/middleware/rayid"
	"inventory-audit/feature/audit"
	"inventory-audit/feature/employee"
	"inventory-audit/feature/equipment"
	"inventory-audit/feature/integrity"
	"inventory-audit/feature/workplace"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "inventory-audit/docs/swagger"
)

// @title Inventory Audit API
// @version 1.0
// @description API for the equipment catalog and inventory audits.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory audit server",
	Long:  `Migrates the schema, starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.close()

		logg := rt.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request completed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		var m *metrics.Metrics
		if rt.cfg.Server.Metrics {
			m = metrics.New()
			app.Use(m.Middleware())
			app.Get("/metrics", m.Handler())
		}

		if rt.cfg.Server.Swagger {
			app.Get("/swagger/*", swagger.HandlerDefault)
		}

		app.Get("/health", func(c *fiber.Ctx) error {
			sqlDB, err := rt.db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Context())
			}
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
			}
			return c.JSON(fiber.Map{"status": "ok"})
		})

		equipmentFeature := equipment.NewFeature(rt.db, logg)

		mgr := loader.NewManager(logg)
		mgr.Register(equipmentFeature)
		mgr.Register(employee.NewFeature(rt.db, logg))
		mgr.Register(workplace.NewFeature(rt.db, logg))
		mgr.Register(audit.NewFeature(rt.auditService(equipmentFeature.Service(), m)))
		mgr.Register(integrity.NewFeature(rt.db, rt.store, rt.cfg.Storage, logg))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			addr := rt.cfg.Server.Address()
			logg.Info("Starting server", zap.String("address", addr))
			errCh <- app.Listen(addr)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}

		logg.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(ctx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
