// Package main is the entry point for the API server. It opens the
// configured store backend, rehydrates the state and serves the HTTP API
// until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"pixfacil/internal/config"
	"pixfacil/internal/handlers"
	"pixfacil/internal/middleware"
	"pixfacil/internal/repositories"
	"pixfacil/internal/routes"
	"pixfacil/internal/services/brcode"
	"pixfacil/internal/services/payment"
	"pixfacil/internal/services/syncer"
	"pixfacil/internal/store"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := repositories.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Printf("⚠️ Failed to close store backend: %v", err)
		}
	}()

	st := store.New(blobs, store.WithName(cfg.StoreName))
	if err := st.Load(ctx); err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}
	log.Printf("✅ State loaded from %s backend: %d keys, %d codes", cfg.StoreBackend, len(st.Keys()), len(st.History()))

	client := syncer.NewClient(syncer.Config{BaseURL: cfg.SyncBaseURL}, blobs)
	monitor := syncer.NewMonitor(st, client, syncer.MonitorConfig{
		Interval:   cfg.SyncInterval,
		RetryCount: cfg.SyncRetries,
	})
	if client.Remote() {
		go monitor.Run(ctx)
	}

	encoder := brcode.NewEncoder(brcode.Config{
		RenderURL: cfg.QRRenderURL,
		Size:      cfg.QRSize,
		City:      cfg.MerchantCity,
	})

	checks := map[string]handlers.Checker{}
	if hc, ok := blobs.(repositories.HealthChecker); ok {
		checks[cfg.StoreBackend] = hc.HealthCheck
	}

	h := handlers.New(handlers.Deps{
		Payments: payment.NewService(st, encoder),
		Store:    st,
		Backup:   client,
		Sync:     monitor,
		QRSize:   encoder.Size(),
		Checks:   checks,
	})

	app := fiber.New(fiber.Config{
		AppName:               "pixfacil",
		DisableStartupMessage: config.IsProduction(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/codes", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	auth := middleware.NewAuthMiddleware(cfg.JWTSecret)
	if !auth.Enabled() {
		log.Println("⚠️ JWT_SECRET not set, /api is open")
	}
	routes.SetupRoutes(app, h, auth)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil && !strings.Contains(err.Error(), "server closed") {
			log.Printf("⚠️ Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("⚠️ Failed to stop HTTP server: %v", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if cfg.BackupOnClose {
		if err := client.Backup(flushCtx, st.Snapshot()); err != nil {
			log.Printf("⚠️ Backup on close failed: %v", err)
		}
	}
	if err := st.Close(flushCtx); err != nil {
		log.Printf("⚠️ Failed to flush state: %v", err)
	}
	log.Println("✅ State flushed")
}
