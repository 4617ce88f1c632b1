package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovenandcrumb/bakehouse/app/api"
	"github.com/ovenandcrumb/bakehouse/app/cfg"
	"github.com/ovenandcrumb/bakehouse/app/content"
	"github.com/ovenandcrumb/bakehouse/app/database"
	"github.com/ovenandcrumb/bakehouse/app/email"
	"github.com/ovenandcrumb/bakehouse/app/merchant"
	"github.com/ovenandcrumb/bakehouse/app/orders"
	"github.com/ovenandcrumb/bakehouse/app/sitemap"
	"github.com/ovenandcrumb/bakehouse/app/tasks"
)

func main() {
	// A local .env is optional; the environment wins in production.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Bakehouse server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	snapshots := database.NewSnapshotRepo(db)

	cmsClient := content.NewClient(content.ClientOptions{
		ProjectID:  appCfg.CMSProjectID,
		Dataset:    appCfg.CMSDataset,
		APIVersion: appCfg.CMSAPIVersion,
		Token:      appCfg.CMSToken,
		BaseURL:    appCfg.CMSBaseUrl,
		UserAgent:  appCfg.UserAgent,
	})

	sitemapBuilder, err := sitemap.NewBuilder(cmsClient, appCfg.BaseUrl)
	if err != nil {
		log.Fatalf("Failed to load route catalog: %v", err)
	}

	imageURLs := content.NewImageURLBuilder(appCfg.CMSProjectID, appCfg.CMSDataset)
	resolver := merchant.NewImageResolver(imageURLs, appCfg.BaseUrl+"/images/product-placeholder.jpg")
	feedGenerator := merchant.NewGenerator(cmsClient, resolver, appCfg.BaseUrl)

	emailClient := email.NewClient(appCfg.EmailBaseUrl, appCfg.EmailAPIKey, appCfg.EmailFrom, appCfg.UserAgent)
	orderService := orders.NewService(cmsClient, emailClient, appCfg.AdminPassword, appCfg.AdminEmail)

	slog.Info("Starting snapshot warmer", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.RefreshInterval)
	scheduler := tasks.NewScheduler(snapshots, []tasks.NamedRenderer{
		{Name: api.SitemapDocument, Renderer: sitemapBuilder},
		{Name: api.MerchantFeedDocument, Renderer: feedGenerator},
	})
	scheduler.Start()
	defer scheduler.Stop()

	maxAge := time.Duration(appCfg.SnapshotMaxAge) * time.Second
	handler := api.NewHandler(sitemapBuilder, feedGenerator, snapshots, orderService, maxAge, appCfg.BaseUrl)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Bakehouse server shutdown complete")
}
