package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"budgetapp/internal/cache"
	"budgetapp/internal/cli"
	"budgetapp/internal/config"
	"budgetapp/internal/core"
	"budgetapp/internal/expand"
	apphttp "budgetapp/internal/http"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	provider := expand.NewProvider(cfg.OpenRouterBaseURL, cfg.AITimeout)
	expansions := cache.NewStore[*core.Expansion]()
	expander := expand.NewService(expansions, provider, config.ReadCredentials)

	srv := apphttp.NewServer(":"+cfg.Port, expander)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	keyPresent, model := expander.Status()
	logger.Info("Starting budget app server", "port", cfg.Port, "model", model, "key_present", keyPresent)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
