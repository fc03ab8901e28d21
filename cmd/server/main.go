package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/a2a"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/app"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/logging"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(logging.RequestLogger(logger), logging.Recovery(logger))

	webHandler := web.NewHandler(application.Service, application.Store, application.Extractor, logger)
	if err := webHandler.Register(router, application.MediaDir); err != nil {
		return err
	}

	a2aHandler := a2a.NewA2AHandler(application.Service, logger)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/campaign", a2aHandler.HandleCampaign)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("campaign generator starting",
			zap.String("addr", srv.Addr),
			zap.String("agent_card", "http://localhost:"+cfg.Port+"/.well-known/agent.json"),
			zap.String("a2a_endpoint", "http://localhost:"+cfg.Port+"/a2a/campaign"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
