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

	"github.com/gin-gonic/gin"
	"github.com/shreyansh232/wysa/internal"
	"github.com/shreyansh232/wysa/internal/api"
	"github.com/shreyansh232/wysa/internal/config"
	"github.com/shreyansh232/wysa/internal/service"
	"github.com/shreyansh232/wysa/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	authSvc := service.NewAuthService(repos.Users, []byte(cfg.JWTSecret), cfg.TokenTTL)
	assessSvc := service.NewAssessmentService(repos.Assessments, service.RandomScorer{})
	app := api.NewServer(logger, authSvc, assessSvc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(app, []byte(cfg.JWTSecret)),
	}

	go func() {
		logger.Infof("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := repos.Close(); err != nil {
		logger.Errorf("storage shutdown: %v", err)
	}
}
