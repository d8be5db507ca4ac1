package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/provider"
	httptransport "github.com/beplic/chatapi-dispatcher/internal/dispatcher/transport/http"
	"github.com/beplic/chatapi-dispatcher/internal/platform/config"
	"github.com/beplic/chatapi-dispatcher/internal/platform/logger"
	"github.com/beplic/chatapi-dispatcher/internal/platform/messagebroker"
	"github.com/beplic/chatapi-dispatcher/internal/platform/registry"
)

const appName = "chat-api-dispatcher"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "service", appName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLogger.Info("Chat API dispatcher starting...", "port", cfg.ServerPort, "prod", cfg.Prod)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events provider.EventPublisher
	if cfg.NATSUrl != "" {
		natsClient, err := messagebroker.NewNatsClient(cfg.NATSUrl, appName, appLogger)
		if err != nil {
			// The event feed is advisory; the dispatcher runs without it.
			appLogger.Error("Failed to connect to NATS, dispatch events disabled", "error", err)
		} else {
			defer natsClient.Close()
			events = natsClient
			appLogger.Info("Connected to NATS", "url", cfg.NATSUrl)
		}
	}

	if cfg.Prod {
		eureka := registry.NewEurekaClient(appLogger, registry.Options{
			ServerURL:  cfg.EurekaServer,
			AppName:    appName,
			Username:   cfg.EurekaAuthUser,
			Password:   cfg.EurekaAuthPassword,
			InstanceID: cfg.InstanceID,
			Context:    cfg.EurekaContext,
			Port:       cfg.InstancePort,
		}, nil)
		go eureka.Run(ctx, 30*time.Second)
	}

	validate := validator.New()
	if err := provider.RegisterValidations(validate); err != nil {
		appLogger.Error("Failed to register validations", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second}
	chatAPI, err := provider.NewChatAPIProvider(appLogger, cfg.APIURL, validate, httpClient, events)
	if err != nil {
		appLogger.Error("Failed to initialize Chat API provider", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(chatAPI, appLogger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
	appLogger.Info("Dispatcher stopped")
}
