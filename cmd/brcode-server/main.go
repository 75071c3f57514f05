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

	"github.com/mkadit/brcode"
	"github.com/mkadit/brcode/internal/config"
	"github.com/mkadit/brcode/internal/httpapi"
	"github.com/mkadit/brcode/internal/logger"
	"github.com/mkadit/brcode/render"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg)
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	defer zapLogger.Sync()

	opts, err := cfg.EncoderOptions()
	if err != nil {
		zapLogger.Fatal("failed to build encoder options", zap.Error(err))
	}

	handler := httpapi.NewHandler(brcode.NewEncoder(opts...), render.NewPNG(), cfg.Merchant, zapLogger)

	server := &http.Server{
		Addr:              cfg.App.Port,
		Handler:           handler.Router(cfg.App.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLogger.Info("http server listening", zap.String("addr", cfg.App.Port), zap.String("env", cfg.App.Env))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("waiting for pending requests to finish")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(cfg.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("server stopped")
}
