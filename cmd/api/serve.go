package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "eatwise/docs"
	"eatwise/internal/archiver"
	"eatwise/internal/assistant"
	"eatwise/internal/auth"
	"eatwise/internal/config"
	"eatwise/internal/handler"
	"eatwise/internal/llm"
	"eatwise/internal/logging"
	"eatwise/internal/ocr/tesseract"
	"eatwise/internal/router"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var configPath string

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (default $EATWISE_CONFIG)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("database ready", zap.String("path", cfg.Database.Path))

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("init token issuer: %w", err)
	}

	completer, err := llm.New(cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("init llm client: %w", err)
	}
	if _, ok := completer.(llm.Unavailable); ok {
		logger.Warn("no LLM API key configured, AI routes will serve demo replies")
	}
	engine := tesseract.New(cfg.OCR.Languages, cfg.OCR.PSM)
	svc := assistant.New(completer, engine, store, cfg.OCR.Languages, logger)

	var images handler.ImageArchive
	if cfg.Database.ImageDir != "" {
		a, err := archiver.New(cfg.Database.ImageDir)
		if err != nil {
			return err
		}
		images = a
	}
	h := handler.New(store, issuer, svc, images, cfg.Server.MaxUploadBytes)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(router.Deps{Config: cfg, Handler: h, Issuer: issuer, DB: store, Logger: logger})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
