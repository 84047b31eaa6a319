package server

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

	"genai-gateway/internal/builder"
	"genai-gateway/internal/config"
)

// Run は、設定ロード、バリデーション、サーバーのライフサイクル管理を行います。
func Run(ctx context.Context) error {
	envErr := config.LoadDotEnv(os.Getenv("ENV_FILE"))
	cfg := config.LoadConfig()

	// ロガーはここで一度だけ設定します
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	if envErr != nil {
		return envErr
	}
	if err := config.ValidateEssentialConfig(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	container, err := builder.BuildContainer(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}

	// 1. ハンドラーの組み立て
	h, err := builder.BuildHandlers(container)
	if err != nil {
		return fmt.Errorf("failed to build handlers: %w", err)
	}

	// 2. ルーターの構築
	router := NewRouter(container.Config, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serve(srv, cfg.ShutdownTimeout)
}

// serve はサーバーを起動し、SIGINT/SIGTERM を受けたらグレースフルシャットダウンします。
func serve(srv *http.Server, timeout time.Duration) error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("🚀 Server starting...", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-shutdown:
		slog.Info("⚠️ Starting graceful shutdown...")

		if timeout <= 0 {
			timeout = config.DefaultShutdownTimeout
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed, forcing close", "error", err)

			// シャットダウンに失敗した場合は強制的にクローズしてリソースを解放する
			if closeErr := srv.Close(); closeErr != nil {
				return fmt.Errorf("could not stop server: shutdown error: %v, close error: %v", err, closeErr)
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		slog.Info("✅ Server stopped cleanly")
	}

	return nil
}
