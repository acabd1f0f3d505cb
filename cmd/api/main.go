package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"coinwatch/internal/bootstrap"
	"coinwatch/internal/infrastructure/config"
	"coinwatch/internal/infrastructure/logx"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logx.L().Fatal("init api", zap.Error(err))
	}
	defer cleanup()
	logger := logx.L()

	if app.Poller != nil {
		// Shared broadcast mode: one upstream poll feeds every open stream.
		go app.Poller.Start(ctx)
	}

	port := app.Config.Port
	if port == "" {
		port = config.DefaultHTTPPort
	}
	addr := ":" + port
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: config.DefaultReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("server started",
			zap.String("addr", addr),
			zap.String("provider", app.Config.Provider),
			zap.String("storage", app.Config.Storage),
			zap.String("broadcast_mode", app.Config.BroadcastMode),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	// Open event streams observe ctx through BaseContext and return, so
	// Shutdown does not wait on them for the full timeout.
	timeout := app.Config.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
