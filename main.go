package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saritsop/portfolio/content"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	logger := newLogger(parseLogLevel(cfg.LogLevel), cfg.LogFormat, os.Stdout)
	ctx, stop := signal.NotifyContext(ctxlog.With(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	site, err := content.Load()
	if err != nil {
		return err
	}

	var m mailer
	if cfg.SMTP.Enabled() {
		m = newSMTPMailer(cfg.SMTP)
	} else {
		logger.Warn("SMTP credentials not configured, contact form disabled")
	}

	srv, err := newServer(cfg, site, m)
	if err != nil {
		return err
	}
	go srv.pages.run(ctx, cfg.SweepInterval)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting portfolio server", "config", cfg)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- goerr.Wrap(err, "listen and serve", goerr.V("addr", httpServer.Addr))
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "shutdown")
	}
	return nil
}
