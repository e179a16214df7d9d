package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/ctxlog"
	"golang.org/x/term"
)

// newLogger writes colored console output to terminals and JSON
// everywhere else, unless format forces one of them.
func newLogger(level slog.Level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	console := format == "console"
	if format == "auto" || format == "" {
		if f, ok := w.(*os.File); ok {
			console = term.IsTerminal(int(f.Fd()))
		}
	}

	if console {
		return slog.New(clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// requestLogger puts logger into the request context and logs each
// request. Client addresses are logged hashed, and not at all for
// clients sending Do Not Track.
func requestLogger(logger *slog.Logger, ips *ipHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxlog.With(c.Request.Context(), logger))
		start := time.Now()

		c.Next()

		// Static files are noisy and tell us nothing.
		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			return
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		}
		if c.GetHeader("DNT") != "1" {
			attrs = append(attrs, "client", ips.hash(c.ClientIP()))
		}
		logger.Info("HTTP request", attrs...)
	}
}
