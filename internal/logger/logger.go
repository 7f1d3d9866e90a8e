// Package logger configures structured logging for the esign gateway.
//
// InitLogger selects the slog handler based on the runtime environment:
// dev and test get a human-readable console handler (tint), prod and
// staging get JSON output suitable for log aggregation.
//
// RequestLogging attaches a request-scoped logger to the request context.
// Handlers retrieve it with ContextRequestLogger and can add attributes to
// the final access log entry with ContextWithLogAttrs.
package logger

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

// LevelNone is above all standard levels and silences the logger
// (used by tests that need a quiet server).
const LevelNone = slog.LevelError + 4

type contextKey int

const requestLogKey contextKey = 0

// requestLog holds the request-scoped logger plus any attributes handlers
// want included in the final access log entry.
type requestLog struct {
	logger *slog.Logger

	mu    sync.Mutex
	attrs []slog.Attr
}

// InitLogger creates the application logger and installs it as the slog default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler

	switch environment {
	case "prod", "staging":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	appLogger := slog.New(handler)
	slog.SetDefault(appLogger)

	return appLogger
}

// ParseLogLevel converts a LOG_LEVEL environment value to a slog.Level.
// Unrecognized values default to info. "none" disables output.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return LevelNone
	default:
		return slog.LevelInfo
	}
}

// RequestLogging returns a middleware that attaches a request-scoped logger
// to the context and writes one access log entry per request.
//
// Register after chi's RequestID middleware so the request id is available.
func RequestLogging(appLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := appLogger.With(
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			rl := &requestLog{logger: reqLogger}
			ctx := context.WithValue(r.Context(), requestLogKey, rl)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			attrs := []slog.Attr{
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			}

			rl.mu.Lock()
			attrs = append(attrs, rl.attrs...)
			rl.mu.Unlock()

			reqLogger.LogAttrs(r.Context(), slog.LevelInfo, "request completed", attrs...)
		})
	}
}

// ContextRequestLogger returns the request-scoped logger stored by
// RequestLogging. It falls back to slog.Default() when the middleware is
// not installed (e.g. in unit tests).
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if rl, ok := ctx.Value(requestLogKey).(*requestLog); ok {
		return rl.logger
	}
	return slog.Default()
}

// ContextWithLogAttrs adds attributes to the final access log entry for the
// current request. It is a no-op when RequestLogging is not installed.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	rl, ok := ctx.Value(requestLogKey).(*requestLog)
	if !ok {
		return
	}
	rl.mu.Lock()
	rl.attrs = append(rl.attrs, attrs...)
	rl.mu.Unlock()
}
