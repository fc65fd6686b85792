package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/watson"
)

// LoggingInterceptor creates an interceptor that logs service calls using slog.
// It logs the start and end of each call, including status and duration.
func LoggingInterceptor(logger *slog.Logger) watson.UnaryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, call *watson.Call, next watson.Invoker) (*watson.DetailedResponse, error) {
		start := time.Now()

		logger.DebugContext(ctx, "request started",
			slog.String("operation", call.Operation.ID()),
			slog.String("method", call.Request.Method),
			slog.String("path", call.Request.URL.Path),
		)

		resp, err := next(ctx, call)
		duration := time.Since(start)

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}

		if err != nil {
			logger.ErrorContext(ctx, "request failed",
				slog.String("operation", call.Operation.ID()),
				slog.Int("status", status),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "request completed",
				slog.String("operation", call.Operation.ID()),
				slog.Int("status", status),
				slog.Duration("duration", duration),
			)
		}

		return resp, err
	}
}
