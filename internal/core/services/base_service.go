package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/middleware"
	"github.com/SscSPs/ledger_posting_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
	clock   func() time.Time
}

// ServiceOption is a functional option shared by all services
type ServiceOption func(*BaseService)

// WithMetrics makes the service record Prometheus metrics.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current UTC time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
