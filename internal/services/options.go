package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"conventions/internal/domain"
	"conventions/internal/platform/metrics"
)

// Option configures the ambient dependencies shared by all services.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	email   domain.EmailService
	timeout time.Duration
}

// WithLogger sets the logger used for best-effort side effects.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables registration and lookup metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithEmailService enables confirmation emails after a successful join.
func WithEmailService(e domain.EmailService) Option {
	return func(o *options) { o.email = e }
}

// WithTimeout bounds every service call. Zero means the caller's context alone applies.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// timed runs fn and records its latency under lookup.
func (o options) timed(lookup string, fn func() error) error {
	start := time.Now()
	err := fn()
	o.metrics.ObserveLookup(lookup, time.Since(start))
	return err
}

// reject counts a refused registration and returns err unchanged.
func (o options) reject(kind string, err error) error {
	o.metrics.IncRegistrationRejected(kind, rejectionReason(err))
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrConventionNotFound):
		return "convention_not_found"
	case errors.Is(err, domain.ErrTalkNotFound):
		return "talk_not_found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, domain.ErrNotPartOfConvention):
		return "not_part_of_convention"
	}
	return "error"
}

// ignoreNotFound drops a store's not-found so that a batch of concurrent
// checks can all complete before the outcome is evaluated.
func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
