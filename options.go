package pubnode

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func ptr(l zerolog.Level) *zerolog.Level { return &l }

var (
	LogLevelDebug = ptr(zerolog.DebugLevel)
	LogLevelInfo  = ptr(zerolog.InfoLevel)
	LogLevelWarn  = ptr(zerolog.WarnLevel)
	LogLevelError = ptr(zerolog.ErrorLevel)
)

// Options defines configuration options for a session.
type Options struct {
	// Transport carries the session's publish/subscribe traffic. Use
	// natspub.Connect or natspub.NewEmbedded for a NATS backend, or
	// NewMemTransport for process-local delivery, or supply any
	// Transport implementation.
	Transport Transport

	// Codec encodes and decodes typed messages. nil selects Proto().
	Codec Codec

	// LogLevel sets the minimum log level. nil keeps the default (Info).
	LogLevel *zerolog.Level

	// Logger overrides the default logger entirely. When set, LogLevel
	// has no effect.
	Logger *zerolog.Logger

	// SendLimit applies a token-bucket limit to every publisher declared
	// on the session. The zero value disables limiting; individual
	// publishers can override with WithSendLimit.
	SendLimit SendLimitConfig

	// KeepTransportOpen leaves the transport open when the session is
	// closed, for callers sharing one transport across several sessions.
	KeepTransportOpen bool
}

// SendLimitConfig configures token-bucket rate limiting for sends.
// A Rate of 0 or less disables limiting.
type SendLimitConfig struct {
	Rate  float64
	Burst int
}

// newSendLimiter creates a *rate.Limiter from cfg, or nil when limiting
// is disabled. A zero Burst is bumped to 1 so a positive Rate always
// admits traffic.
func newSendLimiter(cfg SendLimitConfig) *rate.Limiter {
	if cfg.Rate <= 0 {
		return nil
	}
	b := cfg.Burst
	if b <= 0 {
		b = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.Rate), b)
}
