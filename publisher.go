package pubnode

import (
	"fmt"

	"golang.org/x/time/rate"
)

// Publisher binds one topic key and one message type to a session.
// It is stateless beyond that binding and safe for concurrent use.
type Publisher[T any] struct {
	session *Session
	topic   string
	limiter *rate.Limiter
}

// DeclareOption configures per-publisher behaviour at declare time.
type DeclareOption func(*declareConfig)

type declareConfig struct {
	limiter    *rate.Limiter
	setLimiter bool
}

// WithSendLimit gives this publisher its own token-bucket limiter,
// overriding the session-level default. A rate of -1 disables limiting
// even when the session configures one.
func WithSendLimit(r float64, burst int) DeclareOption {
	return func(c *declareConfig) {
		c.setLimiter = true
		if r == -1 {
			c.limiter = nil
			return
		}
		c.limiter = newSendLimiter(SendLimitConfig{Rate: r, Burst: burst})
	}
}

// DeclarePublisher registers a publisher for topic, scoped to message
// type T. It fails with ErrClosed once the session is closed. The
// transport sees the topic key only at publish time, so a key it
// rejects as malformed surfaces on the first Send, not here.
func DeclarePublisher[T any](s *Session, topic string, opts ...DeclareOption) (*Publisher[T], error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	cfg := declareConfig{limiter: newSendLimiter(s.sendLimit)}
	for _, opt := range opts {
		opt(&cfg)
	}

	s.logger.Debug().Str("topic", topic).Msg("publisher declared")
	return &Publisher[T]{session: s, topic: topic, limiter: cfg.limiter}, nil
}

// Topic returns the topic key this publisher is bound to.
func (p *Publisher[T]) Topic() string { return p.topic }

// Send encodes msg and hands the bytes to the transport. It returns
// once the transport has accepted them, not once they are delivered.
// Publishing with no matching subscribers is not an error.
//
// After the session is closed Send returns ErrClosed without touching
// the transport. A transport rejection comes back as a *PublishError.
// There is no buffering and no retry.
func (p *Publisher[T]) Send(msg *T) error {
	if p.session.closed.Load() {
		return ErrClosed
	}
	if p.limiter != nil && !p.limiter.Allow() {
		return ErrSendLimited
	}

	data, err := p.session.codec.Marshal(msg)
	if err != nil {
		return fmt.Errorf("pubnode: encode message for %q: %w", p.topic, err)
	}
	if err := p.session.transport.Publish(p.topic, data); err != nil {
		if p.session.closed.Load() {
			return ErrClosed
		}
		return &PublishError{Topic: p.topic, Err: err}
	}
	return nil
}
