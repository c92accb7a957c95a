// Package pubnode provides a typed publish/subscribe layer over a
// pluggable byte transport. Applications declare publishers and
// subscribers for a topic key and a message type; pubnode handles the
// encode/decode bridge and the transport session lifecycle.
//
// The flow: open a Session against a Transport — declare typed
// publishers and subscribers on it — send messages; inbound payloads
// are decoded and handed to subscriber handlers. Closing the session
// invalidates everything declared from it.
package pubnode

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Session owns one transport connection and is the single point through
// which publishers and subscribers are declared. Every publisher and
// subscriber holds a non-owning reference to the session and becomes
// invalid once it is closed.
type Session struct {
	transport Transport
	codec     Codec
	logger    zerolog.Logger
	sendLimit SendLimitConfig
	keepOpen  bool

	closed atomic.Bool
	mu     sync.Mutex
	subs   map[Subscription]struct{}
}

// Open creates a session over the configured transport. The transport
// connection itself is established by the transport constructor (e.g.
// natspub.Connect); Open fails only on invalid options.
func Open(opts Options) (*Session, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}
	codec := opts.Codec
	if codec == nil {
		codec = Proto()
	}
	var logger zerolog.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	} else {
		level := zerolog.InfoLevel
		if opts.LogLevel != nil {
			level = *opts.LogLevel
		}
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	}

	s := &Session{
		transport: opts.Transport,
		codec:     codec,
		logger:    logger,
		sendLimit: opts.SendLimit,
		keepOpen:  opts.KeepTransportOpen,
		subs:      make(map[Subscription]struct{}),
	}
	s.logger.Debug().Msg("session open")
	return s, nil
}

// Close tears the session down: all subscriptions are cancelled, then
// the transport is closed unless Options.KeepTransportOpen was set.
// Close is idempotent and safe to call concurrently with in-flight
// sends and dispatches, which fail fast with ErrClosed or stop
// delivering. It returns the first teardown error encountered.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	subs := make([]Subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subs = nil
	s.mu.Unlock()

	var firstErr error
	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn().Err(err).Msg("unsubscribe during close")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if !s.keepOpen {
		if err := s.transport.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("transport close")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	s.logger.Debug().Msg("session closed")
	return firstErr
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed.Load() }

// track registers a transport subscription for teardown. It fails with
// ErrClosed if the session closed while the subscription was being set
// up, in which case the caller must cancel it.
func (s *Session) track(sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return ErrClosed
	}
	s.subs[sub] = struct{}{}
	return nil
}

func (s *Session) forget(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs != nil {
		delete(s.subs, sub)
	}
}
