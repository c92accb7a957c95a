package pubnode

import (
	"errors"
	"fmt"
)

// Handler receives each payload delivered on a subscriber's topic.
// Exactly one of msg and err is set per invocation: a payload that
// fails to decode arrives as a *DecodeError in err instead of being
// dropped, so the application observes schema mismatches.
//
// Handlers run on whatever goroutine the transport delivers from and
// see one subscriber's payloads in delivery order. A slow handler
// delays that subscriber's stream only; this layer adds no queueing.
type Handler[T any] func(msg *T, err error)

// Subscriber binds one topic key, one message type and one handler to a
// session. It stays active until Unsubscribe or session close.
type Subscriber[T any] struct {
	session *Session
	topic   string
	sub     Subscription
}

// DeclareSubscriber registers handler for every payload delivered on
// topic, decoded as T. Wildcard semantics in the topic key, if any, are
// the transport's. It fails with ErrClosed once the session is closed.
func DeclareSubscriber[T any](s *Session, topic string, handler Handler[T]) (*Subscriber[T], error) {
	if handler == nil {
		return nil, errors.New("pubnode: nil handler")
	}
	if s.closed.Load() {
		return nil, ErrClosed
	}

	sub, err := s.transport.Subscribe(topic, func(data []byte) {
		if s.closed.Load() {
			return
		}
		msg := new(T)
		if err := s.codec.Unmarshal(data, msg); err != nil {
			derr := &DecodeError{Topic: topic, Err: err}
			s.logger.Warn().Err(derr).Msg("undecodable payload")
			handler(nil, derr)
			return
		}
		handler(msg, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("pubnode: subscribe %q: %w", topic, err)
	}
	if err := s.track(sub); err != nil {
		_ = sub.Unsubscribe()
		return nil, err
	}

	s.logger.Debug().Str("topic", topic).Msg("subscriber declared")
	return &Subscriber[T]{session: s, topic: topic, sub: sub}, nil
}

// Topic returns the topic key this subscriber is bound to.
func (s *Subscriber[T]) Topic() string { return s.topic }

// Unsubscribe cancels this subscription ahead of session close. The
// handler is not invoked again once it returns.
func (s *Subscriber[T]) Unsubscribe() error {
	s.session.forget(s.sub)
	return s.sub.Unsubscribe()
}
