package pubnode

import (
	"errors"
	"sync"
)

// ErrTransportClosed is returned by MemTransport operations after Close.
var ErrTransportClosed = errors.New("pubnode: transport closed")

// MemTransport is a process-local Transport with exact topic matching.
// Dispatch happens synchronously inside Publish, so each subscriber
// sees payloads in publish order. Messages are not persisted and are
// dropped when no subscriber is registered. Suitable for tests and
// single-process wiring.
type MemTransport struct {
	mu     sync.RWMutex
	closed bool
	nextID int
	subs   map[string]map[int]func([]byte)
}

// NewMemTransport creates an in-memory transport.
func NewMemTransport() *MemTransport {
	return &MemTransport{subs: make(map[string]map[int]func([]byte))}
}

// Publish delivers data to every subscriber of topic before returning.
// Handlers receive their own copy of the payload.
func (m *MemTransport) Publish(topic string, data []byte) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrTransportClosed
	}
	fns := make([]func([]byte), 0, len(m.subs[topic]))
	for _, fn := range m.subs[topic] {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(append([]byte(nil), data...))
	}
	return nil
}

// Subscribe registers fn for payloads published to topic.
func (m *MemTransport) Subscribe(topic string, fn func(data []byte)) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrTransportClosed
	}
	if m.subs[topic] == nil {
		m.subs[topic] = make(map[int]func([]byte))
	}
	id := m.nextID
	m.nextID++
	m.subs[topic][id] = fn
	return &memSubscription{t: m, topic: topic, id: id}, nil
}

// Close drops all subscriptions and rejects further operations.
func (m *MemTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.subs = make(map[string]map[int]func([]byte))
	return nil
}

type memSubscription struct {
	t     *MemTransport
	topic string
	id    int
}

func (s *memSubscription) Unsubscribe() error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if subs, ok := s.t.subs[s.topic]; ok {
		delete(subs, s.id)
		if len(subs) == 0 {
			delete(s.t.subs, s.topic)
		}
	}
	return nil
}
