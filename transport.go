package pubnode

// Transport is an interface for publish/subscribe delivery backends.
// The natspub sub-package provides a NATS implementation (external or
// embedded); MemTransport provides a process-local one.
//
// Topic keys are opaque to this layer: matching rules, including any
// wildcard semantics, belong to the transport.
type Transport interface {
	// Publish hands data off to the transport for delivery on topic.
	// It returns once the transport has accepted the bytes, not once
	// they have been delivered.
	Publish(topic string, data []byte) error

	// Subscribe registers fn to be called for each payload delivered on
	// topic. The transport owns the goroutine or event loop that invokes
	// fn; payloads for one subscription arrive in delivery order.
	Subscribe(topic string, fn func(data []byte)) (Subscription, error)

	// Close tears down the transport connection. Registered
	// subscriptions stop receiving payloads.
	Close() error
}

// Subscription represents an active transport subscription that can be
// manually cancelled.
type Subscription interface {
	Unsubscribe() error
}
