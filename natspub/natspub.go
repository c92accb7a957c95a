// Package natspub provides NATS-backed transports for pubnode sessions:
// a client for an external NATS server, and an embedded server for
// single-binary deployments.
package natspub

import (
	"context"
	"fmt"

	"github.com/delaneyj/toolbelt/embeddednats"
	"github.com/nats-io/nats.go"
	"github.com/ryanhamamura/pubnode"
)

// Conn implements pubnode.Transport over a NATS connection, optionally
// backed by an embedded server.
type Conn struct {
	server *embeddednats.Server // nil when connected to an external server
	nc     *nats.Conn
}

// Connect dials an external NATS server.
func Connect(url string, opts ...nats.Option) (*Conn, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("natspub: connect %s: %w", url, err)
	}
	return &Conn{nc: nc}, nil
}

// NewEmbedded starts an embedded NATS server storing data in dataDir
// and connects to it. The server shuts down when ctx is cancelled.
func NewEmbedded(ctx context.Context, dataDir string) (*Conn, error) {
	ns, err := embeddednats.New(ctx, embeddednats.WithDirectory(dataDir))
	if err != nil {
		return nil, fmt.Errorf("natspub: start server: %w", err)
	}
	ns.WaitForServer()

	nc, err := ns.Client()
	if err != nil {
		ns.Close()
		return nil, fmt.Errorf("natspub: connect client: %w", err)
	}
	return &Conn{server: ns, nc: nc}, nil
}

// Publish sends data to the given topic using core NATS publish.
func (c *Conn) Publish(topic string, data []byte) error {
	return c.nc.Publish(topic, data)
}

// Subscribe creates a core NATS subscription. NATS delivers one
// subscription's messages in order from a single dispatch goroutine, so
// the per-subscriber ordering guarantee holds through this adapter.
func (c *Conn) Subscribe(topic string, fn func(data []byte)) (pubnode.Subscription, error) {
	sub, err := c.nc.Subscribe(topic, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Close shuts down the client connection and the embedded server, if any.
func (c *Conn) Close() error {
	c.nc.Close()
	if c.server != nil {
		return c.server.Close()
	}
	return nil
}

// NATS returns the underlying NATS connection for advanced usage.
func (c *Conn) NATS() *nats.Conn { return c.nc }

// OpenFromConfig loads the configuration file at path, wires a NATS
// transport from it (external when url is set, embedded otherwise) and
// opens a session over it.
func OpenFromConfig(ctx context.Context, path string) (*pubnode.Session, error) {
	cfg, err := pubnode.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	var conn *Conn
	if cfg.URL != "" {
		conn, err = Connect(cfg.URL)
	} else {
		conn, err = NewEmbedded(ctx, cfg.DataDir)
	}
	if err != nil {
		return nil, err
	}

	opts.Transport = conn
	sess, err := pubnode.Open(opts)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return sess, nil
}
