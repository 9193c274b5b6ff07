// Package connection owns the process-wide broker and database handles.
// One Context is built in main and injected into every component that
// needs a connection, replacing hidden package-level singletons.
package connection

import (
	"database/sql"
	"fmt"
	"sync"

	"inventory-service/app/domain"
	"inventory-service/app/repository/db"
	"inventory-service/config"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type Context struct {
	cfg *config.Config

	mu sync.Mutex
	db *sql.DB
	nc *nats.Conn
	js jetstream.JetStream
}

func New(cfg *config.Config) *Context {
	return &Context{cfg: cfg}
}

// DB returns the shared database handle, opening it on first call.
func (c *Context) DB() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	conn, err := db.NewPostgres(c.cfg.Db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	c.db = conn
	return c.db, nil
}

// Broker returns the shared NATS connection, dialing on first call.
// A failed handshake is fatal to startup; no retry happens here.
func (c *Context) Broker() (*nats.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brokerLocked()
}

func (c *Context) brokerLocked() (*nats.Conn, error) {
	if c.nc != nil {
		return c.nc, nil
	}

	nc, err := nats.Connect(c.cfg.Nats.Url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	c.nc = nc
	return c.nc, nil
}

// JetStream returns the shared JetStream handle on top of the broker
// connection, establishing both lazily.
func (c *Context) JetStream() (jetstream.JetStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.js != nil {
		return c.js, nil
	}

	nc, err := c.brokerLocked()
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	c.js = js
	return c.js, nil
}

// Close drains the broker connection and closes the database handle.
// Best effort: it does not wait for in-flight consumer work.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nc != nil {
		_ = c.nc.Drain()
		c.nc = nil
		c.js = nil
	}
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
}
