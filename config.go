package staticserve

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/staticserve/staticserve/audit"
)

// Config configures a Server. The zero value is usable for local
// testing: it serves the working directory on 127.0.0.1:8080.
type Config struct {
	// Address to listen on, in host:port form.
	Addr string
	// Root is the directory resources are resolved under.
	// Defaults to the working directory.
	Root string
	// DefaultDocument is served for the bare "/" target.
	DefaultDocument string
	// ServerID is the value of the Server response header.
	ServerID string
	// Sink receives one audit record per handled request.
	// An in-memory sink is used if nil.
	Sink audit.Sink
	// MediaTypes adds extension to media type entries on top of the
	// built-in table.
	MediaTypes map[string]string
	// ReadTimeout bounds the wait for the request on a new connection.
	// Zero means wait forever: a client that connects and never sends
	// anything holds its handler indefinitely.
	ReadTimeout time.Duration
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultDocument = "index.html"
	defaultServerID = "staticserve/1.0"
)

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.DefaultDocument == "" {
		c.DefaultDocument = defaultDocument
	}
	if c.ServerID == "" {
		c.ServerID = defaultServerID
	}
	if c.Sink == nil {
		c.Sink = audit.NewMemSink()
	}
	return c
}
