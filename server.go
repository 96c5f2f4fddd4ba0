package staticserve

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/staticserve/staticserve/audit"
	mediatype "github.com/staticserve/staticserve/pkg/media-type"
)

// Server serves files from a directory over HTTP/1.1, one request per
// TCP connection.
type Server struct {
	addr            string
	root            string
	defaultDocument string
	serverID        string
	media           mediatype.Table
	sink            audit.Sink
	readTimeout     time.Duration
	log             zerolog.Logger

	mutex    sync.Mutex
	listener net.Listener
}

// New creates a Server from the given config.
func New(config Config) *Server {
	config = config.withDefaults()

	// use the global logger if not specified in config
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = log.Logger
	} else {
		logger = *config.Logger
	}

	// create a child logger and add defaults
	logger = logger.With().
		Str("addr", config.Addr).
		Str("root", config.Root).
		Logger()

	return &Server{
		addr:            config.Addr,
		root:            config.Root,
		defaultDocument: config.DefaultDocument,
		serverID:        config.ServerID,
		media:           mediatype.NewTable(config.MediaTypes),
		sink:            config.Sink,
		readTimeout:     config.ReadTimeout,
		log:             logger,
	}
}

// Listen binds the listening socket without accepting yet.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	s.listener = ln
	s.mutex.Unlock()
	return nil
}

// Addr returns the bound listener address. Only valid after Listen.
func (s *Server) Addr() net.Addr {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed, handling each
// one in its own goroutine. It returns nil after Shutdown.
func (s *Server) Serve() error {
	s.mutex.Lock()
	ln := s.listener
	s.mutex.Unlock()

	s.log.Info().Msg("Server started")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error().Err(err).Msg("Accept error")
			continue
		}
		go s.handle(conn)
	}
}

// Run binds and serves.
func (s *Server) Run() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting new connections. In-flight connections are
// left to finish on their own.
func (s *Server) Shutdown() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}
