package staticserve

import (
	"errors"
	"net"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staticserve/staticserve/audit"
	httpdate "github.com/staticserve/staticserve/pkg/http-date"
	parser "github.com/staticserve/staticserve/pkg/request-parser"
	builder "github.com/staticserve/staticserve/pkg/response-builder"
)

// receiveBufferSize caps the single read a request is parsed from. The
// server never loops to read a larger request head.
const receiveBufferSize = 1024

// worker handles a single connection. It owns the connection and all
// per-request state; nothing is shared between workers except the
// audit sink.
type worker struct {
	server   *Server
	conn     net.Conn
	clientIP string
	log      zerolog.Logger

	buf      []byte
	req      *parser.Request
	resource string
	media    string
	modTime  time.Time
	content  []byte
	sendBody bool

	// terminal error state, set via fail
	status builder.Status
	label  string
}

// stateFunc is one stage of the pipeline. It returns the next stage, or
// nil when the connection is done.
type stateFunc func(*worker) stateFunc

// handle runs the request pipeline for one accepted connection. The
// connection is always closed, and a panic anywhere in the pipeline is
// converted into a 500 so a single connection's fault never reaches
// the accept loop.
func (s *Server) handle(conn net.Conn) {
	w := &worker{
		server:   s,
		conn:     conn,
		clientIP: clientIP(conn),
	}
	w.log = s.log.With().
		Str("conn", uuid.NewString()).
		Str("client", w.clientIP).
		Logger()

	defer conn.Close()
	defer w.recover()

	for state := receive; state != nil; {
		state = state(w)
	}
}

// recover is the unconditional 500 fallback for failures no stage
// mapped to a status.
func (w *worker) recover() {
	if err := recover(); err != nil {
		w.log.WithLevel(zerolog.PanicLevel).Interface("error", err).Msg("Panic in connection handler")
		w.status = builder.StatusInternalError
		w.label = audit.LabelUnknown
		sendError(w)
	}
}

// fail moves the pipeline to the terminal error response state.
func (w *worker) fail(status builder.Status, label string) stateFunc {
	w.status = status
	w.label = label
	return sendError
}

// state funcs

func receive(w *worker) stateFunc {
	if timeout := w.server.readTimeout; timeout > 0 {
		w.conn.SetReadDeadline(time.Now().Add(timeout))
	}
	buf := make([]byte, receiveBufferSize)
	n, err := w.conn.Read(buf)
	if n == 0 {
		// nothing was ever sent: close silently, no response, no record
		w.log.Debug().Err(err).Msg("Client sent no request")
		return nil
	}
	w.conn.SetReadDeadline(time.Time{})
	w.buf = buf[:n]
	return parse
}

func parse(w *worker) stateFunc {
	req, err := parser.Parse(w.buf)
	if err != nil {
		w.log.Debug().Err(err).Msg("Could not parse request")
		status := builder.StatusBadRequest
		if errors.Is(err, parser.ErrEmpty) {
			status = builder.StatusEmptyRequest
		}
		return w.fail(status, audit.LabelBadRequest)
	}
	w.req = req
	return resolvePath
}

func resolvePath(w *worker) stateFunc {
	name, status := w.server.resolve(w.req.Target)
	w.resource = name
	if status != nil {
		return w.fail(*status, w.resource)
	}
	return classifyMedia
}

func classifyMedia(w *worker) stateFunc {
	media, ok := w.server.media.Classify(w.resource)
	if !ok {
		return w.fail(builder.StatusUnsupportedMedia, w.resource)
	}
	w.media = media
	return evaluateConditionalState
}

func evaluateConditionalState(w *worker) stateFunc {
	info, err := os.Stat(w.server.resourcePath(w.resource))
	if err != nil {
		w.log.Error().Err(err).Msg("Could not stat resource")
		return w.fail(builder.StatusInternalError, w.resource)
	}
	w.modTime = info.ModTime()

	current, err := evaluateConditional(w.req, w.modTime)
	if err != nil {
		w.log.Debug().Err(err).Msg("Could not evaluate conditional header")
		return w.fail(builder.StatusInternalError, w.resource)
	}
	if current {
		return sendNotModified
	}
	return readFile
}

func readFile(w *worker) stateFunc {
	content, err := os.ReadFile(w.server.resourcePath(w.resource))
	if err != nil {
		w.log.Error().Err(err).Msg("Could not read resource")
		return w.fail(builder.StatusInternalError, w.resource)
	}
	w.content = content
	return dispatchMethod
}

func dispatchMethod(w *worker) stateFunc {
	switch w.req.Method {
	case "GET":
		w.sendBody = true
	case "HEAD":
		w.sendBody = false
	default:
		return w.fail(builder.StatusInvalidMethod, audit.LabelInvalidMethod)
	}
	return respond
}

func respond(w *worker) stateFunc {
	headers := builder.Headers(builder.StatusOK, time.Now(), w.server.serverID, builder.HeaderOptions{
		ContentType:   w.media,
		ContentLength: len(w.content),
		LastModified:  httpdate.Format(w.modTime),
	})
	response := headers
	if w.sendBody {
		response = append(headers, w.content...)
	}
	if _, err := w.conn.Write(response); err != nil {
		w.log.Debug().Err(err).Msg("Could not write response")
	}
	w.logResponse(builder.StatusOK)
	w.record(w.resource, builder.StatusOK)
	return nil
}

func sendNotModified(w *worker) stateFunc {
	headers := builder.Headers(builder.StatusNotModified, time.Now(), w.server.serverID, builder.HeaderOptions{})
	if _, err := w.conn.Write(headers); err != nil {
		w.log.Debug().Err(err).Msg("Could not write response")
	}
	w.logResponse(builder.StatusNotModified)
	w.record(w.resource, builder.StatusNotModified)
	return nil
}

func sendError(w *worker) stateFunc {
	if _, err := w.conn.Write(builder.Error(w.status, time.Now(), w.server.serverID)); err != nil {
		w.log.Debug().Err(err).Msg("Could not write response")
	}
	w.logResponse(w.status)
	w.record(w.label, w.status)
	return nil
}

// helpers

func (w *worker) record(label string, status builder.Status) {
	err := w.server.sink.Append(audit.Record{
		ClientIP: w.clientIP,
		Time:     time.Now(),
		Resource: label,
		Status:   status.Line(),
	})
	if err != nil {
		w.log.Error().Err(err).Msg("Could not append audit record")
	}
}

func (w *worker) logResponse(status builder.Status) {
	event := w.log.Debug().Str("status", status.Line())
	if w.req != nil {
		event = event.Str("method", w.req.Method).Str("target", w.req.Target)
	}
	event.Msg("Sending response to client")
}

// clientIP extracts the bare IP from the connection's remote address.
func clientIP(conn net.Conn) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	addr := conn.RemoteAddr().String()
	portSepIdx := strings.LastIndex(addr, ":")
	if portSepIdx < 0 {
		return addr
	}
	return strings.Trim(addr[:portSepIdx], "[]")
}
