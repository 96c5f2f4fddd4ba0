// Package builder assembles HTTP/1.1 response bytes: the status taxonomy,
// the header block, and the canned error bodies.
package builder

import (
	"bytes"
	"fmt"
	"time"

	httpdate "github.com/staticserve/staticserve/pkg/http-date"
)

// Status is a terminal response status. The set of statuses this server
// can produce is closed; exactly one is chosen per request.
type Status struct {
	Code   int
	Reason string
	// Body is the plain-text explanation appended after the header
	// block. Empty for statuses sent without a generated body.
	Body string
}

// Line returns the status as it appears on the status line and in the
// audit log, e.g. "404 Not Found".
func (s Status) Line() string {
	return fmt.Sprintf("%d %s", s.Code, s.Reason)
}

var (
	StatusOK          = Status{200, "OK", ""}
	StatusNotModified = Status{304, "Not Modified", ""}
	// The 400 variants share a status line but carry different
	// explanations: StatusEmptyRequest for a request holding nothing at
	// all, StatusBadRequest for a request line that could not be parsed,
	// StatusInvalidMethod for a well-formed request using a method this
	// server does not serve.
	StatusEmptyRequest     = Status{400, "Bad Request", "400 Bad Request: No request received."}
	StatusBadRequest       = Status{400, "Bad Request", "400 Bad Request: Invalid request line."}
	StatusInvalidMethod    = Status{400, "Bad Request", "400 Bad Request: Unsupported HTTP method."}
	StatusForbidden        = Status{403, "Forbidden", "403 Forbidden: You do not have permission to access this resource."}
	StatusNotFound         = Status{404, "Not Found", "404 Not Found"}
	StatusUnsupportedMedia = Status{415, "Unsupported Media Type", "415 Unsupported Media Type: The requested file type is not supported."}
	StatusInternalError    = Status{500, "Internal Server Error", "500 Internal Server Error"}
)

// HeaderOptions holds the optional header fields. A field is emitted
// only when its value is set.
type HeaderOptions struct {
	ContentType   string
	ContentLength int
	LastModified  string
}

// Headers builds the response header block:
//
//	HTTP/1.1 <status>
//	Date: <now, IMF-fixdate>
//	Server: <server>
//	[Content-Type / Content-Length / Last-Modified]
//	Connection: close
//
// Connection is always close; this server never reuses a connection.
func Headers(status Status, now time.Time, server string, opts HeaderOptions) []byte {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "HTTP/1.1 %s\r\n", status.Line())
	fmt.Fprintf(buf, "Date: %s\r\n", httpdate.Format(now))
	fmt.Fprintf(buf, "Server: %s\r\n", server)
	if opts.ContentType != "" {
		fmt.Fprintf(buf, "Content-Type: %s\r\n", opts.ContentType)
	}
	if opts.ContentLength > 0 {
		fmt.Fprintf(buf, "Content-Length: %d\r\n", opts.ContentLength)
	}
	if opts.LastModified != "" {
		fmt.Fprintf(buf, "Last-Modified: %s\r\n", opts.LastModified)
	}
	buf.WriteString("Connection: close\r\n\r\n")
	return buf.Bytes()
}

// Error builds a complete error response: the header block followed by
// the status's canned body.
func Error(status Status, now time.Time, server string) []byte {
	headers := Headers(status, now, server, HeaderOptions{})
	return append(headers, status.Body...)
}
