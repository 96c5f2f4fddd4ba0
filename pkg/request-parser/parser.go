// Package parser turns the raw bytes received on a connection into a
// structured HTTP request.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when the received bytes do not contain a
// well-formed request line.
var ErrMalformed = errors.New("malformed request")

// ErrEmpty is the ErrMalformed variant for a buffer holding no request
// at all (nothing received, or blank lines only). It wraps ErrMalformed
// so generic malformed checks still match.
var ErrEmpty = fmt.Errorf("%w: no request received", ErrMalformed)

// Request is a parsed HTTP/1.1 request head. Header lines are kept raw
// and in wire order; there is no header map.
type Request struct {
	Method  string
	Target  string
	Version string
	// HeaderLines holds the lines following the request line, without
	// line terminators. May include the empty line ending the head and
	// any body bytes that fit in the receive buffer; callers scan for
	// the headers they care about.
	HeaderLines []string
}

// HeaderValue scans the header lines for the first field with the given
// name and returns its trimmed value. The name match is case sensitive.
func (r *Request) HeaderValue(name string) (string, bool) {
	prefix := name + ":"
	for _, line := range r.HeaderLines {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", false
}

// Parse parses a request head from buf. Bytes that are not valid text
// are dropped rather than failing the parse. The request line must
// split into exactly three whitespace-separated tokens.
func Parse(buf []byte) (*Request, error) {
	if len(buf) == 0 {
		return nil, ErrEmpty
	}
	text := strings.ToValidUTF8(string(buf), "")
	lines := splitLines(text)
	if len(lines) == 0 || lines[0] == "" {
		return nil, ErrEmpty
	}
	tokens := strings.Fields(lines[0])
	if len(tokens) != 3 {
		return nil, ErrMalformed
	}
	return &Request{
		Method:      tokens[0],
		Target:      tokens[1],
		Version:     tokens[2],
		HeaderLines: lines[1:],
	}, nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	// drop a trailing empty element from a terminating newline
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
