package staticserve

import (
	"fmt"
	"time"

	httpdate "github.com/staticserve/staticserve/pkg/http-date"
	parser "github.com/staticserve/staticserve/pkg/request-parser"
)

// evaluateConditional reports whether the client's cached copy is
// current, based on the If-Modified-Since header. An absent header means
// the content must be served. An unparseable value is an error, failing
// the request, rather than being silently ignored.
func evaluateConditional(req *parser.Request, modTime time.Time) (bool, error) {
	value, ok := req.HeaderValue("If-Modified-Since")
	if !ok {
		return false, nil
	}
	clientTime, err := httpdate.Parse(value)
	if err != nil {
		return false, fmt.Errorf("parsing If-Modified-Since: %w", err)
	}
	// Last-Modified values have seconds resolution, so the mtime is
	// truncated before comparing; client time at or past the mtime
	// means the copy is current.
	return !clientTime.Before(modTime.Truncate(time.Second)), nil
}
