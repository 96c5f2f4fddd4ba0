package staticserve

import (
	"os"
	"path/filepath"
	"strings"

	builder "github.com/staticserve/staticserve/pkg/response-builder"
)

// resolve turns a request target into a resource name, or a terminal
// status when the resource must not or cannot be served. The name is
// returned in both cases so it can be used as the audit label.
//
// The hidden check is a prefix test on the whole name, not a per-segment
// check, so "a/.secret" is served. It runs before the existence check,
// so probing a hidden path cannot distinguish 403 from 404.
//
// Names are not canonicalized; a target containing ".." escapes the
// root. Known limitation, see README.
func (s *Server) resolve(target string) (string, *builder.Status) {
	name := strings.TrimPrefix(target, "/")
	if name == "" {
		name = s.defaultDocument
	}
	if strings.HasPrefix(name, ".") {
		return name, &builder.StatusForbidden
	}
	if _, err := os.Stat(s.resourcePath(name)); err != nil {
		return name, &builder.StatusNotFound
	}
	return name, nil
}

// resourcePath returns the filesystem path of a resolved resource name.
func (s *Server) resourcePath(name string) string {
	return filepath.Join(s.root, name)
}
