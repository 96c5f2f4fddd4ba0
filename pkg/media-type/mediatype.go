// Package mediatype maps file extensions to the media types this server
// is willing to serve.
package mediatype

import "strings"

// defaults is the closed set of servable types. Anything outside the
// table is rejected with 415 rather than served as an opaque blob.
var defaults = map[string]string{
	".html": "text/html",
	".txt":  "text/plain",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".css":  "text/css",
	".js":   "application/javascript",
}

// Table is an extension to media type lookup table.
type Table struct {
	m map[string]string
}

// NewTable returns the default table, extended with the given entries.
// Extra entries override defaults on conflict.
func NewTable(extra map[string]string) Table {
	m := make(map[string]string, len(defaults)+len(extra))
	for ext, mt := range defaults {
		m[ext] = mt
	}
	for ext, mt := range extra {
		m[ext] = mt
	}
	return Table{m}
}

// Classify returns the media type for the given resource path based on
// its extension (the substring from the last dot, inclusive). The second
// return value is false if the extension is missing or unknown.
func (t Table) Classify(path string) (string, bool) {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return "", false
	}
	mt, ok := t.m[path[dot:]]
	return mt, ok
}
