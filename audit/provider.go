// Package audit records one line per handled request.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Resource labels used when no resource was ever resolved for a request.
const (
	LabelBadRequest    = "BAD REQUEST"
	LabelInvalidMethod = "Invalid Method"
	LabelUnknown       = "Unknown Error"
)

// Record is a single audit entry, appended after the response has been
// sent (or the failure resolved).
type Record struct {
	ClientIP string
	Time     time.Time
	// Resource is the resolved resource path, or one of the Label
	// sentinels when resolution never happened.
	Resource string
	// Status is the status line sent, e.g. "404 Not Found".
	Status string
}

// timeLayout is the timestamp format used in the audit log.
const timeLayout = "2006-01-02 15:04:05.000000"

func (r Record) line() string {
	return fmt.Sprintf("%s - %s - %s - %s\n",
		r.ClientIP, r.Time.Format(timeLayout), r.Resource, r.Status)
}

// Sink is an append-only store for audit records.
//
// Implementations must be thread-safe: connections are handled
// concurrently and the sink is the only resource they share.
type Sink interface {
	// Append stores one record. Concurrent appends may interleave in
	// any order, but each record must be stored whole.
	Append(r Record) error
	Close() error
}

// MemSink keeps records in memory. Intended for tests.
type MemSink struct {
	mutex   sync.Mutex
	records []Record
}

func NewMemSink() *MemSink {
	return &MemSink{}
}

func (m *MemSink) Append(r Record) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *MemSink) Close() error {
	return nil
}

// Records returns a copy of the stored records.
func (m *MemSink) Records() []Record {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]Record(nil), m.records...)
}

// FileSink appends records as text lines to a single log file. The file
// is truncated (or created) when the sink is opened.
type FileSink struct {
	mutex sync.Mutex
	file  *os.File
}

func NewFileSink(path string) (*FileSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: file}, nil
}

// Append writes one line. The lock keeps concurrent lines from
// interleaving mid-line.
func (f *FileSink) Append(r Record) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	_, err := f.file.WriteString(r.line())
	return err
}

func (f *FileSink) Close() error {
	return f.file.Close()
}

// SQLiteSink stores records in a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(path string) *SQLiteSink {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		panic(err)
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS requests (client_ip TEXT, time INTEGER, resource TEXT, status TEXT)")
	if err != nil {
		panic(err)
	}
	return &SQLiteSink{
		db: db,
	}
}

func (s *SQLiteSink) Append(r Record) error {
	_, err := s.db.Exec("INSERT INTO requests (client_ip, time, resource, status) VALUES (?, ?, ?, ?)",
		r.ClientIP, r.Time.UnixMicro(), r.Resource, r.Status)
	return err
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
