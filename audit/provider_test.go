package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testRecord = Record{
	ClientIP: "127.0.0.1",
	Time:     time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC),
	Resource: "index.html",
	Status:   "200 OK",
}

func TestFileSinkLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if err := sink.Append(testRecord); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Error: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	want := "127.0.0.1 - 2024-03-01 12:30:00.000000 - index.html - 200 OK\n"
	if string(contents) != want {
		t.Fatalf("Log contents are %q", contents)
	}
}

func TestFileSinkTruncatesOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("stale line\n"), 0644); err != nil {
		t.Fatalf("Error: %v", err)
	}
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	sink.Close()
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if len(contents) != 0 {
		t.Fatalf("Log contents are %q", contents)
	}
}

func TestFileSinkSentinelLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	rec := testRecord
	rec.Resource = LabelBadRequest
	rec.Status = "400 Bad Request"
	sink.Append(rec)
	sink.Close()
	contents, _ := os.ReadFile(path)
	if !strings.Contains(string(contents), " - BAD REQUEST - 400 Bad Request") {
		t.Fatalf("Log contents are %q", contents)
	}
}

func TestSQLiteSinkRoundTrip(t *testing.T) {
	sink := NewSQLiteSink(filepath.Join(t.TempDir(), "audit.db"))
	defer sink.Close()
	if err := sink.Append(testRecord); err != nil {
		t.Fatalf("Error: %v", err)
	}
	var count int
	var resource string
	err := sink.db.QueryRow("SELECT COUNT(*), MAX(resource) FROM requests").Scan(&count, &resource)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if count != 1 || resource != "index.html" {
		t.Fatalf("Stored %d records, resource %q", count, resource)
	}
}

func TestMemSinkRecords(t *testing.T) {
	sink := NewMemSink()
	sink.Append(testRecord)
	records := sink.Records()
	if len(records) != 1 || records[0].Resource != "index.html" {
		t.Fatalf("Records are %+v", records)
	}
}
