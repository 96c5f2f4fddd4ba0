package builder

import (
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)

func TestHeadersFullShape(t *testing.T) {
	headers := Headers(StatusOK, testTime, "staticserve/1.0", HeaderOptions{
		ContentType:   "text/html",
		ContentLength: 120,
		LastModified:  "Sun, 06 Nov 1994 08:49:37 GMT",
	})
	want := "HTTP/1.1 200 OK\r\n" +
		"Date: Sun, 06 Nov 1994 08:49:37 GMT\r\n" +
		"Server: staticserve/1.0\r\n" +
		"Content-Type: text/html\r\n" +
		"Content-Length: 120\r\n" +
		"Last-Modified: Sun, 06 Nov 1994 08:49:37 GMT\r\n" +
		"Connection: close\r\n\r\n"
	if string(headers) != want {
		t.Fatalf("Headers are:\n%s", headers)
	}
}

func TestHeadersOmitUnsetFields(t *testing.T) {
	headers := string(Headers(StatusNotModified, testTime, "staticserve/1.0", HeaderOptions{}))
	for _, field := range []string{"Content-Type", "Content-Length", "Last-Modified"} {
		if strings.Contains(headers, field) {
			t.Fatalf("Unexpected %s field:\n%s", field, headers)
		}
	}
	if !strings.HasPrefix(headers, "HTTP/1.1 304 Not Modified\r\n") {
		t.Fatalf("Headers are:\n%s", headers)
	}
	if !strings.HasSuffix(headers, "Connection: close\r\n\r\n") {
		t.Fatalf("Headers are:\n%s", headers)
	}
}

func TestErrorAppendsBody(t *testing.T) {
	res := string(Error(StatusNotFound, testTime, "staticserve/1.0"))
	if !strings.HasSuffix(res, "\r\n\r\n404 Not Found") {
		t.Fatalf("Response is:\n%s", res)
	}
}

func TestStatusLine(t *testing.T) {
	if line := StatusUnsupportedMedia.Line(); line != "415 Unsupported Media Type" {
		t.Fatalf("Line is %s", line)
	}
}

func TestBadRequestVariantsShareStatusLine(t *testing.T) {
	variants := []Status{StatusEmptyRequest, StatusBadRequest, StatusInvalidMethod}
	bodies := map[string]bool{}
	for _, status := range variants {
		if status.Line() != "400 Bad Request" {
			t.Fatalf("Status line is %s", status.Line())
		}
		bodies[status.Body] = true
	}
	if len(bodies) != len(variants) {
		t.Fatalf("400 variants should have distinct bodies, got %v", bodies)
	}
}
