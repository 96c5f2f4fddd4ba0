// Package httpdate formats and parses HTTP-date values as used in the
// Date, Last-Modified and If-Modified-Since header fields.
//
// Senders must generate IMF-fixdate, but recipients must accept the two
// obsolete formats (RFC 850 and asctime) as well, so parsing tries all
// three.
package httpdate

import (
	"fmt"
	"strings"
	"time"
)

// Preferred format, e.g. "Sun, 06 Nov 1994 08:49:37 GMT".
const imfDateLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// formatLayout pins the zone name to GMT: formatting a UTC time with the
// MST layout would emit "UTC" instead.
const formatLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Format returns the IMF-fixdate representation of t.
func Format(t time.Time) string {
	return t.UTC().Format(formatLayout)
}

// Parse parses an HTTP-date in any of the three allowed formats.
func Parse(dateStr string) (time.Time, error) {
	if date, err := imfDate(dateStr); err == nil {
		return date, err
	}
	return obsDate(dateStr)
}

func imfDate(dateStr string) (time.Time, error) {
	date, err := time.Parse(imfDateLayout, normalizeDateStr(dateStr))
	if err != nil {
		return date, err
	}
	if date.Location().String() != "GMT" {
		return date, fmt.Errorf("Date %s is not in GMT time, but %s", date, date.Location())
	}
	return date, err
}

// obsDate parses the obsolete rfc850-date and asctime-date formats.
func obsDate(dateStr string) (time.Time, error) {
	str := normalizeDateStr(dateStr)
	if date, err := time.Parse(time.RFC850, str); err == nil {
		return date, err
	}
	return time.Parse(time.ANSIC, str)
}

// HTTP-date is case sensitive, but recipients are allowed to be lenient.
func normalizeDateStr(dateStr string) string {
	return strings.ToUpper(dateStr)
}
