package logcore

import (
	"fmt"
	"time"
)

// DateKind selects one of the three date text renderings the emitter
// supports.
type DateKind uint8

const (
	// DateISO renders "YYYY-MM-DDTHH:MM:SS.mmmZ" in UTC.
	DateISO DateKind = iota
	// DateUTC renders an RFC-1123-ish "Wed, 21 Jan 2004 05:06:07 GMT".
	DateUTC
	// DateLocal renders "Wed Jan 21 2004 05:06:07 GMT+hhmm (TZ)" in the
	// process's local timezone.
	DateLocal
)

const (
	isoLayout   = "2006-01-02T15:04:05.000"
	utcLayout   = "Mon, 02 Jan 2006 15:04:05"
	localLayout = "Mon Jan 02 2006 15:04:05"
)

// formatDate renders ms (milliseconds since the Unix epoch) per kind.
func formatDate(ms int64, kind DateKind) string {
	t := time.UnixMilli(ms)
	switch kind {
	case DateUTC:
		return t.UTC().Format(utcLayout) + " GMT"
	case DateLocal:
		loc := t.Local()
		name, offsetSec := loc.Zone()
		sign := byte('+')
		if offsetSec < 0 {
			sign = '-'
			offsetSec = -offsetSec
		}
		hh := offsetSec / 3600
		mm := (offsetSec % 3600) / 60
		return fmt.Sprintf("%s GMT%c%02d%02d (%s)", loc.Format(localLayout), sign, hh, mm, name)
	default:
		return t.UTC().Format(isoLayout) + "Z"
	}
}
