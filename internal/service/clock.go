// Package service implements the application's business operations on top
// of the store interfaces.
package service

import "time"

// TimeFormatISO8601 is the timestamp layout used for every task timestamp:
// ISO-8601 UTC with second resolution (yyyy-MM-ddTHH:mm:ssZ).
const TimeFormatISO8601 = "2006-01-02T15:04:05Z"

// Clock supplies the current time. It exists so tests can pin timestamps;
// production code uses UTCClock.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production Clock, returning the current time in UTC.
type UTCClock struct{}

// Now implements Clock.
func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}

// FormatTimestamp renders a time in the service's ISO-8601 UTC layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimeFormatISO8601)
}
