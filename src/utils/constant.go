package utils

import "time"

// -----------------------------------------------------------------------------

// Constants governing message acquisition and session detection.
const (
	// PageSize is the maximum number of messages requested per history page.
	PageSize = 100

	// PageCooldown is the mandatory pause between history page requests.
	// Rate-limit contract of the external source, not a tunable.
	PageCooldown = 1 * time.Second

	// DefaultLowProcessingThreshold separates baseline from elevated
	// activity on the processing counter.
	DefaultLowProcessingThreshold = int64(500000)

	// DefaultDaysBack is the default parse window.
	DefaultDaysBack = 120

	// MsPerHour is one hour in epoch milliseconds.
	MsPerHour = int64(60 * 60 * 1000)
)

// -----------------------------------------------------------------------------

// TruncateToHour truncates an epoch-milliseconds instant down to the top of
// its UTC hour (minutes, seconds and milliseconds zeroed).
func TruncateToHour(tsMs int64) int64 {
	return tsMs - tsMs%MsPerHour
}

// -----------------------------------------------------------------------------

// FormatISO renders an epoch-milliseconds instant as an ISO-8601 UTC string
// with millisecond precision ("2023-09-14T07:00:00.000Z").
func FormatISO(tsMs int64) string {
	return time.UnixMilli(tsMs).UTC().Format("2006-01-02T15:04:05.000Z")
}
