package models

// MMetric is one hourly sample of the two tracked counters. Real metrics are
// produced by the extractor from matched messages; generated metrics are
// synthesized fillers for hours with no observation.
//
// JSON field names are a contract with the downstream viewer, not a style
// choice.
type MMetric struct {
	Timestamp  int64  `json:"timestamp"` // epoch milliseconds; exact top of hour for generated records
	Processing int64  `json:"processing"`
	Processed  int64  `json:"processed"` // may be negative (sensor noise, excluded from averages)
	Date       string `json:"date"`      // ISO-8601 UTC rendering of Timestamp
	Generated  bool   `json:"generated"`
}
