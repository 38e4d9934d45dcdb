package models

// MSession summarizes one contiguous interval of elevated processing
// activity. Immutable once finalized; the constituent metrics are discarded
// during finalization and only the summary survives.
type MSession struct {
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Duration      int64   `json:"duration"` // milliseconds
	DurationHours float64 `json:"durationHours"`
	MaxProcessing int64   `json:"maxProcessing"`
	AvgProcessed  int64   `json:"avgProcessed"`
	TotalMetrics  int     `json:"totalMetrics"`
}
