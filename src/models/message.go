package models

// MRawMessage represents a single message as delivered by the external
// message source. Read-only input: the pipeline never owns or mutates it.
type MRawMessage struct {
	ID   int    `json:"id"`
	Date int64  `json:"date"` // epoch seconds
	Text string `json:"text"`
}
