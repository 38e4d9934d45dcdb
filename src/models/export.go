package models

// MExportBundle is the write-once export document packaging the normalized
// series and the detected sessions together with consistency counters.
type MExportBundle struct {
	ExportDate       string     `json:"exportDate"`
	TotalRecords     int        `json:"totalRecords"`     // length of the normalized series
	OriginalRecords  int        `json:"originalRecords"`  // length of the pre-normalization input
	GeneratedRecords int        `json:"generatedRecords"` // normalized entries with Generated=true
	TotalSessions    int        `json:"totalSessions"`
	Metrics          []MMetric  `json:"metrics"`
	Sessions         []MSession `json:"sessions"`
}
