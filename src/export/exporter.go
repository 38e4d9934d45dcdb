package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mzezin/alert-bot-parser/src/helpers"
	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// csvHeader is the fixed column order of the tabular artifact.
const csvHeader = "timestamp,date,processing,processed,generated"

// -----------------------------------------------------------------------------

// Exporter packages pipeline output into the two export artifacts: a
// structured JSON document and a flat CSV table.
type Exporter struct {
	Config *models.MConfig
	Logger *logger.Logger

	// Now is the clock used for exportDate; tests override it.
	Now func() time.Time
}

// -----------------------------------------------------------------------------

func NewExporter(cfg *models.MConfig, log *logger.Logger) *Exporter {
	return &Exporter{
		Config: cfg,
		Logger: log,
		Now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

// BuildBundle assembles the write-once export document from the original
// (pre-normalization) metrics, the normalized series and the detected
// sessions. The counters are derived here, so they are internally
// consistent by construction.
func (e *Exporter) BuildBundle(original, filled []models.MMetric, sessions []models.MSession) models.MExportBundle {
	generated := 0
	for _, m := range filled {
		if m.Generated {
			generated++
		}
	}

	if filled == nil {
		filled = []models.MMetric{}
	}
	if sessions == nil {
		sessions = []models.MSession{}
	}

	return models.MExportBundle{
		ExportDate:       utils.FormatISO(e.Now().UTC().UnixMilli()),
		TotalRecords:     len(filled),
		OriginalRecords:  len(original),
		GeneratedRecords: generated,
		TotalSessions:    len(sessions),
		Metrics:          filled,
		Sessions:         sessions,
	}
}

// -----------------------------------------------------------------------------

// SaveAll writes both artifacts under the configured output directory. The
// two writes run concurrently; they derive independently from the same
// finalized bundle. Write failures leave the bundle valid, a retry does not
// require re-fetching anything.
func (e *Exporter) SaveAll(bundle models.MExportBundle, baseFilename string) error {
	if err := os.MkdirAll(e.Config.Export.OutputDir, 0755); err != nil {
		return &helpers.ExportError{ParserError: helpers.ParserError{
			Message: fmt.Sprintf("failed to create output dir '%s'", e.Config.Export.OutputDir),
			Cause:   err,
		}}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = e.SaveJSON(bundle, baseFilename+".json")
	}()
	go func() {
		defer wg.Done()
		errs[1] = e.SaveCSV(bundle.Metrics, baseFilename+".csv")
	}()
	wg.Wait()

	return errors.Join(errs...)
}

// -----------------------------------------------------------------------------

// SaveJSON writes the structured document (2-space indent, round-trip safe)
// and logs the run summary the way the original tooling did.
func (e *Exporter) SaveJSON(bundle models.MExportBundle, filename string) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return &helpers.ExportError{ParserError: helpers.ParserError{Message: "failed to marshal export bundle", Cause: err}}
	}

	path := filepath.Join(e.Config.Export.OutputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &helpers.ExportError{ParserError: helpers.ParserError{
			Message: fmt.Sprintf("failed to write JSON artifact '%s'", path),
			Cause:   err,
		}}
	}

	e.Logger.Info("Data saved to %s", path)
	e.Logger.Info("Records with matched metrics: %d", bundle.OriginalRecords)
	e.Logger.Info("Total records after gap filling: %d", bundle.TotalRecords)
	e.Logger.Info("Generated records: %d", bundle.GeneratedRecords)
	e.Logger.Info("Detected sessions: %d", bundle.TotalSessions)

	for i, s := range bundle.Sessions {
		e.Logger.Info("  %d. %s - %s (%.1fh)", i+1, s.StartDate, s.EndDate, s.DurationHours)
		e.Logger.Info("     Max processing: %d, Avg processed: %d", s.MaxProcessing, s.AvgProcessed)
	}

	return nil
}

// -----------------------------------------------------------------------------

// SaveCSV writes the tabular artifact: header row, one row per normalized
// metric, date double-quoted and every other field bare, no trailing
// newline. encoding/csv is not used on purpose: it only quotes fields that
// need it, and the date column must always be quoted.
func (e *Exporter) SaveCSV(metrics []models.MMetric, filename string) error {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, m := range metrics {
		fmt.Fprintf(&b, "\n%d,\"%s\",%d,%d,%t", m.Timestamp, m.Date, m.Processing, m.Processed, m.Generated)
	}

	path := filepath.Join(e.Config.Export.OutputDir, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &helpers.ExportError{ParserError: helpers.ParserError{
			Message: fmt.Sprintf("failed to write CSV artifact '%s'", path),
			Cause:   err,
		}}
	}

	e.Logger.Info("CSV data saved to %s", path)
	return nil
}
