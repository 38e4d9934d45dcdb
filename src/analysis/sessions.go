package analysis

import (
	"github.com/mzezin/alert-bot-parser/src/analysis/core"
	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// SessionSegmenter partitions an hourly metric series into processing
// sessions: contiguous intervals of elevated activity on the processing
// counter.
type SessionSegmenter struct {
	// LowThreshold separates baseline from elevated processing values.
	LowThreshold int64
}

// -----------------------------------------------------------------------------

// openSession accumulates state for a session that has not been finalized.
type openSession struct {
	startTimestamp int64
	metrics        []models.MMetric
	maxProcessing  int64
}

func newOpenSession(anchor models.MMetric) *openSession {
	return &openSession{
		startTimestamp: anchor.Timestamp,
		metrics:        []models.MMetric{anchor},
		maxProcessing:  anchor.Processing,
	}
}

// -----------------------------------------------------------------------------

// DetectSessions walks the series once and emits sessions in discovery
// order, which is non-decreasing by start date.
//
// The four branches below form one ordered priority list per position. The
// order is load-bearing: the rising-edge check fires even while a session is
// open, closing it at the previous metric and immediately anchoring a new
// one at the current metric within the same step. Do not refactor it into
// independent is-session-active conditionals.
func (s *SessionSegmenter) DetectSessions(metrics []models.MMetric) []models.MSession {
	if len(metrics) == 0 {
		return []models.MSession{}
	}

	low := s.LowThreshold
	if low <= 0 {
		low = utils.DefaultLowProcessingThreshold
	}

	sessions := make([]models.MSession, 0)
	var current *openSession

	for i := range metrics {
		cur := metrics[i]
		var prev *models.MMetric
		if i > 0 {
			prev = &metrics[i-1]
		}

		switch {
		// 1. Rising edge from below the threshold: processing grew from a
		// low baseline.
		case prev != nil && prev.Processing < low && cur.Processing > prev.Processing:
			if current != nil {
				sessions = append(sessions, s.finalize(current, *prev))
			}
			current = newOpenSession(cur)

		// 2. Session open: accumulate, close when processing falls back
		// below the threshold.
		case current != nil:
			current.metrics = append(current.metrics, cur)
			if cur.Processing > current.maxProcessing {
				current.maxProcessing = cur.Processing
			}
			if cur.Processing < low {
				sessions = append(sessions, s.finalize(current, cur))
				current = nil
			}

		// 3. Idle but already elevated: a session with no preceding low
		// baseline to detect an edge from (e.g. at the very first sample).
		case cur.Processing >= low:
			current = newOpenSession(cur)

			// 4. Idle and below the threshold: nothing to do.
		}
	}

	// A session still open at the end of the series closes at its own last
	// accumulated metric.
	if current != nil && len(current.metrics) > 0 {
		last := current.metrics[len(current.metrics)-1]
		sessions = append(sessions, s.finalize(current, last))
	}

	return sessions
}

// -----------------------------------------------------------------------------

// finalize collapses an open session into its summary. The constituent
// metric list is discarded; only the aggregates survive.
func (s *SessionSegmenter) finalize(sess *openSession, end models.MMetric) models.MSession {
	durationMs := end.Timestamp - sess.startTimestamp

	// Negative processed values are sensor noise, excluded from the average
	// entirely rather than counted as zero.
	var valid []float64
	for _, m := range sess.metrics {
		if m.Processed >= 0 {
			valid = append(valid, float64(m.Processed))
		}
	}
	var avgProcessed int64
	if len(valid) > 0 {
		avgProcessed = core.RoundMean(core.CalculateMean(valid))
	}

	return models.MSession{
		StartDate:     utils.FormatISO(sess.startTimestamp),
		EndDate:       utils.FormatISO(end.Timestamp),
		Duration:      durationMs,
		DurationHours: core.RoundToDecimals(float64(durationMs)/float64(utils.MsPerHour), 1),
		MaxProcessing: sess.maxProcessing,
		AvgProcessed:  avgProcessed,
		TotalMetrics:  len(sess.metrics),
	}
}
