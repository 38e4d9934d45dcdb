package analysis

import (
	"testing"

	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// hourlySeries builds a normalized-looking series: one metric per hour
// starting at base, with the given processing values and processed=0.
func hourlySeries(processing ...int64) []models.MMetric {
	series := make([]models.MMetric, len(processing))
	for i, p := range processing {
		ts := hourTs(i, 0)
		series[i] = models.MMetric{
			Timestamp:  ts,
			Processing: p,
			Date:       utils.FormatISO(ts),
		}
	}
	return series
}

func defaultSegmenter() *SessionSegmenter {
	return &SessionSegmenter{LowThreshold: utils.DefaultLowProcessingThreshold}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_EndToEndExample(t *testing.T) {
	// 100000@08, 600000@09, 800000@10, 300000@11: one session 09:00-11:00.
	// The rising edge fires at 09 (prev 100000 is below the threshold and
	// processing grew), the drop below the threshold at 11 closes it.
	s := defaultSegmenter()
	series := hourlySeries(100000, 600000, 800000, 300000)

	sessions := s.DetectSessions(series)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	sess := sessions[0]
	if sess.StartDate != utils.FormatISO(hourTs(1, 0)) {
		t.Errorf("start %s, want %s", sess.StartDate, utils.FormatISO(hourTs(1, 0)))
	}
	if sess.EndDate != utils.FormatISO(hourTs(3, 0)) {
		t.Errorf("end %s, want %s", sess.EndDate, utils.FormatISO(hourTs(3, 0)))
	}
	if sess.MaxProcessing != 800000 {
		t.Errorf("maxProcessing %d, want 800000", sess.MaxProcessing)
	}
	if sess.DurationHours != 2.0 {
		t.Errorf("durationHours %v, want 2.0", sess.DurationHours)
	}
	if sess.Duration != 2*utils.MsPerHour {
		t.Errorf("duration %d ms, want %d", sess.Duration, 2*utils.MsPerHour)
	}
	if sess.TotalMetrics != 3 {
		t.Errorf("totalMetrics %d, want 3", sess.TotalMetrics)
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_Empty(t *testing.T) {
	s := defaultSegmenter()
	if got := s.DetectSessions(nil); len(got) != 0 {
		t.Fatalf("expected no sessions, got %d", len(got))
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_AllBaseline(t *testing.T) {
	s := defaultSegmenter()
	// Monotonically falling below-threshold values: rule 1 never fires
	// (processing never grows), rule 3 never fires (never at threshold).
	sessions := s.DetectSessions(hourlySeries(400000, 300000, 200000, 100000))
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_ElevatedAtFirstSample(t *testing.T) {
	// No preceding low baseline: the session opens straight from idle at
	// the first sample and closes at its own last metric.
	s := defaultSegmenter()
	sessions := s.DetectSessions(hourlySeries(700000, 900000, 800000))
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	sess := sessions[0]
	if sess.StartDate != utils.FormatISO(hourTs(0, 0)) {
		t.Errorf("start %s, want the first sample", sess.StartDate)
	}
	if sess.EndDate != utils.FormatISO(hourTs(2, 0)) {
		t.Errorf("end %s, want the last sample", sess.EndDate)
	}
	if sess.MaxProcessing != 900000 {
		t.Errorf("maxProcessing %d, want 900000", sess.MaxProcessing)
	}
	if sess.TotalMetrics != 3 {
		t.Errorf("totalMetrics %d, want 3", sess.TotalMetrics)
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_RisingEdgeWhileActive(t *testing.T) {
	// Successive rises inside a low baseline: each rising edge closes the
	// session opened by the previous one (ending it at prev) and anchors a
	// new session at the current metric within the same step. The rising
	// edge outranks the session-open state.
	s := defaultSegmenter()
	series := hourlySeries(100000, 200000, 300000, 800000, 100000)

	sessions := s.DetectSessions(series)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}

	wantBounds := [][2]int{{1, 1}, {2, 2}, {3, 4}}
	for i, bounds := range wantBounds {
		if sessions[i].StartDate != utils.FormatISO(hourTs(bounds[0], 0)) {
			t.Errorf("session %d start %s, want hour %d", i, sessions[i].StartDate, bounds[0])
		}
		if sessions[i].EndDate != utils.FormatISO(hourTs(bounds[1], 0)) {
			t.Errorf("session %d end %s, want hour %d", i, sessions[i].EndDate, bounds[1])
		}
	}
	if sessions[0].TotalMetrics != 1 || sessions[1].TotalMetrics != 1 {
		t.Error("sessions closed by a rising edge keep only their own metrics")
	}
	if sessions[2].MaxProcessing != 800000 {
		t.Errorf("last session maxProcessing %d, want 800000", sessions[2].MaxProcessing)
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_DipReopensFromIdle(t *testing.T) {
	// A dip below the threshold closes the session; the next rise above the
	// dipped value opens a fresh one.
	s := defaultSegmenter()
	series := hourlySeries(100000, 600000, 400000, 800000, 100000)

	sessions := s.DetectSessions(series)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	first, second := sessions[0], sessions[1]
	if first.StartDate != utils.FormatISO(hourTs(1, 0)) || first.EndDate != utils.FormatISO(hourTs(2, 0)) {
		t.Errorf("first session %s - %s, want hours 1-2", first.StartDate, first.EndDate)
	}
	if second.StartDate != utils.FormatISO(hourTs(3, 0)) || second.EndDate != utils.FormatISO(hourTs(4, 0)) {
		t.Errorf("second session %s - %s, want hours 3-4", second.StartDate, second.EndDate)
	}
	if first.MaxProcessing != 600000 {
		t.Errorf("first maxProcessing %d, want 600000", first.MaxProcessing)
	}
	if second.MaxProcessing != 800000 {
		t.Errorf("second maxProcessing %d, want 800000", second.MaxProcessing)
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_NonOverlapAndOrdering(t *testing.T) {
	s := defaultSegmenter()
	// Three waves with baseline valleys in between.
	series := hourlySeries(
		100000, 700000, 200000,
		100000, 900000, 300000,
		50000, 600000, 100000,
	)

	sessions := s.DetectSessions(series)
	if len(sessions) < 2 {
		t.Fatalf("expected multiple sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartDate < sessions[i-1].StartDate {
			t.Errorf("sessions out of order at %d", i)
		}
		if sessions[i].StartDate < sessions[i-1].EndDate {
			t.Errorf("session %d overlaps session %d", i, i-1)
		}
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_AvgProcessedExclusion(t *testing.T) {
	s := defaultSegmenter()

	t.Run("negatives excluded from the mean", func(t *testing.T) {
		series := hourlySeries(100000, 600000, 800000, 100000)
		series[1].Processed = 100
		series[2].Processed = -50
		series[3].Processed = 200

		sessions := s.DetectSessions(series)
		if len(sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(sessions))
		}
		// Constituents are hours 1..3; only 100 and 200 count.
		if sessions[0].AvgProcessed != 150 {
			t.Errorf("avgProcessed %d, want 150", sessions[0].AvgProcessed)
		}
	})

	t.Run("all negative reports zero", func(t *testing.T) {
		series := hourlySeries(100000, 600000, 100000)
		series[1].Processed = -10
		series[2].Processed = -20

		sessions := s.DetectSessions(series)
		if len(sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(sessions))
		}
		if sessions[0].AvgProcessed != 0 {
			t.Errorf("avgProcessed %d, want 0", sessions[0].AvgProcessed)
		}
	})
}

// -----------------------------------------------------------------------------

func TestDetectSessions_DurationIdentity(t *testing.T) {
	s := defaultSegmenter()
	series := hourlySeries(100000, 600000, 700000, 650000, 800000, 100000)

	sessions := s.DetectSessions(series)
	for _, sess := range sessions {
		hours := float64(sess.Duration) / float64(utils.MsPerHour)
		want := float64(int64(hours*10+0.5)) / 10
		if sess.DurationHours != want {
			t.Errorf("durationHours %v does not match duration %d ms", sess.DurationHours, sess.Duration)
		}
	}
}

// -----------------------------------------------------------------------------

func TestDetectSessions_SingleElement(t *testing.T) {
	s := defaultSegmenter()

	if got := s.DetectSessions(hourlySeries(100000)); len(got) != 0 {
		t.Fatalf("single low sample: expected no sessions, got %d", len(got))
	}

	sessions := s.DetectSessions(hourlySeries(600000))
	if len(sessions) != 1 {
		t.Fatalf("single elevated sample: expected 1 session, got %d", len(sessions))
	}
	if sessions[0].DurationHours != 0 {
		t.Errorf("durationHours %v, want 0", sessions[0].DurationHours)
	}
	if sessions[0].TotalMetrics != 1 {
		t.Errorf("totalMetrics %d, want 1", sessions[0].TotalMetrics)
	}
}
