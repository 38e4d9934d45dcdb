package analysis

import (
	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// AnalysisFacade bundles the hourly normalizer and the session segmenter
// behind a single entry point configured from MConfig.
type AnalysisFacade struct {
	Config     *models.MConfig
	Logger     *logger.Logger
	normalizer *HourlyNormalizer
	segmenter  *SessionSegmenter
}

// -----------------------------------------------------------------------------

// NewAnalysisFacade creates the facade. A zero threshold in the config falls
// back to the default.
func NewAnalysisFacade(cfg *models.MConfig, log *logger.Logger) *AnalysisFacade {
	low := cfg.Analysis.LowProcessingThreshold
	if low <= 0 {
		low = utils.DefaultLowProcessingThreshold
	}

	return &AnalysisFacade{
		Config:     cfg,
		Logger:     log,
		normalizer: &HourlyNormalizer{},
		segmenter:  &SessionSegmenter{LowThreshold: low},
	}
}

// -----------------------------------------------------------------------------

// Normalize produces the gap-filled strictly hourly series.
func (a *AnalysisFacade) Normalize(metrics []models.MMetric) []models.MMetric {
	filled := a.normalizer.FillMissingHours(metrics)
	a.Logger.Debug("Normalized %d metrics into %d hourly records", len(metrics), len(filled))
	return filled
}

// -----------------------------------------------------------------------------

// DetectSessions segments a normalized series into processing sessions.
func (a *AnalysisFacade) DetectSessions(filled []models.MMetric) []models.MSession {
	sessions := a.segmenter.DetectSessions(filled)
	a.Logger.Debug("Detected %d sessions in %d records", len(sessions), len(filled))
	return sessions
}

// -----------------------------------------------------------------------------

// Process runs both stages in order. Convenience for callers that do not
// need the intermediate series separately.
func (a *AnalysisFacade) Process(metrics []models.MMetric) ([]models.MMetric, []models.MSession) {
	filled := a.Normalize(metrics)
	return filled, a.DetectSessions(filled)
}
