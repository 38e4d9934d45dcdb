package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mzezin/alert-bot-parser/src/analysis"
	"github.com/mzezin/alert-bot-parser/src/export"
	"github.com/mzezin/alert-bot-parser/src/extractor"
	"github.com/mzezin/alert-bot-parser/src/interfaces"
	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// runPipeline drives extraction, normalization, segmentation and export over
// the given source, then sanity-checks the output invariants.
func runPipeline(ctx context.Context, conf *models.MConfig, source interfaces.IMessageSource, appLogger *logger.Logger) error {
	toEpoch := time.Now().UTC().Unix()
	fromEpoch := toEpoch - 365*24*60*60 // wide open window; the harness history is short

	ext := extractor.NewMessageExtractor(conf, source, appLogger)
	metrics, err := ext.Extract(ctx, fromEpoch, toEpoch)
	if err != nil {
		return err
	}
	appLogger.Info("Extracted %d metric records", len(metrics))

	analyzer := analysis.NewAnalysisFacade(conf, appLogger)
	filled, sessions := analyzer.Process(metrics)

	if err := checkInvariants(filled, sessions); err != nil {
		return err
	}
	appLogger.Info("Invariants hold: %d hourly records, %d sessions", len(filled), len(sessions))

	exporter := export.NewExporter(conf, appLogger)
	bundle := exporter.BuildBundle(metrics, filled, sessions)
	return exporter.SaveAll(bundle, conf.Export.BaseFilename)
}

// -----------------------------------------------------------------------------

// checkInvariants verifies hourly contiguity of the series and
// non-overlap/ordering of the sessions.
func checkInvariants(filled []models.MMetric, sessions []models.MSession) error {
	for i := 1; i < len(filled); i++ {
		prevBucket := utils.TruncateToHour(filled[i-1].Timestamp)
		curBucket := utils.TruncateToHour(filled[i].Timestamp)
		if curBucket != prevBucket+utils.MsPerHour {
			return fmt.Errorf("hour bucket gap between %s and %s", filled[i-1].Date, filled[i].Date)
		}
		if filled[i].Generated && filled[i].Processed != 0 {
			return fmt.Errorf("generated record at %s has non-zero processed", filled[i].Date)
		}
	}

	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartDate < sessions[i-1].EndDate {
			return fmt.Errorf("session %d overlaps session %d", i, i-1)
		}
	}

	return nil
}
