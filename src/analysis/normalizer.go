package analysis

import (
	"sort"

	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// HourlyNormalizer turns a sparse, possibly unordered metric sequence into a
// strictly hourly series, synthesizing filler records for missing hours.
type HourlyNormalizer struct{}

// -----------------------------------------------------------------------------

// FillMissingHours returns exactly one metric per whole hour between the
// truncated hour of the earliest input metric and the raw timestamp of the
// latest one, inclusive.
//
// Only the first metric (in ascending timestamp order) of each hour bucket
// is represented; later metrics falling into the same bucket are dropped.
// Hours with no real metric get a generated record carrying the processing
// value of the last real metric seen (0 before the first one) and a
// processed count of 0: no update received, not zero throughput observed.
func (n *HourlyNormalizer) FillMissingHours(metrics []models.MMetric) []models.MMetric {
	if len(metrics) == 0 {
		return []models.MMetric{}
	}

	// Stable sort: ties keep their original order, so the first metric of a
	// duplicated hour is deterministic.
	sorted := make([]models.MMetric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	startHour := utils.TruncateToHour(sorted[0].Timestamp)
	endInstant := sorted[len(sorted)-1].Timestamp

	filled := make([]models.MMetric, 0, len(sorted))
	idx := 0
	var lastProcessing int64

	for bucket := startHour; bucket <= endInstant; bucket += utils.MsPerHour {
		// Drop leftovers of earlier buckets (duplicate-hour metrics beyond
		// the first).
		for idx < len(sorted) && utils.TruncateToHour(sorted[idx].Timestamp) < bucket {
			idx++
		}

		if idx < len(sorted) && utils.TruncateToHour(sorted[idx].Timestamp) == bucket {
			m := sorted[idx]
			lastProcessing = m.Processing
			filled = append(filled, m)
			idx++
			continue
		}

		filled = append(filled, models.MMetric{
			Timestamp:  bucket,
			Processing: lastProcessing,
			Processed:  0,
			Date:       utils.FormatISO(bucket),
			Generated:  true,
		})
	}

	return filled
}
