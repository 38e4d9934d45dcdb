package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/mzezin/alert-bot-parser/src/helpers"
	"github.com/mzezin/alert-bot-parser/src/interfaces"
	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// metricPattern matches the two labeled counters of a status message.
// Case-insensitive; the dot deliberately does not cross newlines, so both
// labels must sit inside one contiguous span of the body.
var metricPattern = regexp.MustCompile(`(?i)Панов в обработке ВСЕ - (-?\d+).*?Панов обработано за час ВСЕ - (-?\d+)`)

// -----------------------------------------------------------------------------

// MessageExtractor walks a message source's history and converts matching
// messages into metric records.
type MessageExtractor struct {
	Config *models.MConfig
	Source interfaces.IMessageSource
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMessageExtractor(cfg *models.MConfig, src interfaces.IMessageSource, log *logger.Logger) *MessageExtractor {
	return &MessageExtractor{
		Config: cfg,
		Source: src,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Extract pages through the source's history newest-first and returns the
// metrics of every matching message whose timestamp falls inside
// [fromEpoch, toEpoch] (epoch seconds, inclusive).
//
// The first message older than fromEpoch ends ingestion immediately: pages
// are newest-first, so nothing older is needed. An empty page also ends
// ingestion. A fixed cooldown separates page requests, as mandated by the
// source's rate limits.
func (e *MessageExtractor) Extract(ctx context.Context, fromEpoch, toEpoch int64) ([]models.MMetric, error) {
	metrics := []models.MMetric{}
	offsetID := 0

	retries := e.Config.Network.MaxRetries
	if retries < 1 {
		retries = 1
	}

	for pageNum := 0; ; pageNum++ {
		if pageNum > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(utils.PageCooldown):
			}
		}

		res, err := helpers.RetryWithBackoff(e.Logger, "history page fetch", retries, time.Second, func() (interface{}, error) {
			return e.Source.FetchPage(ctx, offsetID, utils.PageSize)
		})
		if err != nil {
			return nil, &helpers.SourceError{ParserError: helpers.ParserError{
				Message: fmt.Sprintf("history page fetch at offset %d failed", offsetID),
				Cause:   err,
			}}
		}
		page := res.([]models.MRawMessage)

		if len(page) == 0 {
			e.Logger.Debug("History exhausted after %d pages", pageNum)
			break
		}

		for _, msg := range page {
			if msg.Date < fromEpoch {
				// Everything after this point is older than the window.
				e.Logger.Debug("Reached message older than window at id %d", msg.ID)
				return metrics, nil
			}
			if msg.Date > toEpoch {
				continue
			}
			if metric, ok := ParseMessage(msg); ok {
				metrics = append(metrics, metric)
			}
		}

		offsetID = page[len(page)-1].ID
		e.Logger.Debug("Page %d processed, %d metrics so far, next offset %d", pageNum+1, len(metrics), offsetID)
	}

	return metrics, nil
}

// -----------------------------------------------------------------------------

// ParseMessage converts a raw message into a metric record. The second
// return value is false when the body does not match the pattern; such
// messages are skipped silently, they are not errors.
func ParseMessage(msg models.MRawMessage) (models.MMetric, bool) {
	match := metricPattern.FindStringSubmatch(msg.Text)
	if match == nil {
		return models.MMetric{}, false
	}

	processing, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return models.MMetric{}, false
	}
	processed, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return models.MMetric{}, false
	}

	ts := msg.Date * 1000
	return models.MMetric{
		Timestamp:  ts,
		Processing: processing,
		Processed:  processed,
		Date:       utils.FormatISO(ts),
		Generated:  false,
	}, true
}
