package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"
)

// -----------------------------------------------------------------------------

// buildConfig returns an in-memory config for offline runs. Telegram
// credentials are absent on purpose; the harness never connects.
func buildConfig(outputDir string) *models.MConfig {
	return &models.MConfig{
		Name:     "alert-bot-parser-test",
		LogLevel: "debug",
		Analysis: models.MAnalysisConfig{
			LowProcessingThreshold: utils.DefaultLowProcessingThreshold,
		},
		Export: models.MExportConfig{
			OutputDir:    outputDir,
			BaseFilename: "pan_metrics",
		},
		Network: models.MNetworkConfig{
			RequestTimeout: 30,
			MaxRetries:     3,
		},
	}
}

// -----------------------------------------------------------------------------

// memorySource serves a fixed message history, newest-first, the way the
// real source pages it.
type memorySource struct {
	messages []models.MRawMessage // ordered newest-first, decreasing id
}

func newMemorySource(messages []models.MRawMessage) *memorySource {
	return &memorySource{messages: messages}
}

func (s *memorySource) Name() string {
	return "memory"
}

func (s *memorySource) pageCount() int {
	return (len(s.messages) + utils.PageSize - 1) / utils.PageSize
}

func (s *memorySource) FetchPage(_ context.Context, offsetID int, limit int) ([]models.MRawMessage, error) {
	page := make([]models.MRawMessage, 0, limit)
	for _, msg := range s.messages {
		if offsetID > 0 && msg.ID >= offsetID {
			continue
		}
		page = append(page, msg)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

// -----------------------------------------------------------------------------

// generateMessages builds an hourly status-message history covering the
// given number of days, ending now. It mixes in everything the pipeline has
// to cope with: unrelated chatter, gaps, duplicate hours, negative
// processed counters and a couple of load waves crossing the session
// threshold.
func generateMessages(days int) []models.MRawMessage {
	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC().Truncate(time.Hour)
	hours := days * 24

	var messages []models.MRawMessage
	id := hours*3 + 100 // ids decrease as we go back in time

	for h := 0; h < hours; h++ {
		ts := now.Add(-time.Duration(h) * time.Hour).Unix()

		// Two gaps per day: no status message at all for these hours.
		if h%24 == 5 || h%24 == 13 {
			continue
		}

		// Load wave: eight elevated hours per day, baseline otherwise.
		processing := int64(100000 + rng.Intn(200000))
		if hourOfDay := h % 24; hourOfDay >= 8 && hourOfDay < 16 {
			processing = 600000 + int64(rng.Intn(400000))
		}
		processed := int64(rng.Intn(50000))
		if rng.Intn(20) == 0 {
			processed = -1 // sensor glitch, excluded from averages
		}

		id--
		messages = append(messages, models.MRawMessage{
			ID:   id,
			Date: ts,
			Text: fmt.Sprintf("Панов в обработке ВСЕ - %d Панов обработано за час ВСЕ - %d", processing, processed),
		})

		// Occasional duplicate report inside the same hour.
		if h%24 == 10 {
			id--
			messages = append(messages, models.MRawMessage{
				ID:   id,
				Date: ts - 600,
				Text: fmt.Sprintf("Панов в обработке ВСЕ - %d Панов обработано за час ВСЕ - %d", processing/2, processed),
			})
		}

		// Unrelated chatter the extractor must skip.
		if h%6 == 0 {
			id--
			messages = append(messages, models.MRawMessage{
				ID:   id,
				Date: ts - 1200,
				Text: "деплой прошёл, всё зелёное",
			})
		}
	}

	return messages
}
