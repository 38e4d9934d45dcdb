package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mzezin/alert-bot-parser/src/logger"
)

// Offline harness: runs the full pipeline over synthetic messages, no
// Telegram account needed. Useful for eyeballing exporter output and the
// session summary without burning API quota.
func main() {
	outputDir := flag.String("output", "output_test", "directory for the test artifacts")
	days := flag.Int("days", 3, "length of the synthetic history in days")
	flag.Parse()

	conf := buildConfig(*outputDir)
	appLogger := logger.NewLogger(conf, conf.Name)

	source := newMemorySource(generateMessages(*days))
	appLogger.Info("Generated %d synthetic messages (%d pages)", len(source.messages), source.pageCount())

	if err := runPipeline(context.Background(), conf, source, appLogger); err != nil {
		fmt.Printf("Harness run failed: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("Harness run finished, artifacts in %s/", *outputDir)
}
