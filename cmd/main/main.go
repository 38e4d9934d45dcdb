package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mzezin/alert-bot-parser/src/analysis"
	"github.com/mzezin/alert-bot-parser/src/config"
	"github.com/mzezin/alert-bot-parser/src/data_source/telegram"
	"github.com/mzezin/alert-bot-parser/src/export"
	"github.com/mzezin/alert-bot-parser/src/extractor"
	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/network"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	daysBack := flag.Int("days", 0, "override the parse window in days (0 = use config)")
	flag.Parse()

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)

	days := conf.Window.DaysBack
	if *daysBack > 0 {
		days = *daysBack
	}

	// Setup Components
	netManager := network.NewNetworkManager(conf.MConfig, appLogger)
	dial, err := netManager.Dialer()
	if err != nil {
		appLogger.Critical("Failed to configure network: %v", err)
	}

	source := telegram.NewTelegramSource(conf.MConfig, dial, appLogger)
	analyzer := analysis.NewAnalysisFacade(conf.MConfig, appLogger)
	exporter := export.NewExporter(conf.MConfig, appLogger)

	// Ctrl-C aborts the run; gotd tears the connection down on cancel.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	toEpoch := time.Now().UTC().Unix()
	fromEpoch := toEpoch - int64(days)*24*60*60

	appLogger.Info("Parsing messages from group %d (%d days back)...", conf.Telegram.GroupID, days)

	// The whole pipeline runs inside the source's connection scope. An
	// acquisition failure aborts the run without a partial export.
	err = source.Run(ctx, func(ctx context.Context) error {
		ext := extractor.NewMessageExtractor(conf.MConfig, source, appLogger)
		metrics, err := ext.Extract(ctx, fromEpoch, toEpoch)
		if err != nil {
			return err
		}
		appLogger.Info("Extracted %d metric records", len(metrics))

		filled, sessions := analyzer.Process(metrics)

		bundle := exporter.BuildBundle(metrics, filled, sessions)
		return exporter.SaveAll(bundle, conf.Export.BaseFilename)
	})
	if err != nil {
		appLogger.Critical("Run failed: %v", err)
	}

	appLogger.Info("Parsing finished successfully")
}
