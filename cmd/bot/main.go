package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"NavSentinel/internal/collector"
	"NavSentinel/internal/config"
	"NavSentinel/internal/notifier"
	"NavSentinel/internal/recorder"
	"NavSentinel/internal/reference"
	"NavSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] NavSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init reference data source
	src := reference.NewDaiwaSource(cfg.Fund.Code, cfg.Proxy)
	log.Printf("[INFO] reference source: %s (fund %s)", src.Name(), cfg.Fund.Code)

	// Init market data collector
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] market data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Market.WindowDays)

	// Init LINE notifier
	ln := notifier.NewLineNotifier(cfg.Line.ChannelToken, cfg.Line.UserID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, src, col, cfg.Holdings(), cfg.Fund.FXSymbol, ln, rec)

	// Without a cron expression the process runs once and exits. The exit
	// status is 0 either way: a failed run has already been reported.
	if cfg.Schedule.DailyCron == "" {
		sched.RunOnce()
		log.Println("[INFO] NavSentinel done")
		return
	}

	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing estimation now")
		go sched.RunOnce()
	}

	log.Println("[INFO] NavSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] NavSentinel stopped")
}
