package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketScanner/internal/collector"
	"MarketScanner/internal/config"
	"MarketScanner/internal/export"
	"MarketScanner/internal/listing"
	"MarketScanner/internal/notifier"
	"MarketScanner/internal/recorder"
	"MarketScanner/internal/scan"
	"MarketScanner/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketScanner starting...")

	// .env is optional; godotenv never overrides variables already set.
	_ = godotenv.Load()

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

	// Init listing source
	src := listing.NewNSEClient(cfg.Listing.URL, cfg.Proxy)

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "alpaca":
		fetcher = collector.NewAlpacaFetcher(cfg.DataSource.AlpacaKey, cfg.DataSource.AlpacaSecret)
	case "mock":
		fetcher = &collector.MockFetcher{Price: 100}
	default:
		yf := collector.NewYahooFetcher(cfg.Proxy)
		yf.Quiet = cfg.Quiet
		fetcher = yf
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.Scan.LookbackDays)
	col.ChunkSize = cfg.Scan.ChunkSize
	col.Progress = func(processed, total int) {
		log.Printf("[INFO] downloaded %d/%d tickers", processed, total)
	}

	// Init scan engine
	eng := scan.NewEngine(src, col)
	eng.Threshold = cfg.Scan.TriggerThresholdPct
	eng.MAWindow = cfg.Scan.MAWindow

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

	opts := export.Options{IncludeNewsLink: cfg.Export.IncludeNewsLink}

	if len(os.Args) > 1 && os.Args[1] == "daemon" {
		runDaemon(cfg, eng, rec, opts)
		return
	}
	runOnce(eng, rec, cfg.Export.Dir, opts)
}

// runOnce executes a single scan and prints the report to stdout.
func runOnce(eng *scan.Engine, rec recorder.Recorder, exportDir string, opts export.Options) {
	startedAt := time.Now()
	report, err := eng.Run()
	if err != nil {
		if rerr := rec.RecordRun(recorder.FailedRun(startedAt, err)); rerr != nil {
			log.Printf("[ERROR] record run: %v", rerr)
		}
		switch {
		case errors.Is(err, listing.ErrUnavailable):
			log.Printf("[ERROR] no tickers to scan: %v", err)
		case errors.Is(err, collector.ErrNoData):
			log.Printf("[ERROR] no market data downloaded: %v", err)
		default:
			log.Printf("[ERROR] scan: %v", err)
		}
		return
	}

	export.WriteSummary(os.Stdout, report)

	paths, err := export.WriteReportFiles(report, exportDir, opts)
	if err != nil {
		log.Printf("[ERROR] write report files: %v", err)
	}
	for _, p := range paths {
		log.Printf("[INFO] saved %s", p)
	}

	if err := rec.RecordRun(recorder.FromReport(report)); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// runDaemon schedules the daily scan and serves Telegram commands until
// interrupted.
func runDaemon(cfg *config.Config, eng *scan.Engine, rec recorder.Recorder, opts export.Options) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Println("[WARN] telegram not configured, notifications disabled")
	}

	sched := scheduler.NewScheduler(ctx, eng, cfg.Export.Dir, opts, tn, rec)
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunNow()
	}

	log.Println("[INFO] MarketScanner is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketScanner stopped")
}
