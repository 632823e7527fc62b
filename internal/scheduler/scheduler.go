package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"MarketScanner/internal/export"
	"MarketScanner/internal/model"
	"MarketScanner/internal/notifier"
	"MarketScanner/internal/recorder"
	"MarketScanner/internal/scan"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the daily scan cron task and Telegram commands.
type Scheduler struct {
	Cron       *cron.Cron
	Engine     *scan.Engine
	ExportDir  string
	ExportOpts export.Options
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	Ctx        context.Context

	mu         sync.Mutex
	lastReport *model.Report
	busy       atomic.Bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *scan.Engine, exportDir string, opts export.Options, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Engine:     eng,
		ExportDir:  exportDir,
		ExportOpts: opts,
		Notifier:   tn,
		Recorder:   rec,
		Ctx:        ctx,
	}
}

// RegisterDaily registers the daily scan task.
func (s *Scheduler) RegisterDaily(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.scanTask); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

// LastReport returns the most recent successful scan, or nil.
func (s *Scheduler) LastReport() *model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// scanTask runs one scan end to end. A full pass over the universe takes
// minutes, so overlapping triggers are dropped rather than queued.
func (s *Scheduler) scanTask() {
	if !s.busy.CompareAndSwap(false, true) {
		log.Println("[WARN] scan already running, skipping trigger")
		return
	}
	defer s.busy.Store(false)

	log.Println("[INFO] running daily scan")
	startedAt := time.Now()
	report, err := s.Engine.Run()
	if err != nil {
		log.Printf("[ERROR] daily scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		if rerr := s.Recorder.RecordRun(recorder.FailedRun(startedAt, err)); rerr != nil {
			log.Printf("[ERROR] record run: %v", rerr)
		}
		return
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	paths, err := export.WriteReportFiles(report, s.ExportDir, s.ExportOpts)
	if err != nil {
		log.Printf("[ERROR] write report files: %v", err)
	}
	for _, p := range paths {
		log.Printf("[INFO] saved %s", p)
	}

	s.trySend(notifier.FormatScanReport(report))

	if err := s.Recorder.RecordRun(recorder.FromReport(report)); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		if s.busy.Load() {
			return "⏳ A scan is already running."
		}
		go s.scanTask()
		return "⏳ Scan started, results will follow."
	case "/status":
		return notifier.FormatStatus(s.LastReport())
	default:
		return "Available commands:\n• /scan\n• /status"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
