package scheduler

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"

	"NavSentinel/internal/collector"
	"NavSentinel/internal/estimator"
	"NavSentinel/internal/model"
	"NavSentinel/internal/notifier"
	"NavSentinel/internal/recorder"
	"NavSentinel/internal/reference"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the estimation pipeline, either once or on a cron.
type Scheduler struct {
	Cron      *cron.Cron
	Source    reference.Source
	Collector *collector.Collector
	Holdings  []model.Holding
	FXSymbol  string
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src reference.Source, col *collector.Collector, holdings []model.Holding, fxSymbol string, sender notifier.Sender, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Source:    src,
		Collector: col,
		Holdings:  holdings,
		FXSymbol:  fxSymbol,
		Notifier:  sender,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register adds the daily estimation task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.RunOnce); err != nil {
		return fmt.Errorf("register daily task: %w", err)
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

// RunOnce executes one full estimation run. It is the single recovery
// point: any pipeline error becomes an error report delivered over the
// same channel as a success, and never escapes. A delivery or recording
// failure is only logged, the information of interest has already been
// printed by then.
func (s *Scheduler) RunOnce() {
	log.Println("[INFO] running NAV estimation")

	defer func() {
		if r := recover(); r != nil {
			report := notifier.FormatErrorReport(fmt.Errorf("panic: %v", r), debug.Stack())
			fmt.Println(report)
			s.trySend(report)
			s.record(&recorder.RunRecord{Status: recorder.StatusError, ErrText: fmt.Sprintf("panic: %v", r)})
		}
	}()

	est, err := s.estimate()
	if err != nil {
		report := notifier.FormatErrorReport(err, debug.Stack())
		fmt.Println(report)
		s.trySend(report)
		s.record(&recorder.RunRecord{Status: recorder.StatusError, ErrText: err.Error()})
		return
	}

	report := notifier.FormatEstimateReport(est, s.Holdings)
	fmt.Println(report)
	s.trySend(report)
	s.record(&recorder.RunRecord{Estimate: est, Status: recorder.StatusOK})
}

// estimate is the computation pipeline: reference data, market data, share
// estimation, projection. Errors propagate untouched to RunOnce.
func (s *Scheduler) estimate() (*model.Estimate, error) {
	ref, err := s.Source.Latest(s.Ctx)
	if err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}

	symbols := make([]string, 0, len(s.Holdings)+1)
	for _, h := range s.Holdings {
		symbols = append(symbols, h.Ticker)
	}
	symbols = append(symbols, s.FXSymbol)

	table, err := s.Collector.Collect(symbols)
	if err != nil {
		return nil, fmt.Errorf("market data: %w", err)
	}

	prevPrices := make(map[string]float64, len(s.Holdings))
	latestPrices := make(map[string]float64, len(s.Holdings))
	for _, h := range s.Holdings {
		prevPrices[h.Ticker] = table.Prev(h.Ticker)
		latestPrices[h.Ticker] = table.Last(h.Ticker)
	}
	prevFX := table.Prev(s.FXSymbol)
	latestFX := table.Last(s.FXSymbol)

	shares, units, err := estimator.EstimateShares(ref, s.Holdings, prevPrices, prevFX)
	if err != nil {
		return nil, fmt.Errorf("estimate shares: %w", err)
	}

	est, err := estimator.Project(shares, units, s.Holdings, latestPrices, prevFX, latestFX, ref)
	if err != nil {
		return nil, fmt.Errorf("project nav: %w", err)
	}
	return est, nil
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

func (s *Scheduler) record(rec *recorder.RunRecord) {
	if err := s.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
