// Package scheduler runs the periodic ICS snapshot export.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/export"
)

// ErrNoExportPath is returned when a snapshot is requested without a
// destination file.
var ErrNoExportPath = errors.New("export path is not configured")

// Exporter writes one ICS snapshot covering a window around today.
type Exporter struct {
	Source     export.RecordSource
	Path       string
	WeeksBack  int
	WeeksAhead int
	Now        func() time.Time
	Logger     *slog.Logger
}

// Run writes a snapshot now.
func (e *Exporter) Run(ctx context.Context) (*export.Result, error) {
	if strings.TrimSpace(e.Path) == "" {
		return nil, ErrNoExportPath
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	stamp := now()
	window := export.SnapshotWindow(domain.Day(stamp), e.WeeksBack, e.WeeksAhead)

	res, err := export.Snapshot(ctx, e.Source, window, e.Path, stamp)
	if err != nil {
		return nil, err
	}
	e.logger().Info("ics snapshot written",
		"path", e.Path,
		"from", domain.DateKey(window.From),
		"to", domain.DateKey(window.To),
		"written", res.Written,
		"skipped", res.Skipped,
	)
	for _, w := range res.Warnings {
		e.logger().Warn("ics snapshot", "warning", w)
	}
	return res, nil
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// ValidateSpec checks a standard five-field cron expression.
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid export schedule %q: %w", spec, err)
	}
	return nil
}

// Scheduler triggers an Exporter on a cron schedule. Runs never overlap: a
// tick that fires while the previous export is still writing is skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	exporter *Exporter
	log      *slog.Logger

	mu   sync.Mutex
	runs int
	last error
}

// New builds a Scheduler for spec. Nothing runs until Start.
func New(spec string, exporter *Exporter, logger *slog.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid export schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{schedule: schedule, exporter: exporter, log: logger}
	cl := cronLogger{log: logger}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	s.cron.Schedule(schedule, cron.FuncJob(s.tick))
	return s, nil
}

// Next reports when the schedule fires after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Start runs the schedule until ctx is cancelled, then waits for an
// in-flight export to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("export scheduler started", "next", s.Next(time.Now()).Format(time.RFC3339))
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("export scheduler stopped")
}

// Stats returns the number of completed runs and the last run's error.
func (s *Scheduler) Stats() (runs int, last error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs, s.last
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, err := s.exporter.Run(ctx)
	if err != nil {
		s.log.Error("scheduled export failed", "error", err)
	}
	s.mu.Lock()
	s.runs++
	s.last = err
	s.mu.Unlock()
}

// cronLogger routes cron's internal logging into slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
