// Package scheduler runs the nightly ledger reconciliation and the weekly
// finance summary.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"herdbook/internal/config"
	"herdbook/internal/logger"
	"herdbook/internal/notifier"
	"herdbook/internal/services"
)

const (
	reconcileTimeout = 5 * time.Minute
	summaryTimeout   = 2 * time.Minute
	summaryWindow    = 7 * 24 * time.Hour
)

// Scheduler manages the background jobs.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.SchedulerConfig
	reconcile services.ReconcileServicer
	users     services.UserServicer
	ledger    services.LedgerServicer
	notifier  notifier.Notifier
	audit     services.AuditServicer
	log       *zap.SugaredLogger
	now       func() time.Time
}

// New creates a scheduler. A nil notifier disables the weekly summary job.
func New(cfg config.SchedulerConfig, reconcile services.ReconcileServicer, users services.UserServicer,
	ledger services.LedgerServicer, n notifier.Notifier, audit services.AuditServicer) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone: %w", err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		cfg:       cfg,
		reconcile: reconcile,
		users:     users,
		ledger:    ledger,
		notifier:  n,
		audit:     audit,
		log:       logger.Named("scheduler"),
		now:       time.Now,
	}, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ReconcileCron, s.runReconcile); err != nil {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}
	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.SummaryCron, s.sendWeeklySummaries); err != nil {
			return fmt.Errorf("schedule weekly summary: %w", err)
		}
	} else {
		s.log.Info("weekly summary disabled, no webhook configured")
	}

	s.log.Infow("starting scheduler",
		"reconcile_cron", s.cfg.ReconcileCron,
		"summary_cron", s.cfg.SummaryCron,
		"timezone", s.cfg.Timezone,
	)
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info("stopping scheduler")
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	started := s.now()
	report, err := s.reconcile.ReconcileAll(ctx)
	if err != nil {
		s.log.Errorw("nightly reconciliation failed", "error", err)
		return
	}

	s.log.Infow("nightly reconciliation finished",
		"users", report.Users,
		"scanned", report.Scanned,
		"created", report.Created,
		"updated", report.Updated,
		"retracted", report.Retracted,
		"orphans", report.Orphans,
		"failed", report.Failed,
		"duration_ms", s.now().Sub(started).Milliseconds(),
	)
	s.audit.Log(services.SystemActorID, "RECONCILE_ALL", "ledger", "", "",
		map[string]interface{}{"users": report.Users, "failed": report.Failed, "orphans": report.Orphans, "trigger": "cron"})
}

func (s *Scheduler) sendWeeklySummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
	defer cancel()

	users, err := s.users.ListActiveUsers(ctx)
	if err != nil {
		s.log.Errorw("failed to list users for weekly summary", "error", err)
		return
	}

	to := s.now()
	from := to.Add(-summaryWindow)
	sent := 0
	for i := range users {
		u := &users[i]
		summary, err := s.ledger.Summary(ctx, u.ID, &from, &to)
		if err != nil {
			s.log.Errorw("failed to build weekly summary", "user_id", u.ID, "error", err)
			continue
		}
		err = s.notifier.SendWeeklySummary(ctx, notifier.WeeklySummary{
			UserID:   u.ID,
			Email:    u.Email,
			FarmName: u.FarmName,
			From:     from,
			To:       to,
			Summary:  summary,
		})
		if err != nil {
			s.log.Errorw("failed to send weekly summary", "user_id", u.ID, "error", err)
			continue
		}
		sent++
	}
	s.log.Infow("weekly summaries sent", "sent", sent, "users", len(users))
}
