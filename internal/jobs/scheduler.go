package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/robfig/cron/v3"
)

// SystemActor is recorded as the creator of replicas produced by the scheduler.
const SystemActor = "system"

// WorkspaceLister lists tenants.
type WorkspaceLister interface {
	ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error)
}

// RecurrenceProcessor runs the recurring cost replicator for one workspace.
type RecurrenceProcessor interface {
	ProcessRecurrences(ctx context.Context, workspaceID, actorID string, today time.Time) (*domain.RecurrenceResult, error)
}

// RecurrenceScheduler replicates due recurring costs of every active
// workspace on a cron schedule.
type RecurrenceScheduler struct {
	cron       *cron.Cron
	schedule   string
	workspaces WorkspaceLister
	costs      RecurrenceProcessor
	logger     *slog.Logger
	now        func() time.Time
	runTimeout time.Duration
}

func NewRecurrenceScheduler(schedule string, workspaces WorkspaceLister, costs RecurrenceProcessor, logger *slog.Logger) *RecurrenceScheduler {
	return &RecurrenceScheduler{
		cron:       cron.New(),
		schedule:   schedule,
		workspaces: workspaces,
		costs:      costs,
		logger:     logger.With(slog.String("job", "recurrence")),
		now:        time.Now,
		runTimeout: 10 * time.Minute,
	}
}

// Start registers the job and starts the cron loop. An empty schedule leaves the
// scheduler disabled.
func (s *RecurrenceScheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("Recurrence scheduler disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Recurrence scheduler started", slog.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron loop. The returned context is done once running jobs finish.
func (s *RecurrenceScheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *RecurrenceScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce processes every ACTIVE workspace and returns how many replicas were
// created. A workspace already being processed elsewhere is skipped.
func (s *RecurrenceScheduler) RunOnce(ctx context.Context) int {
	active := domain.WorkspaceActive
	workspaces, err := s.workspaces.ListWorkspaces(ctx, domain.WorkspaceFilter{Status: &active})
	if err != nil {
		s.logger.Error("Failed to list workspaces", slog.String("error", err.Error()))
		return 0
	}

	today := s.now()
	created := 0
	for _, ws := range workspaces {
		if ctx.Err() != nil {
			s.logger.Warn("Recurrence run interrupted", slog.String("error", ctx.Err().Error()))
			break
		}
		logger := s.logger.With(slog.String("workspace_id", ws.WorkspaceID))
		result, err := s.costs.ProcessRecurrences(ctx, ws.WorkspaceID, SystemActor, today)
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				logger.Info("Recurrence already running, skipping workspace")
				continue
			}
			logger.Error("Recurrence run failed", slog.String("error", err.Error()))
			continue
		}
		created += result.Processed
		if result.Processed > 0 || len(result.Failures) > 0 {
			logger.Info("Recurring costs replicated",
				slog.Int("processed", result.Processed),
				slog.Int("skipped", result.Skipped),
				slog.Int("failed", len(result.Failures)))
		}
	}
	return created
}
