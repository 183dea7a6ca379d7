package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockWorkspaces struct{ mock.Mock }

func (m *mockWorkspaces) ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

type mockCosts struct{ mock.Mock }

func (m *mockCosts) ProcessRecurrences(ctx context.Context, workspaceID, actorID string, today time.Time) (*domain.RecurrenceResult, error) {
	args := m.Called(ctx, workspaceID, actorID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurrenceResult), args.Error(1)
}

func newTestScheduler(spec string, ws *mockWorkspaces, costs *mockCosts, now time.Time) *RecurrenceScheduler {
	s := NewRecurrenceScheduler(spec, ws, costs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return now }
	return s
}

func TestRunOnce_ProcessesOnlyActiveWorkspaces(t *testing.T) {
	now := time.Date(2025, time.March, 1, 3, 0, 0, 0, time.UTC)
	ws, costs := new(mockWorkspaces), new(mockCosts)
	ws.On("ListWorkspaces", mock.Anything, mock.MatchedBy(func(f domain.WorkspaceFilter) bool {
		return f.Status != nil && *f.Status == domain.WorkspaceActive && f.Limit == 0
	})).Return([]domain.Workspace{{WorkspaceID: "ws-1"}, {WorkspaceID: "ws-2"}, {WorkspaceID: "ws-3"}}, nil)

	costs.On("ProcessRecurrences", mock.Anything, "ws-1", SystemActor, now).Return(&domain.RecurrenceResult{Processed: 2}, nil)
	costs.On("ProcessRecurrences", mock.Anything, "ws-2", SystemActor, now).Return(nil, apperrors.NewConflictError("busy"))
	costs.On("ProcessRecurrences", mock.Anything, "ws-3", SystemActor, now).Return(&domain.RecurrenceResult{Processed: 1, Skipped: 1}, nil)

	created := newTestScheduler("0 3 * * *", ws, costs, now).RunOnce(context.Background())

	assert.Equal(t, 3, created)
	ws.AssertExpectations(t)
	costs.AssertExpectations(t)
}

func TestRunOnce_ContinuesAfterWorkspaceError(t *testing.T) {
	now := time.Date(2025, time.March, 1, 3, 0, 0, 0, time.UTC)
	ws, costs := new(mockWorkspaces), new(mockCosts)
	ws.On("ListWorkspaces", mock.Anything, mock.Anything).Return([]domain.Workspace{{WorkspaceID: "a"}, {WorkspaceID: "b"}}, nil)
	costs.On("ProcessRecurrences", mock.Anything, "a", SystemActor, now).Return(nil, errors.New("db down"))
	costs.On("ProcessRecurrences", mock.Anything, "b", SystemActor, now).Return(&domain.RecurrenceResult{Processed: 1}, nil)

	assert.Equal(t, 1, newTestScheduler("", ws, costs, now).RunOnce(context.Background()))
	costs.AssertNumberOfCalls(t, "ProcessRecurrences", 2)
}

func TestRunOnce_ListFailure(t *testing.T) {
	ws, costs := new(mockWorkspaces), new(mockCosts)
	ws.On("ListWorkspaces", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	assert.Zero(t, newTestScheduler("", ws, costs, time.Now()).RunOnce(context.Background()))
	costs.AssertNotCalled(t, "ProcessRecurrences", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStart(t *testing.T) {
	ws, costs := new(mockWorkspaces), new(mockCosts)

	assert.NoError(t, newTestScheduler("", ws, costs, time.Now()).Start(), "empty schedule disables the job")
	assert.Error(t, newTestScheduler("not a cron", ws, costs, time.Now()).Start())

	s := newTestScheduler("0 3 * * *", ws, costs, time.Now())
	assert.NoError(t, s.Start())
	<-s.Stop().Done()
}
