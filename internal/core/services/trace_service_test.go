package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/core/services"
	"github.com/xeralabs/rize-engine/internal/core/workers"
)

type MockArcRepo struct {
	mock.Mock
}

func (m *MockArcRepo) Create(ctx context.Context, arc *domain.Arc) error {
	args := m.Called(ctx, arc)
	return args.Error(0)
}

func (m *MockArcRepo) GetByID(ctx context.Context, id string) (*domain.Arc, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Arc), args.Error(1)
}

func (m *MockArcRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Arc, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Arc), args.Error(1)
}

func (m *MockArcRepo) Update(ctx context.Context, arc *domain.Arc) error {
	args := m.Called(ctx, arc)
	return args.Error(0)
}

func (m *MockArcRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArcRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	args := m.Called(ctx, id, current, longest)
	return args.Error(0)
}

func getTestWorker() *workers.StreakWorker {
	// Never started; Enqueue just buffers.
	return workers.NewStreakWorker(nil, nil)
}

func TestTraceService_Create(t *testing.T) {
	ctx := context.Background()
	userID := "user-123"
	arcID := "arc-abc"
	traceDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Validates ownership and creates the trace", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		arcRepo := new(MockArcRepo)
		svc := services.NewTraceService(traceRepo, arcRepo, getTestWorker())

		arcRepo.On("GetByID", ctx, arcID).Return(&domain.Arc{ID: arcID, UserID: userID}, nil)
		traceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Trace")).Return(nil)

		trace, err := svc.Create(ctx, services.CreateTraceInput{
			ArcID:     arcID,
			UserID:    userID,
			TraceDate: traceDate,
			Outcome:   domain.TraceOutcomeSuccess,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, trace.Version)
		assert.Equal(t, traceDate, trace.TraceDate)

		traceRepo.AssertExpectations(t)
	})

	t.Run("Fail: Rejects trace against another user's ARC", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		arcRepo := new(MockArcRepo)
		svc := services.NewTraceService(traceRepo, arcRepo, getTestWorker())

		arcRepo.On("GetByID", ctx, arcID).Return(&domain.Arc{ID: arcID, UserID: "someone-else"}, nil)

		trace, err := svc.Create(ctx, services.CreateTraceInput{
			ArcID:     arcID,
			UserID:    userID,
			TraceDate: traceDate,
			Outcome:   domain.TraceOutcomeSuccess,
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, trace)
		traceRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Rejects unknown outcome before touching storage", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		arcRepo := new(MockArcRepo)
		svc := services.NewTraceService(traceRepo, arcRepo, getTestWorker())

		trace, err := svc.Create(ctx, services.CreateTraceInput{
			ArcID:     arcID,
			UserID:    userID,
			TraceDate: traceDate,
			Outcome:   "skipped",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTraceOutcome)
		assert.Nil(t, trace)
		arcRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestTraceService_Update(t *testing.T) {
	ctx := context.Background()
	userID := "user-123"

	existing := func() *domain.Trace {
		return &domain.Trace{
			ID:        "trace-1",
			ArcID:     "arc-abc",
			UserID:    userID,
			TraceDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Outcome:   domain.TraceOutcomeSuccess,
			Version:   2,
		}
	}

	t.Run("Success: Bumps version on update", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		svc := services.NewTraceService(traceRepo, new(MockArcRepo), getTestWorker())

		traceRepo.On("GetByID", ctx, "trace-1").Return(existing(), nil)
		traceRepo.On("Update", ctx, mock.AnythingOfType("*domain.Trace")).Return(nil)

		trace, err := svc.Update(ctx, services.UpdateTraceInput{
			ID:      "trace-1",
			UserID:  userID,
			Outcome: domain.TraceOutcomeFailure,
			Version: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, trace.Version)
		assert.Equal(t, domain.TraceOutcomeFailure, trace.Outcome)
	})

	t.Run("Fail: Stale version returns conflict", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		svc := services.NewTraceService(traceRepo, new(MockArcRepo), getTestWorker())

		traceRepo.On("GetByID", ctx, "trace-1").Return(existing(), nil)

		trace, err := svc.Update(ctx, services.UpdateTraceInput{
			ID:      "trace-1",
			UserID:  userID,
			Outcome: domain.TraceOutcomeFailure,
			Version: 1,
		})

		assert.ErrorIs(t, err, domain.ErrTraceConflict)
		assert.Nil(t, trace)
		traceRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Fail: Another user's trace reads as unauthorized", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		svc := services.NewTraceService(traceRepo, new(MockArcRepo), getTestWorker())

		traceRepo.On("GetByID", ctx, "trace-1").Return(existing(), nil)

		trace, err := svc.Update(ctx, services.UpdateTraceInput{
			ID:      "trace-1",
			UserID:  "intruder",
			Outcome: domain.TraceOutcomeFailure,
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, trace)
	})
}

func TestTraceService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := "user-123"

	t.Run("Success: Owner can delete", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		svc := services.NewTraceService(traceRepo, new(MockArcRepo), getTestWorker())

		traceRepo.On("GetByID", ctx, "trace-1").
			Return(&domain.Trace{ID: "trace-1", ArcID: "arc-abc", UserID: userID}, nil)
		traceRepo.On("Delete", ctx, "trace-1", userID).Return(nil)

		err := svc.Delete(ctx, "trace-1", userID)

		assert.NoError(t, err)
		traceRepo.AssertExpectations(t)
	})

	t.Run("Fail: Non-owner cannot delete", func(t *testing.T) {
		traceRepo := new(MockTraceRepo)
		svc := services.NewTraceService(traceRepo, new(MockArcRepo), getTestWorker())

		traceRepo.On("GetByID", ctx, "trace-1").
			Return(&domain.Trace{ID: "trace-1", ArcID: "arc-abc", UserID: "someone-else"}, nil)

		err := svc.Delete(ctx, "trace-1", userID)

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		traceRepo.AssertNotCalled(t, "Delete")
	})
}
