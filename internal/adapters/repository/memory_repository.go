package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

// In-memory repositories backing unit tests and local development.

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
		if u.Handle == user.Handle {
			return domain.ErrHandleTaken
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}

	r.store[user.ID] = user
	return nil
}

type InMemoryArcRepository struct {
	store map[string]*domain.Arc

	mu sync.RWMutex
}

func NewInMemoryArcRepository() *InMemoryArcRepository {
	return &InMemoryArcRepository{
		store: make(map[string]*domain.Arc),
	}
}

func (r *InMemoryArcRepository) Create(ctx context.Context, arc *domain.Arc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[arc.ID] = arc
	return nil
}

func (r *InMemoryArcRepository) GetByID(ctx context.Context, id string) (*domain.Arc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	arc, ok := r.store[id]
	if !ok {
		return nil, domain.ErrArcNotFound
	}
	return arc, nil
}

func (r *InMemoryArcRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Arc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var arcs []*domain.Arc
	for _, a := range r.store {
		if a.UserID == userID {
			arcs = append(arcs, a)
		}
	}

	sort.Slice(arcs, func(i, j int) bool {
		return arcs[i].CreatedAt.After(arcs[j].CreatedAt)
	})

	return arcs, nil
}

func (r *InMemoryArcRepository) Update(ctx context.Context, arc *domain.Arc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[arc.ID]; !ok {
		return domain.ErrArcNotFound
	}

	r.store[arc.ID] = arc
	return nil
}

func (r *InMemoryArcRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrArcNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryArcRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	arc, ok := r.store[id]
	if !ok {
		return domain.ErrArcNotFound
	}

	arc.CurrentStreak = current
	arc.LongestStreak = longest
	arc.UpdatedAt = time.Now().UTC()
	return nil
}

type InMemoryTraceRepository struct {
	store map[string]*domain.Trace

	mu sync.RWMutex
}

func NewInMemoryTraceRepository() *InMemoryTraceRepository {
	return &InMemoryTraceRepository{
		store: make(map[string]*domain.Trace),
	}
}

func (r *InMemoryTraceRepository) Create(ctx context.Context, trace *domain.Trace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if trace.ID == "" {
		trace.ID = uuid.NewString()
	}

	r.store[trace.ID] = trace
	return nil
}

func (r *InMemoryTraceRepository) GetByID(ctx context.Context, id string) (*domain.Trace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trace, ok := r.store[id]
	if !ok || trace.DeletedAt != nil {
		return nil, domain.ErrTraceNotFound
	}
	return trace, nil
}

func (r *InMemoryTraceRepository) ListByArcID(ctx context.Context, arcID string, from, to time.Time) ([]*domain.Trace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var traces []*domain.Trace
	for _, tr := range r.store {
		if tr.ArcID != arcID || tr.DeletedAt != nil {
			continue
		}
		if tr.TraceDate.Before(from) || tr.TraceDate.After(to) {
			continue
		}
		traces = append(traces, tr)
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].TraceDate.After(traces[j].TraceDate)
	})

	return traces, nil
}

func (r *InMemoryTraceRepository) Update(ctx context.Context, trace *domain.Trace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[trace.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrTraceNotFound
	}

	r.store[trace.ID] = trace
	return nil
}

func (r *InMemoryTraceRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trace, ok := r.store[id]
	if !ok || trace.UserID != userID || trace.DeletedAt != nil {
		return domain.ErrTraceNotFound
	}

	now := time.Now().UTC()
	trace.DeletedAt = &now
	trace.UpdatedAt = now
	trace.Version++
	return nil
}

func (r *InMemoryTraceRepository) CountersByRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDay := make(map[string]*domain.DailyCounter)
	for _, tr := range r.store {
		if tr.UserID != userID || tr.DeletedAt != nil {
			continue
		}
		if tr.TraceDate.Before(from) || tr.TraceDate.After(to) {
			continue
		}

		key := tr.TraceDate.UTC().Format("2006-01-02")
		counter, ok := byDay[key]
		if !ok {
			counter = &domain.DailyCounter{Date: key}
			byDay[key] = counter
		}

		switch tr.Outcome {
		case domain.TraceOutcomeSuccess:
			counter.SuccessCount++
		case domain.TraceOutcomeFailure:
			counter.FailureCount++
		case domain.TraceOutcomePause:
			counter.PauseCount++
		}
	}

	counters := make([]*domain.DailyCounter, 0, len(byDay))
	for _, c := range byDay {
		counters = append(counters, c)
	}

	sort.Slice(counters, func(i, j int) bool {
		return counters[i].Date < counters[j].Date
	})

	return counters, nil
}

type InMemoryStreamRepository struct {
	store map[string]*domain.StreamSession

	mu sync.RWMutex
}

func NewInMemoryStreamRepository() *InMemoryStreamRepository {
	return &InMemoryStreamRepository{
		store: make(map[string]*domain.StreamSession),
	}
}

func (r *InMemoryStreamRepository) Create(ctx context.Context, session *domain.StreamSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[session.ID] = session
	return nil
}

func (r *InMemoryStreamRepository) Update(ctx context.Context, session *domain.StreamSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}

	r.store[session.ID] = session
	return nil
}

func (r *InMemoryStreamRepository) GetByID(ctx context.Context, id string) (*domain.StreamSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (r *InMemoryStreamRepository) GetLiveByUserID(ctx context.Context, userID string) (*domain.StreamSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.store {
		if s.UserID == userID && s.EndedAt == nil {
			return s, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *InMemoryStreamRepository) ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]*domain.StreamSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.StreamSession
	for _, s := range r.store {
		if s.UserID != userID {
			continue
		}
		if s.StartedAt.After(to) {
			continue
		}
		if s.EndedAt != nil && s.EndedAt.Before(from) {
			continue
		}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return sessions, nil
}
