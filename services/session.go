package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"trip-planner/logging"
	"trip-planner/metrics"
	"trip-planner/models"
)

const persistTimeout = 5 * time.Second

// Mutation computes the next snapshot from the current one. It must not
// modify its argument.
type Mutation func(models.AppState) (models.AppState, error)

// Session owns the single live planning state. Mutations are serialized and
// every accepted snapshot is persisted in the background.
type Session struct {
	mu        sync.Mutex
	state     models.AppState
	canonical models.AppState
	optimizer RouteOptimizer

	store   StateStore
	log     logging.Logger
	metrics *metrics.Collector

	saveMu   sync.Mutex
	version  uint64
	saved    uint64
	inflight sync.WaitGroup
}

// NewSession wraps initial as the live state. store may be nil, in which case
// nothing is persisted.
func NewSession(initial, canonical models.AppState, store StateStore, optimizer RouteOptimizer, log logging.Logger, m *metrics.Collector) *Session {
	if log == nil {
		log = logging.Noop()
	}
	s := &Session{
		state:     initial.Clone(),
		canonical: canonical.Clone(),
		optimizer: optimizer,
		store:     store,
		log:       log,
		metrics:   m,
	}
	s.metrics.SetCatalogPlaces(len(initial.PlaceBank))
	return s
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Apply runs mutation against the current snapshot and, on success, makes
// its result the new state. A failed mutation leaves the state untouched.
func (s *Session) Apply(ctx context.Context, op string, mutation Mutation) (models.AppState, error) {
	s.mu.Lock()
	next, err := mutation(s.state)
	if err != nil {
		s.mu.Unlock()
		s.metrics.ObserveMutation(op, resultLabel(err))
		s.log.Debug(ctx, "mutation rejected", logging.String("op", op), logging.Err(err))
		return s.Snapshot(), err
	}
	s.state = next
	s.version++
	version := s.version
	snapshot := next.Clone()
	s.mu.Unlock()

	s.metrics.ObserveMutation(op, "ok")
	s.metrics.SetCatalogPlaces(len(snapshot.PlaceBank))
	s.persist(ctx, version, snapshot)
	return snapshot, nil
}

// Replace swaps in a whole new state, e.g. after a JSON import.
func (s *Session) Replace(ctx context.Context, state models.AppState) models.AppState {
	next, _ := s.Apply(ctx, "replace", func(models.AppState) (models.AppState, error) {
		return Migrate(state, s.canonical), nil
	})
	return next
}

// Reset reinstates the canonical seed.
func (s *Session) Reset(ctx context.Context) models.AppState {
	next, _ := s.Apply(ctx, "reset", func(models.AppState) (models.AppState, error) {
		return Migrate(s.canonical, s.canonical), nil
	})
	return next
}

// Wait blocks until every background save has finished.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// persist writes snapshot unless a newer one has already been written.
func (s *Session) persist(ctx context.Context, version uint64, snapshot models.AppState) {
	if s.store == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		if version <= s.saved {
			return
		}

		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()

		data, err := Export(snapshot)
		if err == nil {
			err = s.store.Save(saveCtx, []byte(data))
		}
		if err != nil {
			s.metrics.IncPersistFailures()
			s.log.Warn(saveCtx, "failed to persist state", logging.Err(err))
			return
		}
		s.saved = version
	}()
}

func (s *Session) AddPlace(ctx context.Context, key models.PlanKey, dayIndex int, placeID string) (models.AppState, error) {
	return s.Apply(ctx, "add_place", func(state models.AppState) (models.AppState, error) {
		if _, ok := state.Place(placeID); !ok && placeID != "" {
			return state, notFound("place %q", placeID)
		}
		return AddPlace(state, key, dayIndex, placeID)
	})
}

func (s *Session) RemovePlace(ctx context.Context, key models.PlanKey, dayIndex int, placeID string) (models.AppState, error) {
	return s.Apply(ctx, "remove_place", func(state models.AppState) (models.AppState, error) {
		return RemovePlace(state, key, dayIndex, placeID)
	})
}

func (s *Session) Reorder(ctx context.Context, key models.PlanKey, dayIndex int, movedID, targetID string) (models.AppState, error) {
	return s.Apply(ctx, "reorder", func(state models.AppState) (models.AppState, error) {
		return Reorder(state, key, dayIndex, movedID, targetID)
	})
}

func (s *Session) Optimize(ctx context.Context, key models.PlanKey, dayIndex int) (models.AppState, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOptimize(time.Since(start)) }()
	return s.Apply(ctx, "optimize", func(state models.AppState) (models.AppState, error) {
		return s.optimizer.Optimize(state, key, dayIndex)
	})
}

func (s *Session) MoveAcrossPlans(ctx context.Context, placeID string, sourceKey models.PlanKey, sourceDay int, targetKey models.PlanKey) (models.AppState, error) {
	return s.Apply(ctx, "transfer", func(state models.AppState) (models.AppState, error) {
		return MoveAcrossPlans(state, placeID, sourceKey, sourceDay, targetKey)
	})
}

// AddCatalogPlace adds place to the catalog and returns it with its final id.
func (s *Session) AddCatalogPlace(ctx context.Context, place models.Place) (models.Place, error) {
	var added models.Place
	_, err := s.Apply(ctx, "add_catalog_place", func(state models.AppState) (models.AppState, error) {
		next, p, err := AddCatalogPlace(state, place)
		added = p
		return next, err
	})
	return added, err
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
