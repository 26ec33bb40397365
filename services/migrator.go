package services

import (
	"context"
	"errors"

	"trip-planner/logging"
	"trip-planner/models"
)

// StateSource names where the startup state came from.
type StateSource string

const (
	SourceShareLink StateSource = "share-link"
	SourceStored    StateSource = "stored"
	SourceSeed      StateSource = "seed"
)

// Migrate reconciles a candidate state with the canonical seed and repairs
// the anchor placement of every day. Running it on its own output is a no-op.
func Migrate(candidate, canonical models.AppState) models.AppState {
	next := candidate.Clone()
	next.PlaceBank = AnchorFirst(Reconcile(next.PlaceBank, canonical.PlaceBank))

	for key, plan := range next.Plans {
		for i, day := range plan.Days {
			plan.Days[i].Items = anchorAtFront(day.Items)
		}
		next.Plans[key] = plan.Normalize()
	}
	return next
}

// anchorAtFront returns items with exactly one anchor at index 0, keeping the
// relative order of everything else.
func anchorAtFront(items []string) []string {
	count := 0
	for _, id := range items {
		if id == models.AnchorID {
			count++
		}
	}
	if count == 1 && len(items) > 0 && items[0] == models.AnchorID {
		return items
	}
	return append([]string{models.AnchorID}, without(items, models.AnchorID)...)
}

// StateLoader reads stored state at startup.
type StateLoader interface {
	Load(ctx context.Context) ([]byte, error)
}

// LoadInitial establishes the session state once: share fragment first, then
// stored state, then the canonical seed. The first source that decodes and
// validates wins; rejected sources are logged and skipped.
func LoadInitial(ctx context.Context, fragment string, store StateLoader, canonical models.AppState, log logging.Logger) (models.AppState, StateSource) {
	if log == nil {
		log = logging.Noop()
	}

	if fragment != "" {
		state, err := DecodeShareLinkErr(fragment)
		if err == nil {
			log.Info(ctx, "loaded state from share link")
			return Migrate(state, canonical), SourceShareLink
		}
		log.Debug(ctx, "ignoring share link", logging.Err(err))
	}

	if store != nil {
		data, err := store.Load(ctx)
		switch {
		case err == nil:
			state, err := ImportErr(string(data))
			if err == nil {
				log.Info(ctx, "loaded stored state")
				return Migrate(state, canonical), SourceStored
			}
			log.Warn(ctx, "stored state rejected", logging.Err(err))
		case errors.Is(err, ErrNotFound):
			log.Debug(ctx, "no stored state")
		default:
			log.Warn(ctx, "failed to load stored state", logging.Err(err))
		}
	}

	log.Info(ctx, "starting from seed state")
	return Migrate(canonical, canonical), SourceSeed
}
