package services

import (
	"fmt"
	"math"

	"trip-planner/models"
)

// MissingCoordsPolicy decides what happens to day items that cannot be placed
// on the map when a route is optimized.
type MissingCoordsPolicy string

const (
	// DropMissingCoords removes them from the optimized day.
	DropMissingCoords MissingCoordsPolicy = "drop"
	// AppendMissingCoords keeps them after the ordered places, in their original order.
	AppendMissingCoords MissingCoordsPolicy = "append"
)

// MinRoutePlaces is the number of geolocated non-anchor places optimization needs.
const MinRoutePlaces = 3

type RouteOptimizer struct {
	Policy MissingCoordsPolicy
}

func NewRouteOptimizer(policy MissingCoordsPolicy) RouteOptimizer {
	if policy != AppendMissingCoords {
		policy = DropMissingCoords
	}
	return RouteOptimizer{Policy: policy}
}

// Order returns the day items reordered by the nearest-neighbor heuristic,
// starting from the anchor.
func (o RouteOptimizer) Order(catalog []models.Place, items []string) ([]string, error) {
	index := indexPlaces(catalog)
	anchor, ok := index[models.AnchorID]
	if !ok || anchor.Coordinates == nil {
		return nil, fmt.Errorf("%w: anchor %q has no coordinates", ErrInsufficientData, models.AnchorID)
	}

	var (
		candidates []models.Place
		leftovers  []string
	)
	seen := make(map[string]bool)
	for _, id := range items {
		if id == models.AnchorID || seen[id] {
			continue
		}
		seen[id] = true
		if place, ok := index[id]; ok && place.Coordinates != nil {
			candidates = append(candidates, place)
			continue
		}
		leftovers = append(leftovers, id)
	}
	if len(candidates) < MinRoutePlaces {
		return nil, fmt.Errorf("%w: need %d geolocated places besides the anchor, have %d",
			ErrInsufficientData, MinRoutePlaces, len(candidates))
	}

	ordered := []string{models.AnchorID}
	current := *anchor.Coordinates
	for len(candidates) > 0 {
		nearest := 0
		minDistance := math.Inf(1)
		for i, place := range candidates {
			// strict < keeps the first of equally distant candidates
			if d := Distance(current, *place.Coordinates); d < minDistance {
				minDistance = d
				nearest = i
			}
		}
		next := candidates[nearest]
		ordered = append(ordered, next.ID)
		current = *next.Coordinates
		candidates = append(candidates[:nearest], candidates[nearest+1:]...)
	}

	if o.Policy == AppendMissingCoords {
		ordered = append(ordered, leftovers...)
	}
	return ordered, nil
}

// Optimize replaces one day's items with the optimized order in a new snapshot.
func (o RouteOptimizer) Optimize(state models.AppState, key models.PlanKey, dayIndex int) (models.AppState, error) {
	next, plan, err := editDay(state, key, dayIndex)
	if err != nil {
		return state, err
	}
	ordered, err := o.Order(next.PlaceBank, plan.Days[dayIndex].Items)
	if err != nil {
		return state, err
	}
	plan.Days[dayIndex].Items = ordered
	next.Plans[key] = plan.Normalize()
	return next, nil
}
