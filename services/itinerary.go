package services

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-planner/models"
)

const dateLayout = "2006-01-02"

// fallbackTripDates are used when the trip date range cannot be parsed.
var fallbackTripDates = []string{"2025-12-13", "2025-12-14", "2025-12-15", "2025-12-16"}

// DefaultDays builds the day skeleton for a plan that has never been split
// into days: one day per trip date, each starting at the anchor.
func DefaultDays(meta models.AppMeta) []models.DayPlan {
	dates := tripDates(meta.DateRange)
	days := make([]models.DayPlan, len(dates))
	for i, date := range dates {
		days[i] = models.DayPlan{Date: date, Items: []string{models.AnchorID}}
	}
	return days
}

// tripDates expands "2025-12-13 ~ 2025-12-16" into every calendar date.
func tripDates(dateRange string) []string {
	parts := strings.FieldsFunc(dateRange, func(r rune) bool { return r == '~' })
	if len(parts) != 2 {
		return fallbackTripDates
	}
	start, err := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return fallbackTripDates
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
	if err != nil || end.Before(start) || end.Sub(start) > 60*24*time.Hour {
		return fallbackTripDates
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// editDay clones state and returns the plan ready for editing one day.
// The caller stores the plan back into the returned snapshot.
func editDay(state models.AppState, key models.PlanKey, dayIndex int) (models.AppState, models.Plan, error) {
	plan, ok := state.Plans[key]
	if !ok {
		return state, models.Plan{}, notFound("plan %q", key)
	}
	next := state.Clone()
	plan = next.Plans[key]
	if len(plan.Days) == 0 {
		plan.Days = DefaultDays(next.Meta)
	}
	if dayIndex < 0 || dayIndex >= len(plan.Days) {
		return state, models.Plan{}, violation("plan %s has no day %d", key, dayIndex)
	}
	return next, plan, nil
}

// Move relocates the element at from to index to in a single remove-then-insert.
// Out of range indices return an unchanged copy.
func Move(list []string, from, to int) []string {
	out := append([]string(nil), list...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{item}, out[to:]...)...)
	return out
}

func indexOf(items []string, id string) int {
	for i, item := range items {
		if item == id {
			return i
		}
	}
	return -1
}

// AddPlace appends placeID to a day, inserting the anchor first if the day lacks it.
// Adding a place the day already holds is a no-op.
func AddPlace(state models.AppState, key models.PlanKey, dayIndex int, placeID string) (models.AppState, error) {
	if placeID == "" {
		return state, invalid("place id is empty")
	}
	next, plan, err := editDay(state, key, dayIndex)
	if err != nil {
		return state, err
	}
	day := plan.Days[dayIndex]
	if placeID == models.AnchorID {
		repaired := anchorAtFront(day.Items)
		if slices.Equal(repaired, day.Items) {
			return state, nil
		}
		plan.Days[dayIndex].Items = repaired
		next.Plans[key] = plan.Normalize()
		return next, nil
	}
	if indexOf(day.Items, placeID) >= 0 {
		return state, nil
	}
	items := append(day.Items, placeID)
	if indexOf(items, models.AnchorID) < 0 {
		items = append([]string{models.AnchorID}, items...)
	}
	plan.Days[dayIndex].Items = items
	next.Plans[key] = plan.Normalize()
	return next, nil
}

// RemovePlace drops placeID from a day. The anchor cannot be removed.
func RemovePlace(state models.AppState, key models.PlanKey, dayIndex int, placeID string) (models.AppState, error) {
	if placeID == models.AnchorID {
		return state, violation("the lodging cannot be removed; every day starts there")
	}
	next, plan, err := editDay(state, key, dayIndex)
	if err != nil {
		return state, err
	}
	plan.Days[dayIndex].Items = without(plan.Days[dayIndex].Items, placeID)
	next.Plans[key] = plan
	return next, nil
}

// Reorder moves movedID to the current position of targetID within one day.
func Reorder(state models.AppState, key models.PlanKey, dayIndex int, movedID, targetID string) (models.AppState, error) {
	if movedID == models.AnchorID {
		return state, violation("the lodging is fixed at the first position")
	}
	next, plan, err := editDay(state, key, dayIndex)
	if err != nil {
		return state, err
	}
	items := plan.Days[dayIndex].Items
	from := indexOf(items, movedID)
	if from < 0 {
		return state, notFound("place %q is not in day %d", movedID, dayIndex)
	}
	to := indexOf(items, targetID)
	if to < 0 {
		return state, notFound("place %q is not in day %d", targetID, dayIndex)
	}
	if to == 0 {
		return state, violation("the lodging must stay at the first position")
	}
	if from == to {
		return state, nil
	}
	plan.Days[dayIndex].Items = Move(items, from, to)
	next.Plans[key] = plan
	return next, nil
}

// MoveAcrossPlans removes placeID from a source day and hands it to the target
// plan as an unscheduled item; callers place it on a target day afterwards.
func MoveAcrossPlans(state models.AppState, placeID string, sourceKey models.PlanKey, sourceDay int, targetKey models.PlanKey) (models.AppState, error) {
	if placeID == models.AnchorID {
		return state, violation("the lodging cannot be moved to another plan")
	}
	if sourceKey == targetKey {
		return state, violation("place %q is already in plan %s", placeID, targetKey)
	}
	if _, ok := state.Plans[targetKey]; !ok {
		return state, notFound("plan %q", targetKey)
	}
	next, source, err := editDay(state, sourceKey, sourceDay)
	if err != nil {
		return state, err
	}
	source.Days[sourceDay].Items = without(source.Days[sourceDay].Items, placeID)
	next.Plans[sourceKey] = source

	target := next.Plans[targetKey]
	if !target.Scheduled(placeID) && indexOf(target.Unscheduled, placeID) < 0 {
		target.Unscheduled = append(target.Unscheduled, placeID)
	}
	next.Plans[targetKey] = target
	return next, nil
}

// AddCatalogPlace prepends place to the catalog. A place without id gets a
// generated "custom-" id.
func AddCatalogPlace(state models.AppState, place models.Place) (models.AppState, models.Place, error) {
	if place.ID == "" {
		place.ID = "custom-" + uuid.NewString()
	}
	if err := ValidatePlace(place); err != nil {
		return state, place, err
	}
	if _, exists := state.Place(place.ID); exists {
		return state, place, invalid("place %q already exists", place.ID)
	}
	next := state.Clone()
	next.PlaceBank = append([]models.Place{place.Clone()}, next.PlaceBank...)
	return next, place, nil
}

// ResolveDay returns the places of a day in visit order, skipping unknown ids.
func ResolveDay(state models.AppState, day models.DayPlan) []models.Place {
	index := indexPlaces(state.PlaceBank)
	places := make([]models.Place, 0, len(day.Items))
	for _, id := range day.Items {
		if place, ok := index[id]; ok {
			places = append(places, place)
		}
	}
	return places
}

// DayDuration sums the estimated minutes of a day's known places.
func DayDuration(state models.AppState, day models.DayPlan) int {
	total := 0
	for _, place := range ResolveDay(state, day) {
		total += place.Minutes()
	}
	return total
}

func without(items []string, id string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}
