package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/models"
)

func TestOptimizeNearestNeighbor(t *testing.T) {
	state := withDay(testState(), models.PlanA, models.AnchorID, "p1", "p3", "p2")

	next, err := NewRouteOptimizer(DropMissingCoords).Optimize(state, models.PlanA, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{models.AnchorID, "p1", "p2", "p3"}, next.Plans[models.PlanA].Days[0].Items)
	// original snapshot untouched
	assert.Equal(t, []string{models.AnchorID, "p1", "p3", "p2"}, state.Plans[models.PlanA].Days[0].Items)
}

func TestOrderKeepsFirstOfEquallyDistantPlaces(t *testing.T) {
	catalog := []models.Place{
		{ID: models.AnchorID, Name: "Hotel", Coordinates: at(0, 0)},
		{ID: "west", Name: "West", Coordinates: at(0, -1)},
		{ID: "east", Name: "East", Coordinates: at(0, 1)},
		{ID: "far", Name: "Far", Coordinates: at(0, 5)},
	}

	got, err := NewRouteOptimizer(DropMissingCoords).Order(catalog, []string{models.AnchorID, "west", "east", "far"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.AnchorID, "west", "east", "far"}, got)

	got, err = NewRouteOptimizer(DropMissingCoords).Order(catalog, []string{models.AnchorID, "east", "west", "far"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.AnchorID, "east", "west", "far"}, got)
}

func TestOptimizeNeedsThreeGeolocatedPlaces(t *testing.T) {
	state := withDay(testState(), models.PlanB, models.AnchorID, "p1", "p2", "p4")

	next, err := NewRouteOptimizer(DropMissingCoords).Optimize(state, models.PlanB, 0)
	require.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, state, next)

	_, err = NewRouteOptimizer(DropMissingCoords).Optimize(testState(), models.PlanB, 0)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestOptimizeWithoutAnchorCoordinates(t *testing.T) {
	state := withDay(testState(), models.PlanA, models.AnchorID, "p1", "p2", "p3")
	state.PlaceBank[0].Coordinates = nil

	_, err := NewRouteOptimizer(DropMissingCoords).Optimize(state, models.PlanA, 0)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMissingCoordinatePolicies(t *testing.T) {
	state := withDay(testState(), models.PlanA, models.AnchorID, "p4", "p3", "ghost", "p1", "p2")

	dropped, err := NewRouteOptimizer(DropMissingCoords).Optimize(state, models.PlanA, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{models.AnchorID, "p1", "p2", "p3"}, dropped.Plans[models.PlanA].Days[0].Items)

	appended, err := NewRouteOptimizer(AppendMissingCoords).Optimize(state, models.PlanA, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{models.AnchorID, "p1", "p2", "p3", "p4", "ghost"}, appended.Plans[models.PlanA].Days[0].Items)
}

func TestOrderVisitsDuplicatesOnceAndStartsAtAnchor(t *testing.T) {
	catalog := testState().PlaceBank

	got, err := NewRouteOptimizer("").Order(catalog, []string{"p3", "p1", "p3", "p2"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.AnchorID, "p1", "p2", "p3"}, got)
}

func TestOptimizeUnknownPlanAndDay(t *testing.T) {
	opt := NewRouteOptimizer(DropMissingCoords)

	_, err := opt.Optimize(testState(), "E", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = opt.Optimize(testState(), models.PlanA, 7)
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestNewRouteOptimizerDefaultsToDrop(t *testing.T) {
	assert.Equal(t, DropMissingCoords, NewRouteOptimizer("bogus").Policy)
	assert.Equal(t, AppendMissingCoords, NewRouteOptimizer(AppendMissingCoords).Policy)
}
