package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-planner/models"
)

func TestDistance(t *testing.T) {
	origin := models.Coordinates{Lat: 0, Lng: 0}
	east := models.Coordinates{Lat: 0, Lng: 1}

	assert.Zero(t, Distance(origin, origin))
	assert.InDelta(t, 111.195, Distance(origin, east), 0.01)
	assert.Equal(t, Distance(origin, east), Distance(east, origin))

	// Dogo Onsen to Matsuyama Castle is a bit under 2 km
	dogo := models.Coordinates{Lat: 33.8521, Lng: 132.7866}
	castle := models.Coordinates{Lat: 33.8456, Lng: 132.7655}
	assert.InDelta(t, 2.07, Distance(dogo, castle), 0.1)
}

func TestRouteDistanceKmSkipsUnknownAndUnlocated(t *testing.T) {
	catalog := testState().PlaceBank

	got := RouteDistanceKm(catalog, []string{models.AnchorID, "p1", "p4", "missing", "p3"})
	assert.InDelta(t, 3*111.195, got, 0.05)
	assert.Zero(t, RouteDistanceKm(catalog, []string{models.AnchorID}))
}
