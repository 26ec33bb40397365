package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/models"
)

func placeIDs(places []models.Place) []string {
	ids := make([]string, len(places))
	for i, place := range places {
		ids[i] = place.ID
	}
	return ids
}

func TestReconcile(t *testing.T) {
	canonical := testState().PlaceBank
	stale := models.Place{ID: "p1", Name: "Old Castle Name"}
	custom := models.Place{ID: "custom-1", Name: "Friend's Cafe"}

	merged := Reconcile([]models.Place{custom, stale}, canonical)

	require.Equal(t, []string{"custom-1", "p1", models.AnchorID, "p2", "p3", "p4"}, placeIDs(merged))
	assert.Equal(t, "Castle", merged[1].Name)
	assert.Equal(t, custom, merged[0])
}

func TestAnchorFirst(t *testing.T) {
	places := []models.Place{{ID: "a"}, {ID: "b"}, {ID: models.AnchorID}, {ID: "c"}}

	assert.Equal(t, []string{models.AnchorID, "a", "b", "c"}, placeIDs(AnchorFirst(places)))
	assert.Equal(t, "a", places[0].ID)
	assert.Equal(t, []string{"x"}, placeIDs(AnchorFirst([]models.Place{{ID: "x"}})))
}

func TestSearch(t *testing.T) {
	places := testState().PlaceBank

	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, placeIDs(Search(places, "  ")))
	assert.Equal(t, []string{"p2"}, placeIDs(Search(places, "ONSEN")))
	assert.Equal(t, []string{"p1", "p3"}, placeIDs(Search(places, "시내")))
	assert.Equal(t, []string{"p1"}, placeIDs(Search(places, "view")))
	assert.Empty(t, Search(places, "dormy"))
}

func TestRecommend(t *testing.T) {
	places := testState().PlaceBank

	assert.Equal(t, []string{"p2", "p1", "p3"}, placeIDs(Recommend(places, nil, 0)))
	assert.Equal(t, []string{"p1", "p3"}, placeIDs(Recommend(places, []string{models.AnchorID, "p2"}, 0)))
	assert.Equal(t, []string{"p2"}, placeIDs(Recommend(places, nil, 1)))
}

func TestNearby(t *testing.T) {
	places := testState().PlaceBank

	got := Nearby(places, models.Coordinates{Lat: 0, Lng: 2.1}, 120)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
	assert.InDelta(t, 11.12, got[0].DistanceKm, 0.05)

	assert.Empty(t, Nearby(places, models.Coordinates{Lat: 40, Lng: 40}, 5))
}
