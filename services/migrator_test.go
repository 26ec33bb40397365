package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/logging"
	"trip-planner/models"
)

func TestMigrateRepairsAnchorPlacement(t *testing.T) {
	canonical := testState()
	candidate := withDay(canonical, models.PlanA, "p1", models.AnchorID, "p2")
	plan := candidate.Plans[models.PlanB]
	plan.Days[0].Items = []string{models.AnchorID, "p3", models.AnchorID}
	plan.Days[1].Items = []string{}
	candidate.Plans[models.PlanB] = plan

	migrated := Migrate(candidate, canonical)

	assert.Equal(t, []string{models.AnchorID, "p1", "p2"}, migrated.Plans[models.PlanA].Days[0].Items)
	assert.Equal(t, []string{models.AnchorID, "p3"}, migrated.Plans[models.PlanB].Days[0].Items)
	assert.Equal(t, []string{models.AnchorID}, migrated.Plans[models.PlanB].Days[1].Items)
	assert.Equal(t, []string{"p1", models.AnchorID, "p2"}, candidate.Plans[models.PlanA].Days[0].Items)
}

func TestMigrateReconcilesCatalog(t *testing.T) {
	canonical := testState()
	candidate := testState()
	candidate.PlaceBank = []models.Place{
		{ID: "custom-9", Name: "Night Market"},
		{ID: "p2", Name: "Renamed Onsen"},
	}

	migrated := Migrate(candidate, canonical)

	require.Equal(t, []string{models.AnchorID, "custom-9", "p2", "p1", "p3", "p4"}, placeIDs(migrated.PlaceBank))
	assert.Equal(t, "Onsen", migrated.PlaceBank[2].Name)
}

func TestMigrateIsIdempotent(t *testing.T) {
	canonical := testState()
	candidate := withDay(canonical, models.PlanC, "p2", "p1", models.AnchorID, "p1")
	plan := candidate.Plans[models.PlanD]
	plan.Unscheduled = []string{"p4", models.AnchorID}
	candidate.Plans[models.PlanD] = plan

	once := Migrate(candidate, canonical)
	assert.Equal(t, once, Migrate(once, canonical))
	assert.Equal(t, []string{"p4"}, once.Plans[models.PlanD].Unscheduled)
}

type stubLoader struct {
	data []byte
	err  error
}

func (s stubLoader) Load(context.Context) ([]byte, error) { return s.data, s.err }

func TestLoadInitialPriority(t *testing.T) {
	ctx := context.Background()
	canonical := testState()
	log := logging.Noop()

	shared := withDay(canonical, models.PlanA, models.AnchorID, "p1")
	fragment, err := EncodeShareLink(shared)
	require.NoError(t, err)

	stored := withDay(canonical, models.PlanA, models.AnchorID, "p3")
	storedText, err := Export(stored)
	require.NoError(t, err)
	store := stubLoader{data: []byte(storedText)}

	state, source := LoadInitial(ctx, fragment, store, canonical, log)
	assert.Equal(t, SourceShareLink, source)
	assert.Equal(t, []string{models.AnchorID, "p1"}, state.Plans[models.PlanA].Days[0].Items)

	state, source = LoadInitial(ctx, "garbage", store, canonical, log)
	assert.Equal(t, SourceStored, source)
	assert.Equal(t, []string{models.AnchorID, "p3"}, state.Plans[models.PlanA].Days[0].Items)

	state, source = LoadInitial(ctx, "", stubLoader{data: []byte(`{"placeBank":{}}`)}, canonical, log)
	assert.Equal(t, SourceSeed, source)
	assert.Equal(t, Migrate(canonical, canonical), state)

	_, source = LoadInitial(ctx, "", stubLoader{err: notFound("nothing")}, canonical, log)
	assert.Equal(t, SourceSeed, source)

	_, source = LoadInitial(ctx, "", stubLoader{err: errors.New("connection refused")}, canonical, nil)
	assert.Equal(t, SourceSeed, source)

	_, source = LoadInitial(ctx, "", nil, canonical, log)
	assert.Equal(t, SourceSeed, source)
}
