package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanItemsDerivedFromDays(t *testing.T) {
	plan := Plan{
		Key: PlanA,
		Days: []DayPlan{
			{Date: "2025-12-13", Items: []string{AnchorID, "castle"}},
			{Date: "2025-12-14", Items: []string{AnchorID, "onsen", "castle"}},
		},
		Unscheduled: []string{"tart"},
	}

	assert.Equal(t, []string{AnchorID, "castle", "onsen", "tart"}, plan.Items())
}

func TestPlanJSONKeepsUnscheduledSeparate(t *testing.T) {
	raw := `{"key":"B","title":"B","items":["hotel-dormy-inn","castle","tart","tart"],
		"days":[{"date":"2025-12-13","items":["hotel-dormy-inn","castle"]}]}`

	var plan Plan
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))
	assert.Equal(t, []string{"tart"}, plan.Unscheduled)

	out, err := json.Marshal(plan)
	require.NoError(t, err)

	var again Plan
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, plan, again)
}

func TestPlanJSONKeepsEmptyDaysDistinctFromMissing(t *testing.T) {
	empty := Plan{Key: PlanA, Title: "A", Days: []DayPlan{}}
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"days":[]`)

	var decoded Plan
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, empty, decoded)

	data, err = json.Marshal(Plan{Key: PlanB, Title: "B"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"days"`)
}

func TestPlanWithoutDaysIsAllUnscheduled(t *testing.T) {
	var plan Plan
	require.NoError(t, json.Unmarshal([]byte(`{"key":"C","title":"C","items":["a","b"]}`), &plan))
	assert.Nil(t, plan.Days)
	assert.Equal(t, []string{"a", "b"}, plan.Unscheduled)
	assert.Equal(t, []string{"a", "b"}, plan.Items())
}

func TestAppStateCloneIsDeep(t *testing.T) {
	est := 30
	state := AppState{
		PlaceBank: []Place{{ID: "a", EstMin: &est, Tags: []string{"x"}, Coordinates: &Coordinates{Lat: 1, Lng: 2}}},
		Plans: map[PlanKey]Plan{
			PlanA: {Key: PlanA, Days: []DayPlan{{Date: "2025-12-13", Items: []string{AnchorID}}}},
		},
	}

	clone := state.Clone()
	*clone.PlaceBank[0].EstMin = 99
	clone.PlaceBank[0].Tags[0] = "y"
	clone.PlaceBank[0].Coordinates.Lat = 50
	clone.Plans[PlanA].Days[0].Items[0] = "other"

	assert.Equal(t, 30, *state.PlaceBank[0].EstMin)
	assert.Equal(t, "x", state.PlaceBank[0].Tags[0])
	assert.Equal(t, 1.0, state.PlaceBank[0].Coordinates.Lat)
	assert.Equal(t, AnchorID, state.Plans[PlanA].Days[0].Items[0])
}

func TestWalkLoadAndPlanKeyValidity(t *testing.T) {
	assert.True(t, WalkLoad("").Valid())
	assert.True(t, WalkLoadHigh.Valid())
	assert.False(t, WalkLoad("extreme").Valid())

	assert.True(t, PlanD.Valid())
	assert.False(t, PlanKey("E").Valid())
}
