package services

import (
	"trip-planner/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func at(lat, lng float64) *models.Coordinates {
	return &models.Coordinates{Lat: lat, Lng: lng}
}

// testState is a small deterministic state: the anchor at the origin and
// three places strung out east of it along the equator.
func testState() models.AppState {
	places := []models.Place{
		{ID: models.AnchorID, Name: "Dormy Inn", Area: "시내", Type: "숙소", Coordinates: at(0, 0)},
		{ID: "p1", Name: "Castle", Area: "시내", Type: "관광", EstMin: intPtr(90), WalkLoad: models.WalkLoadHigh,
			Tags: []string{"view"}, Coordinates: at(0, 1), Rating: floatPtr(4.5)},
		{ID: "p2", Name: "Onsen", Area: "도고", Type: "온천", EstMin: intPtr(60), WalkLoad: models.WalkLoadLow,
			Tags: []string{"onsen"}, Coordinates: at(0, 2), Rating: floatPtr(4.8)},
		{ID: "p3", Name: "Arcade", Area: "시내", Type: "쇼핑", EstMin: intPtr(45), WalkLoad: models.WalkLoadMedium,
			Coordinates: at(0, 3), Rating: floatPtr(3.9)},
		{ID: "p4", Name: "Pottery Village", Area: "도베", Type: "체험", EstMin: intPtr(120)},
	}
	plans := make(map[models.PlanKey]models.Plan, len(models.PlanKeys))
	for _, key := range models.PlanKeys {
		plans[key] = models.Plan{
			Key:   key,
			Title: "Plan " + string(key),
			Days: []models.DayPlan{
				{Date: "2025-12-13", Items: []string{models.AnchorID}},
				{Date: "2025-12-14", Items: []string{models.AnchorID}},
			},
		}
	}
	return models.AppState{
		PlaceBank: places,
		Plans:     plans,
		Meta:      models.AppMeta{City: "Matsuyama", DateRange: "2025-12-13 ~ 2025-12-14", Base: "Dormy Inn"},
	}
}

// withDay returns a copy of state where plan key's first day holds items.
func withDay(state models.AppState, key models.PlanKey, items ...string) models.AppState {
	next := state.Clone()
	plan := next.Plans[key]
	plan.Days[0].Items = items
	next.Plans[key] = plan
	return next
}
