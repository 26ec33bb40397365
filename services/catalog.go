package services

import (
	"sort"
	"strings"

	"trip-planner/models"
)

// DefaultRecommendations is how many places Recommend returns when asked for none.
const DefaultRecommendations = 5

// Reconcile merges a loaded catalog with the canonical one. Places known to
// the canonical catalog are replaced by the canonical record, user-added
// places are kept as-is, and canonical places the candidate lacks are appended.
func Reconcile(candidate, canonical []models.Place) []models.Place {
	seed := indexPlaces(canonical)
	merged := make([]models.Place, 0, len(candidate)+len(canonical))
	present := make(map[string]bool, len(candidate))
	for _, place := range candidate {
		if seeded, ok := seed[place.ID]; ok {
			merged = append(merged, seeded.Clone())
		} else {
			merged = append(merged, place.Clone())
		}
		present[place.ID] = true
	}
	for _, place := range canonical {
		if !present[place.ID] {
			merged = append(merged, place.Clone())
			present[place.ID] = true
		}
	}
	return merged
}

// AnchorFirst moves the anchor record to the front of the catalog.
func AnchorFirst(places []models.Place) []models.Place {
	out := append([]models.Place(nil), places...)
	for i, place := range out {
		if place.ID != models.AnchorID {
			continue
		}
		if i > 0 {
			copy(out[1:i+1], out[:i])
			out[0] = place
		}
		break
	}
	return out
}

// Search filters the catalog by a case-insensitive substring of name, area,
// type or any tag. The anchor is never listed.
func Search(places []models.Place, query string) []models.Place {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Place{}
	for _, place := range places {
		if place.ID == models.AnchorID {
			continue
		}
		if q == "" || matches(place, q) {
			out = append(out, place)
		}
	}
	return out
}

func matches(place models.Place, q string) bool {
	if strings.Contains(strings.ToLower(place.Name), q) ||
		strings.Contains(strings.ToLower(place.Area), q) ||
		strings.Contains(strings.ToLower(place.Type), q) {
		return true
	}
	for _, tag := range place.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Recommend returns the best-rated places that are not already in dayItems.
func Recommend(places []models.Place, dayItems []string, n int) []models.Place {
	if n <= 0 {
		n = DefaultRecommendations
	}
	planned := make(map[string]bool, len(dayItems))
	for _, id := range dayItems {
		planned[id] = true
	}
	var rated []models.Place
	for _, place := range places {
		if place.ID == models.AnchorID || planned[place.ID] || place.Rating == nil {
			continue
		}
		rated = append(rated, place)
	}
	sort.SliceStable(rated, func(i, j int) bool { return *rated[i].Rating > *rated[j].Rating })
	if len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

// NearbyPlace is a catalog entry with its distance from a query point.
type NearbyPlace struct {
	models.Place
	DistanceKm float64 `json:"distanceKm"`
}

// Nearby lists geolocated places within radiusKm of origin, closest first.
func Nearby(places []models.Place, origin models.Coordinates, radiusKm float64) []NearbyPlace {
	out := []NearbyPlace{}
	for _, place := range places {
		if place.Coordinates == nil {
			continue
		}
		if d := Distance(origin, *place.Coordinates); d <= radiusKm {
			out = append(out, NearbyPlace{Place: place, DistanceKm: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}
