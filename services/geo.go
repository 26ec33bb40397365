package services

import (
	"math"

	"trip-planner/models"
)

// EarthRadiusKm is the sphere radius used for every distance computation.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in kilometers.
func Distance(a, b models.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RouteDistanceKm sums the legs between consecutive geolocated places of items.
// Ids that are unknown or lack coordinates are skipped.
func RouteDistanceKm(catalog []models.Place, items []string) float64 {
	index := indexPlaces(catalog)
	var (
		total float64
		prev  *models.Coordinates
	)
	for _, id := range items {
		place, ok := index[id]
		if !ok || place.Coordinates == nil {
			continue
		}
		if prev != nil {
			total += Distance(*prev, *place.Coordinates)
		}
		prev = place.Coordinates
	}
	return total
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func indexPlaces(catalog []models.Place) map[string]models.Place {
	index := make(map[string]models.Place, len(catalog))
	for _, place := range catalog {
		if _, dup := index[place.ID]; !dup {
			index[place.ID] = place
		}
	}
	return index
}
