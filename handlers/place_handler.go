package handlers

import (
	"net/http"
	"strconv"

	"trip-planner/middleware"
	"trip-planner/models"
	"trip-planner/services"
	"trip-planner/utils/errors"
)

// DefaultNearbyRadiusKm is used when /places/nearby has no radius.
const DefaultNearbyRadiusKm = 1.0

type PlaceHandler struct {
	session  *services.Session
	searcher services.PlaceSearcher
}

type NearbyPlacesResponse struct {
	Places []services.NearbyPlace `json:"places"`
	Count  int                    `json:"count"`
	Lat    float64                `json:"lat"`
	Lng    float64                `json:"lng"`
	Radius float64                `json:"radius"`
}

// NewPlaceHandler builds the catalog handler. searcher may be nil, which
// disables provider search.
func NewPlaceHandler(session *services.Session, searcher services.PlaceSearcher) *PlaceHandler {
	return &PlaceHandler{session: session, searcher: searcher}
}

func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places := services.Search(h.session.Snapshot().PlaceBank, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var input models.Place
	if !decodeBody(w, r, &input) {
		return
	}
	place, err := h.session.AddCatalogPlace(r.Context(), input)
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, place)
}

func (h *PlaceHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state := h.session.Snapshot()

	var dayItems []string
	if key := models.PlanKey(query.Get("plan")); key != "" {
		plan, ok := state.Plans[key]
		if !ok {
			middleware.WriteError(r.Context(), w, errors.NewAPIError("NOT_FOUND", "Unknown plan", http.StatusNotFound, string(key)))
			return
		}
		day, err := strconv.Atoi(query.Get("day"))
		if err != nil {
			middleware.WriteError(r.Context(), w, errors.ErrInvalidInput)
			return
		}
		if day >= 0 && day < len(plan.Days) {
			dayItems = plan.Days[day].Items
		}
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	writeJSON(w, http.StatusOK, services.Recommend(state.PlaceBank, dayItems, limit))
}

func (h *PlaceHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		middleware.WriteError(r.Context(), w, errors.ErrInvalidInput)
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		middleware.WriteError(r.Context(), w, errors.ErrInvalidInput)
		return
	}
	radius := DefaultNearbyRadiusKm
	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 {
			middleware.WriteError(r.Context(), w, errors.ErrInvalidInput)
			return
		}
	}

	places := services.Nearby(h.session.Snapshot().PlaceBank, models.Coordinates{Lat: lat, Lng: lng}, radius)
	writeJSON(w, http.StatusOK, NearbyPlacesResponse{
		Places: places,
		Count:  len(places),
		Lat:    lat,
		Lng:    lng,
		Radius: radius,
	})
}

func (h *PlaceHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		middleware.WriteError(r.Context(), w, errors.NewAPIError("NOT_FOUND", "Place search is disabled", http.StatusNotFound))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	places, err := h.searcher.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		if r.Context().Err() != nil {
			// client went away; nobody is left to read the response
			return
		}
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}
