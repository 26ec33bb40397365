package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trip-planner/middleware"
	"trip-planner/models"
	"trip-planner/services"
	"trip-planner/utils/errors"
)

type PlanHandler struct {
	session *services.Session
}

type OptimizeResponse struct {
	Items      []string        `json:"items"`
	DistanceKm float64         `json:"distanceKm"`
	State      models.AppState `json:"state"`
}

type DaySummaryResponse struct {
	Plan        models.PlanKey `json:"plan"`
	Day         int            `json:"day"`
	Date        string         `json:"date"`
	Places      []models.Place `json:"places"`
	DurationMin int            `json:"durationMin"`
	DistanceKm  float64        `json:"distanceKm"`
}

func NewPlanHandler(session *services.Session) *PlanHandler {
	return &PlanHandler{session: session}
}

func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	key := models.PlanKey(mux.Vars(r)["key"])
	plan, ok := h.session.Snapshot().Plans[key]
	if !ok {
		middleware.WriteError(r.Context(), w, errors.NewAPIError("NOT_FOUND", "Unknown plan", http.StatusNotFound, string(key)))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) AddPlace(w http.ResponseWriter, r *http.Request) {
	key, day, ok := planDay(w, r)
	if !ok {
		return
	}
	var input struct {
		PlaceID string `json:"placeId"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	state, err := h.session.AddPlace(r.Context(), key, day, input.PlaceID)
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlanHandler) RemovePlace(w http.ResponseWriter, r *http.Request) {
	key, day, ok := planDay(w, r)
	if !ok {
		return
	}
	state, err := h.session.RemovePlace(r.Context(), key, day, mux.Vars(r)["placeId"])
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlanHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	key, day, ok := planDay(w, r)
	if !ok {
		return
	}
	var input struct {
		MovedID  string `json:"movedId"`
		TargetID string `json:"targetId"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	state, err := h.session.Reorder(r.Context(), key, day, input.MovedID, input.TargetID)
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlanHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	key, day, ok := planDay(w, r)
	if !ok {
		return
	}
	state, err := h.session.Optimize(r.Context(), key, day)
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	items := state.Plans[key].Days[day].Items
	writeJSON(w, http.StatusOK, OptimizeResponse{
		Items:      items,
		DistanceKm: services.RouteDistanceKm(state.PlaceBank, items),
		State:      state,
	})
}

func (h *PlanHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	key, day, ok := planDay(w, r)
	if !ok {
		return
	}
	var input struct {
		PlaceID    string         `json:"placeId"`
		TargetPlan models.PlanKey `json:"targetPlan"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	state, err := h.session.MoveAcrossPlans(r.Context(), input.PlaceID, key, day, input.TargetPlan)
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	key, day, ok := planDay(w, r)
	if !ok {
		return
	}
	state := h.session.Snapshot()
	plan, exists := state.Plans[key]
	if !exists {
		middleware.WriteError(r.Context(), w, errors.ErrNotFound)
		return
	}
	days := plan.Days
	if len(days) == 0 {
		days = services.DefaultDays(state.Meta)
	}
	if day < 0 || day >= len(days) {
		middleware.WriteError(r.Context(), w, errors.NewAPIError("NOT_FOUND", "Unknown day", http.StatusNotFound))
		return
	}
	d := days[day]
	writeJSON(w, http.StatusOK, DaySummaryResponse{
		Plan:        key,
		Day:         day,
		Date:        d.Date,
		Places:      services.ResolveDay(state, d),
		DurationMin: services.DayDuration(state, d),
		DistanceKm:  services.RouteDistanceKm(state.PlaceBank, d.Items),
	})
}
