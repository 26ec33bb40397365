package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"trip-planner/middleware"
	"trip-planner/models"
	"trip-planner/utils/errors"
)

// maxBodyBytes bounds request bodies, including imported state files.
const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		middleware.WriteError(r.Context(), w, errors.WithDetails(errors.ErrInvalidInput, err))
		return false
	}
	return true
}

// planDay reads the {key} and {day} path variables.
func planDay(w http.ResponseWriter, r *http.Request) (models.PlanKey, int, bool) {
	vars := mux.Vars(r)
	key := models.PlanKey(vars["key"])
	if !key.Valid() {
		middleware.WriteError(r.Context(), w, errors.NewAPIError("NOT_FOUND", "Unknown plan", http.StatusNotFound, string(key)))
		return "", 0, false
	}
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		middleware.WriteError(r.Context(), w, errors.ErrInvalidInput)
		return "", 0, false
	}
	return key, day, true
}
