package handlers

import (
	"io"
	"net/http"

	"trip-planner/middleware"
	"trip-planner/services"
	"trip-planner/utils/errors"
)

type StateHandler struct {
	session *services.Session
}

type ShareLinkResponse struct {
	Fragment string `json:"fragment"`
}

func NewStateHandler(session *services.Session) *StateHandler {
	return &StateHandler{session: session}
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

func (h *StateHandler) ExportState(w http.ResponseWriter, r *http.Request) {
	text, err := services.Export(h.session.Snapshot())
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-plan.json"`)
	io.WriteString(w, text)
}

func (h *StateHandler) ImportState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		middleware.WriteError(r.Context(), w, errors.WithDetails(errors.ErrInvalidInput, err))
		return
	}
	state, err := services.ImportErr(string(body))
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Replace(r.Context(), state))
}

func (h *StateHandler) GetShareLink(w http.ResponseWriter, r *http.Request) {
	fragment, err := services.EncodeShareLink(h.session.Snapshot())
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, ShareLinkResponse{Fragment: fragment})
}

// OpenShareLink installs the state carried by a share fragment.
func (h *StateHandler) OpenShareLink(w http.ResponseWriter, r *http.Request) {
	var input ShareLinkResponse
	if !decodeBody(w, r, &input) {
		return
	}
	state, err := services.DecodeShareLinkErr(input.Fragment)
	if err != nil {
		middleware.WriteError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Replace(r.Context(), state))
}

func (h *StateHandler) ResetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Reset(r.Context()))
}
