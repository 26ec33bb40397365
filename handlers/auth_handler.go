package handlers

import (
	"net/http"

	"trip-planner/middleware"
	"trip-planner/services"
	"trip-planner/utils/errors"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	token, err := h.auth.Login(input.Password)
	if err != nil {
		middleware.WriteError(r.Context(), w, errors.Wrap(err, "LOGIN_ERROR", "Failed to login", http.StatusUnauthorized))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
