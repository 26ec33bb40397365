package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trip-planner/logging"
	"trip-planner/metrics"
	"trip-planner/middleware"
	"trip-planner/services"
)

// RouterConfig carries everything the HTTP surface depends on.
type RouterConfig struct {
	Session        *services.Session
	Searcher       services.PlaceSearcher
	Auth           *services.AuthService // nil leaves mutating routes open
	Metrics        *metrics.Collector
	Logger         logging.Logger
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *mux.Router {
	stateHandler := NewStateHandler(cfg.Session)
	planHandler := NewPlanHandler(cfg.Session)
	placeHandler := NewPlaceHandler(cfg.Session, cfg.Searcher)

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(cfg.Logger))
	r.Use(middleware.ErrorMiddleware(cfg.Logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	protect := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.Auth != nil {
		authHandler := NewAuthHandler(cfg.Auth)
		jwt := middleware.JWTMiddleware(cfg.Auth)
		protect = func(h http.HandlerFunc) http.Handler { return jwt(h) }

		authRouter := r.PathPrefix("/auth").Subrouter()
		authRouter.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")
	}

	// State routes
	stateRouter := r.PathPrefix("/state").Subrouter()
	stateRouter.HandleFunc("", stateHandler.GetState).Methods("GET", "OPTIONS")
	stateRouter.HandleFunc("/export", stateHandler.ExportState).Methods("GET", "OPTIONS")
	stateRouter.Handle("/import", protect(stateHandler.ImportState)).Methods("POST", "OPTIONS")
	stateRouter.HandleFunc("/share", stateHandler.GetShareLink).Methods("GET", "OPTIONS")
	stateRouter.Handle("/share", protect(stateHandler.OpenShareLink)).Methods("POST", "OPTIONS")
	stateRouter.Handle("/reset", protect(stateHandler.ResetState)).Methods("POST", "OPTIONS")

	// Plan routes
	planRouter := r.PathPrefix("/plans/{key}").Subrouter()
	planRouter.HandleFunc("", planHandler.GetPlan).Methods("GET", "OPTIONS")
	dayRouter := planRouter.PathPrefix("/days/{day:[0-9]+}").Subrouter()
	dayRouter.Handle("/places", protect(planHandler.AddPlace)).Methods("POST", "OPTIONS")
	dayRouter.Handle("/places/{placeId}", protect(planHandler.RemovePlace)).Methods("DELETE", "OPTIONS")
	dayRouter.Handle("/reorder", protect(planHandler.Reorder)).Methods("POST", "OPTIONS")
	dayRouter.Handle("/optimize", protect(planHandler.Optimize)).Methods("POST", "OPTIONS")
	dayRouter.Handle("/transfer", protect(planHandler.Transfer)).Methods("POST", "OPTIONS")
	dayRouter.HandleFunc("/summary", planHandler.Summary).Methods("GET", "OPTIONS")

	// Place routes
	placeRouter := r.PathPrefix("/places").Subrouter()
	placeRouter.HandleFunc("", placeHandler.ListPlaces).Methods("GET", "OPTIONS")
	placeRouter.Handle("", protect(placeHandler.CreatePlace)).Methods("POST", "OPTIONS")
	placeRouter.HandleFunc("/recommendations", placeHandler.Recommendations).Methods("GET", "OPTIONS")
	placeRouter.HandleFunc("/nearby", placeHandler.Nearby).Methods("GET", "OPTIONS")
	placeRouter.HandleFunc("/search", placeHandler.SearchPlaces).Methods("GET", "OPTIONS")

	r.Handle("/metrics", cfg.Metrics.Handler()).Methods("GET")

	return r
}
