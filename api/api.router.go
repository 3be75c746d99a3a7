package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/itsatony/w4b_v3/server/stations/api/middleware"
	"github.com/itsatony/w4b_v3/server/stations/api/resources"
	"github.com/itsatony/w4b_v3/server/stations/internal/service"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
	handler   http.Handler
}

// NewRouter wires the station resources. health may be nil for the default handler.
func NewRouter(svc service.StationService, allowedOrigins []string, health http.HandlerFunc) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
	}
	if health != nil {
		r.resources.SetHealthCheck(health)
	}

	r.setupRoutes()

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderRequestID}),
		handlers.ExposedHeaders([]string{middleware.HeaderRequestID}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)
	r.handler = recovery(cors(middleware.RequestID(r.router)))
	return r
}

func (r *Router) setupRoutes() {
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/swagger.json", r.resources.SwaggerDoc).Methods(http.MethodGet)

	// Stations
	stations := api.PathPrefix("/stations").Subrouter()
	stations.HandleFunc("", r.resources.Stations.ListStations).Methods(http.MethodGet)
	stations.HandleFunc("", r.resources.Stations.CreateStation).Methods(http.MethodPost)
	stations.HandleFunc("/{id}", r.resources.Stations.GetStation).Methods(http.MethodGet)
	stations.HandleFunc("/{id}", r.resources.Stations.UpdateStation).Methods(http.MethodPut)
	stations.HandleFunc("/{id}", r.resources.Stations.DeleteStation).Methods(http.MethodDelete)
	stations.HandleFunc("/{id}/key", r.resources.Stations.RotateStationKey).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/sensors", r.resources.Stations.ListStationSensors).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// recoveryLogger routes panics caught by gorilla/handlers into the service log
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	nuts.L.Errorf("[API] Recovered from panic: %s", fmt.Sprint(v...))
}
