// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/itsatony/w4b_v3/server/stations/api/middleware"
	_ "github.com/itsatony/w4b_v3/server/stations/docs"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/service"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Stations    *StationHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	SwaggerDoc  func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc service.StationService) *Resources {
	return &Resources{
		Stations:    NewStationHandlers(svc),
		HealthCheck: defaultHealthCheck,
		SwaggerDoc:  swaggerDoc,
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

func defaultHealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": nuts.GetVersion()})
}

// @Summary OpenAPI document
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /swagger.json [get]
func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, r, errors.NewInternalError("failed to render api document", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// Helper functions

func respondWithError(w http.ResponseWriter, r *http.Request, err *errors.APIError) {
	err.WithRequestID(middleware.GetRequestID(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	if err.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s", err.Error())
	} else {
		nuts.L.Warnf("[API] %s", err.Error())
	}
}

// respondWithServiceError passes APIErrors through and wraps anything else as internal.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if apiErr, ok := errors.As(err); ok {
		respondWithError(w, r, apiErr)
		return
	}
	respondWithError(w, r, errors.NewInternalError(msg, err))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
