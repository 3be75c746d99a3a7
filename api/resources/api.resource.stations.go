package resources

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/models"
	"github.com/itsatony/w4b_v3/server/stations/internal/service"
)

const (
	viewList = "list"
	viewHash = "hash"
)

// StationHandlers encapsulates the station-related HTTP handlers
type StationHandlers struct {
	service service.StationService
	decoder *schema.Decoder
}

func NewStationHandlers(svc service.StationService) *StationHandlers {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &StationHandlers{service: svc, decoder: decoder}
}

type stationListQuery struct {
	View string `schema:"view"`
}

// @Summary List stations
// @Description List all stations with their sensors, or with view=hash a map of stations keyed by id without sensors
// @Tags stations
// @Produce json
// @Param view query string false "list (default) or hash"
// @Success 200 {array} models.Station
// @Failure 400 {object} errors.APIError
// @Router /stations [get]
func (h *StationHandlers) ListStations(w http.ResponseWriter, r *http.Request) {
	var q stationListQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid query parameters", err))
		return
	}

	switch q.View {
	case "", viewList:
		stations, err := h.service.ListStations(r.Context())
		if err != nil {
			respondWithServiceError(w, r, "failed to list stations", err)
			return
		}
		respondWithJSON(w, http.StatusOK, stations)
	case viewHash:
		hash, err := h.service.StationsByID(r.Context())
		if err != nil {
			respondWithServiceError(w, r, "failed to list stations", err)
			return
		}
		respondWithJSON(w, http.StatusOK, hash)
	default:
		respondWithError(w, r, errors.NewValidationError("view must be list or hash", nil))
	}
}

// @Summary Create a station
// @Description Create a station; a secret key is generated and never returned
// @Tags stations
// @Accept json
// @Produce json
// @Param station body models.StationChangeset true "Station label"
// @Success 201 {object} models.Station
// @Failure 400 {object} errors.APIError
// @Router /stations [post]
func (h *StationHandlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	var body models.StationChangeset
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid request body", err))
		return
	}

	st, err := h.service.CreateStation(r.Context(), body.Label)
	if err != nil {
		respondWithServiceError(w, r, "failed to create station", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, st)
}

// @Summary Get a station
// @Tags stations
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {object} models.Station
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [get]
func (h *StationHandlers) GetStation(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	st, err := h.service.GetStation(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, "failed to get station", err)
		return
	}

	respondWithJSON(w, http.StatusOK, st)
}

// @Summary Update a station
// @Description Update the label and optionally the key of a station
// @Tags stations
// @Accept json
// @Produce json
// @Param id path string true "Station ID"
// @Param station body models.StationChangeset true "Station changes"
// @Success 200 {object} models.StationRecord
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [put]
func (h *StationHandlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	var body models.StationChangeset
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid request body", err))
		return
	}

	rec, err := h.service.UpdateStation(r.Context(), id, body.Label, body.Key)
	if err != nil {
		respondWithServiceError(w, r, "failed to update station", err)
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}

// @Summary Rotate a station key
// @Tags stations
// @Param id path string true "Station ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/key [post]
func (h *StationHandlers) RotateStationKey(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	if err := h.service.RotateStationKey(r.Context(), id); err != nil {
		respondWithServiceError(w, r, "failed to rotate station key", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete a station
// @Tags stations
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {object} map[string]int64
// @Router /stations/{id} [delete]
func (h *StationHandlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	n, err := h.service.DeleteStation(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, "failed to delete station", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// @Summary List the sensors of a station
// @Tags stations
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {array} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/sensors [get]
func (h *StationHandlers) ListStationSensors(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	sensors, err := h.service.StationSensors(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, "failed to list sensors", err)
		return
	}

	respondWithJSON(w, http.StatusOK, sensors)
}

func stationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid station id", err))
		return uuid.Nil, false
	}
	return id, true
}
