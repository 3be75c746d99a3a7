package service

import (
	"github.com/google/uuid"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/keygen"
	"github.com/itsatony/w4b_v3/server/stations/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Station lifecycle events, emitted with the station id as payload.
const (
	EventStationCreated    = "station.created"
	EventStationUpdated    = "station.updated"
	EventStationKeyRotated = "station.key_rotated"
	EventStationDeleted    = "station.deleted"
)

// Service contains the repositories and service-wide dependencies
type Service struct {
	stations  repository.StationRepository
	sensors   repository.SensorRepository
	events    *nuts.EventEmitter
	keyLength int
}

// New creates a new service instance
func New(stations repository.StationRepository, sensors repository.SensorRepository, keyLength int) *Service {
	if keyLength <= 0 {
		keyLength = keygen.DefaultLength
	}
	return &Service{
		stations:  stations,
		sensors:   sensors,
		events:    nuts.NewEventEmitter(),
		keyLength: keyLength,
	}
}

// Validate checks if all required repositories are initialized
func (s *Service) Validate() error {
	if s.stations == nil {
		return ErrMissingRepository("stations")
	}
	if s.sensors == nil {
		return ErrMissingRepository("sensors")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// OnStationEvent registers a callback for station lifecycle events
func (s *Service) OnStationEvent(event string, handler func(id string)) {
	s.events.On(event, nuts.NID("evh", 8), func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}

func (s *Service) emit(event string, id uuid.UUID) {
	s.events.Emit(event, id.String())
}
