package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/keygen"
	"github.com/itsatony/w4b_v3/server/stations/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	maxLabelLength = 255
	minKeyLength   = 16
)

// StationService handles station-related business logic
type StationService interface {
	ListStations(ctx context.Context) ([]*models.Station, error)
	StationsByID(ctx context.Context) (map[string]*models.Station, error)
	GetStation(ctx context.Context, id uuid.UUID) (*models.Station, error)
	CreateStation(ctx context.Context, label string) (*models.Station, error)
	UpdateStation(ctx context.Context, id uuid.UUID, label, key string) (*models.StationRecord, error)
	RotateStationKey(ctx context.Context, id uuid.UUID) error
	VerifyStationKey(ctx context.Context, id uuid.UUID, key string) error
	DeleteStation(ctx context.Context, id uuid.UUID) (int64, error)
	StationSensors(ctx context.Context, id uuid.UUID) ([]models.Sensor, error)
}

var _ StationService = (*Service)(nil)

// ListStations returns every station with its sensors loaded.
func (s *Service) ListStations(ctx context.Context) ([]*models.Station, error) {
	return s.stations.FindAll(ctx)
}

// StationsByID returns every station keyed by id, without sensors.
func (s *Service) StationsByID(ctx context.Context) (map[string]*models.Station, error) {
	return s.stations.AsHash(ctx)
}

func (s *Service) GetStation(ctx context.Context, id uuid.UUID) (*models.Station, error) {
	return s.stations.Find(ctx, id)
}

func (s *Service) CreateStation(ctx context.Context, label string) (*models.Station, error) {
	label, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}

	st, err := s.stations.Create(ctx, label)
	if err != nil {
		return nil, err
	}

	nuts.L.Infof("[StationService] Created station: %s (%s)", st.Label, st.ID)
	s.emit(EventStationCreated, st.ID)
	return st, nil
}

// UpdateStation sets label and key. An empty key keeps the current one.
func (s *Service) UpdateStation(ctx context.Context, id uuid.UUID, label, key string) (*models.StationRecord, error) {
	label, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}

	if key == "" {
		existing, err := s.stations.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		key = existing.Key
	} else if !keygen.Valid(key, minKeyLength) {
		return nil, errors.NewValidationError("key must be at least 16 alphanumeric characters", nil)
	}

	rec, err := s.stations.Update(ctx, id, label, key)
	if err != nil {
		return nil, err
	}

	nuts.L.Infof("[StationService] Updated station %s", id)
	s.emit(EventStationUpdated, id)
	return rec, nil
}

// RotateStationKey replaces the station key with a freshly minted one.
func (s *Service) RotateStationKey(ctx context.Context, id uuid.UUID) error {
	existing, err := s.stations.Find(ctx, id)
	if err != nil {
		return err
	}

	key, err := keygen.Generate(s.keyLength)
	if err != nil {
		return errors.NewInternalError("failed to generate station key", err)
	}

	if _, err := s.stations.Update(ctx, id, existing.Label, key); err != nil {
		return err
	}

	nuts.L.Infof("[StationService] Rotated key for station %s", id)
	s.emit(EventStationKeyRotated, id)
	return nil
}

// VerifyStationKey checks a presented key against the stored one in constant time.
func (s *Service) VerifyStationKey(ctx context.Context, id uuid.UUID, key string) error {
	st, err := s.stations.Find(ctx, id)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(st.Key), []byte(key)) != 1 {
		return errors.NewAuthError("invalid station key", nil)
	}
	return nil
}

// DeleteStation removes a station. Deleting an unknown id yields 0, not an error.
func (s *Service) DeleteStation(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := s.stations.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.emit(EventStationDeleted, id)
	}
	return n, nil
}

// StationSensors lists the sensors of a station, failing with NotFound for unknown stations.
func (s *Service) StationSensors(ctx context.Context, id uuid.UUID) ([]models.Sensor, error) {
	sensors, err := s.sensors.ListByStation(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(sensors) == 0 {
		// empty could mean no such station
		if _, err := s.stations.Find(ctx, id); err != nil {
			return nil, err
		}
	}
	return sensors, nil
}

func normalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", errors.NewValidationError("station label is required", nil)
	}
	if utf8.RuneCountInString(label) > maxLabelLength {
		return "", errors.NewValidationError("station label is too long", nil)
	}
	return label, nil
}
