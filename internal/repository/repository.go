// FilePath: internal/repository/repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/itsatony/w4b_v3/server/stations/internal/models"
	"github.com/jmoiron/sqlx"
)

// StationRepository defines the data-access operations for stations.
// Every call acquires one pooled connection and releases it before returning.
type StationRepository interface {
	AsHash(ctx context.Context) (map[string]*models.Station, error)
	FindAll(ctx context.Context) ([]*models.Station, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Station, error)
	Create(ctx context.Context, label string) (*models.Station, error)
	Update(ctx context.Context, id uuid.UUID, label, key string) (*models.StationRecord, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// SensorRepository reads the sensors associated with a station
type SensorRepository interface {
	// BelongingTo runs on the caller's connection.
	BelongingTo(ctx context.Context, q sqlx.QueryerContext, stationID uuid.UUID) ([]models.Sensor, error)
	ListByStation(ctx context.Context, stationID uuid.UUID) ([]models.Sensor, error)
}
