// FilePath: internal/repository/postgres/postgres.station.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/itsatony/w4b_v3/server/stations/internal/database"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/keygen"
	"github.com/itsatony/w4b_v3/server/stations/internal/models"
	"github.com/itsatony/w4b_v3/server/stations/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const (
	selectStationsQuery = `SELECT id, label, key FROM stations ORDER BY label, id`
	selectStationQuery  = `SELECT id, label, key FROM stations WHERE id = $1`
	insertStationQuery  = `INSERT INTO stations (label, key) VALUES ($1, $2) RETURNING id, label, key`
	updateStationQuery  = `UPDATE stations SET label = $1, key = $2 WHERE id = $3 RETURNING id, label, key`
	deleteStationQuery  = `DELETE FROM stations WHERE id = $1`
)

type StationRepo struct {
	PostgresBaseRepo
	sensors   repository.SensorRepository
	keyLength int
}

// NewStationRepository builds the station DAO. keyLength <= 0 selects keygen.DefaultLength.
func NewStationRepository(db database.DB, sensors repository.SensorRepository, keyLength int) *StationRepo {
	if keyLength <= 0 {
		keyLength = keygen.DefaultLength
	}
	return &StationRepo{
		PostgresBaseRepo: PostgresBaseRepo{db: db},
		sensors:          sensors,
		keyLength:        keyLength,
	}
}

// AsHash loads every station keyed by its id, without sensors.
func (r *StationRepo) AsHash(ctx context.Context) (map[string]*models.Station, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	records := []models.StationRecord{}
	if err := conn.SelectContext(ctx, &records, selectStationsQuery); err != nil {
		return nil, errors.FromDB("failed to list stations", err)
	}

	hash := make(map[string]*models.Station, len(records))
	for _, rec := range records {
		hash[rec.ID.String()] = models.NewStation(rec)
	}
	return hash, nil
}

// FindAll loads every station together with its sensors.
func (r *StationRepo) FindAll(ctx context.Context) ([]*models.Station, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	records := []models.StationRecord{}
	if err := conn.SelectContext(ctx, &records, selectStationsQuery); err != nil {
		return nil, errors.FromDB("failed to list stations", err)
	}

	stations := make([]*models.Station, 0, len(records))
	for _, rec := range records {
		sensors, err := r.sensors.BelongingTo(ctx, conn, rec.ID)
		if err != nil {
			return nil, err
		}
		stations = append(stations, models.NewStation(rec).WithSensors(sensors))
	}
	return stations, nil
}

// Find loads one station with its sensors, or a NotFound error.
func (r *StationRepo) Find(ctx context.Context, id uuid.UUID) (*models.Station, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rec models.StationRecord
	if err := conn.GetContext(ctx, &rec, selectStationQuery, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("station not found", err)
		}
		return nil, errors.FromDB("failed to get station", err)
	}

	sensors, err := r.sensors.BelongingTo(ctx, conn, rec.ID)
	if err != nil {
		return nil, err
	}
	return models.NewStation(rec).WithSensors(sensors), nil
}

// Create mints a fresh key and inserts the station.
func (r *StationRepo) Create(ctx context.Context, label string) (*models.Station, error) {
	key, err := keygen.Generate(r.keyLength)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate station key", err)
	}

	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rec models.StationRecord
	if err := conn.GetContext(ctx, &rec, insertStationQuery, label, key); err != nil {
		return nil, errors.FromDB("failed to create station", err)
	}

	nuts.L.Infof("[StationRepo] Created station %s", rec.ID)
	return models.NewStation(rec), nil
}

// Update overwrites label and key and returns the stored row, or a NotFound error.
func (r *StationRepo) Update(ctx context.Context, id uuid.UUID, label, key string) (*models.StationRecord, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rec models.StationRecord
	if err := conn.GetContext(ctx, &rec, updateStationQuery, label, key, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("station not found", err)
		}
		return nil, errors.FromDB("failed to update station", err)
	}
	return &rec, nil
}

// Delete removes the station and reports the number of rows affected (0 or 1).
func (r *StationRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, deleteStationQuery, id)
	if err != nil {
		return 0, errors.FromDB("failed to delete station", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[StationRepo] Deleted %d station(s) with id %s", rows, id)
	return rows, nil
}
