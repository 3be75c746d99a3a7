// FilePath: internal/repository/postgres/postgres.sensor.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/itsatony/w4b_v3/server/stations/internal/database"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/models"
	"github.com/jmoiron/sqlx"
)

const sensorsByStationQuery = `
	SELECT id, station_id, label, kind, unit
	FROM sensors
	WHERE station_id = $1
	ORDER BY label, id`

type SensorRepo struct {
	PostgresBaseRepo
}

func NewSensorRepository(db database.DB) *SensorRepo {
	return &SensorRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

// BelongingTo lists a station's sensors on the caller's connection. The result is never nil.
func (r *SensorRepo) BelongingTo(ctx context.Context, q sqlx.QueryerContext, stationID uuid.UUID) ([]models.Sensor, error) {
	sensors := []models.Sensor{}
	if err := sqlx.SelectContext(ctx, q, &sensors, sensorsByStationQuery, stationID); err != nil {
		return nil, errors.FromDB("failed to list sensors", err)
	}
	return sensors, nil
}

// ListByStation lists a station's sensors on a connection of its own.
func (r *SensorRepo) ListByStation(ctx context.Context, stationID uuid.UUID) ([]models.Sensor, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return r.BelongingTo(ctx, conn, stationID)
}
