// FilePath: internal/models/models.sensor.go
package models

import "github.com/google/uuid"

type SensorKind string

const (
	Temperature   SensorKind = "temperature"
	Humidity      SensorKind = "humidity"
	Pressure      SensorKind = "pressure"
	WindSpeed     SensorKind = "wind_speed"
	WindDirection SensorKind = "wind_direction"
	Rainfall      SensorKind = "rainfall"
	Light         SensorKind = "light"
	Other         SensorKind = "other"
)

// Sensor is the summary of a sensor row, as returned alongside its station.
type Sensor struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	StationID uuid.UUID  `json:"station_id" db:"station_id"`
	Label     string     `json:"label" db:"label"`
	Kind      SensorKind `json:"kind" db:"kind"`
	Unit      string     `json:"unit" db:"unit"`
}
