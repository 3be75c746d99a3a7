// FilePath: internal/models/models.station.go
package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// StationRecord is the row shape of the stations table.
type StationRecord struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Label string    `json:"label" db:"label"`
	// For internal use only. Keys never appear in JSON.
	Key string `json:"-" db:"key"`
}

// Station is the public view of a station. Sensors is nil when the
// association was not loaded and non-nil (possibly empty) when it was.
type Station struct {
	ID      uuid.UUID
	Label   string
	Key     string
	Sensors []Sensor
}

// NewStation builds a view from a stored row with sensors not loaded.
func NewStation(rec StationRecord) *Station {
	return &Station{
		ID:    rec.ID,
		Label: rec.Label,
		Key:   rec.Key,
	}
}

// WithSensors returns the view with its sensors marked as loaded.
func (s *Station) WithSensors(sensors []Sensor) *Station {
	if sensors == nil {
		sensors = []Sensor{}
	}
	s.Sensors = sensors
	return s
}

// Record returns the storage shape of the view.
func (s *Station) Record() StationRecord {
	return StationRecord{ID: s.ID, Label: s.Label, Key: s.Key}
}

type stationJSON struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Sensors *[]Sensor `json:"sensors,omitempty"`
}

// MarshalJSON omits the key and renders sensors only when they were loaded.
func (s Station) MarshalJSON() ([]byte, error) {
	out := stationJSON{ID: s.ID, Label: s.Label}
	if s.Sensors != nil {
		out.Sensors = &s.Sensors
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the same shape MarshalJSON produces.
func (s *Station) UnmarshalJSON(data []byte) error {
	var in stationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ID = in.ID
	s.Label = in.Label
	s.Sensors = nil
	if in.Sensors != nil {
		s.Sensors = *in.Sensors
	}
	return nil
}

// StationChangeset is the client payload for create and update.
type StationChangeset struct {
	Label string `json:"label"`
	Key   string `json:"key,omitempty"`
}
