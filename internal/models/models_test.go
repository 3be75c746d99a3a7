package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "Ab3dEf6hIj9kLm2nOp5qRs8t"

func TestStationJSONHidesKey(t *testing.T) {
	st := NewStation(StationRecord{ID: uuid.New(), Label: "Roof", Key: secret})

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.NotContains(t, string(data), secret)
	assert.NotContains(t, string(data), `"key"`)
	assert.NotContains(t, string(data), `"sensors"`, "unloaded sensors are omitted")

	rec, err := json.Marshal(st.Record())
	require.NoError(t, err)
	assert.NotContains(t, string(rec), secret)
	assert.JSONEq(t, `{"id":"`+st.ID.String()+`","label":"Roof"}`, string(rec))
}

func TestStationJSONLoadedSensors(t *testing.T) {
	st := NewStation(StationRecord{ID: uuid.New(), Label: "Garden", Key: secret}).WithSensors(nil)

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sensors":[]`)

	sensor := Sensor{ID: uuid.New(), StationID: st.ID, Label: "Thermo", Kind: Temperature, Unit: "C"}
	st.WithSensors([]Sensor{sensor})
	data, err = json.Marshal(st)
	require.NoError(t, err)

	var back Station
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, st.ID, back.ID)
	assert.Equal(t, []Sensor{sensor}, back.Sensors)
	assert.Empty(t, back.Key)
}

func TestStationMapJSON(t *testing.T) {
	st := NewStation(StationRecord{ID: uuid.New(), Label: "Shed", Key: secret})
	hash := map[string]*Station{st.ID.String(): st}

	data, err := json.Marshal(hash)
	require.NoError(t, err)
	assert.NotContains(t, string(data), secret)
	assert.Contains(t, string(data), `"`+st.ID.String()+`":{`)
}
