package postgres

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/itsatony/w4b_v3/server/stations/internal/database"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/itsatony/w4b_v3/server/stations/internal/keygen"
	"github.com/itsatony/w4b_v3/server/stations/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stationColumns = []string{"id", "label", "key"}
	sensorColumns  = []string{"id", "station_id", "label", "kind", "unit"}
)

func newRepos(t *testing.T) (*StationRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	db := database.Wrap(mockDB, "postgres")
	// One connection: a call that leaks its connection blocks every later call.
	db.GetDB().SetMaxOpenConns(1)
	return NewStationRepository(db, NewSensorRepository(db), 0), mock
}

// assertReleased checks the pool has no connection checked out and that a
// fresh one can still be acquired.
func assertReleased(t *testing.T, repo *StationRepo) {
	t.Helper()
	assert.Equal(t, 0, repo.db.GetDB().Stats().InUse, "connection still checked out")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	conn, err := repo.acquire(ctx)
	require.NoError(t, err, "pool exhausted")
	require.NoError(t, conn.Close())
}

// generatedKey matches any freshly minted station key.
type generatedKey struct{}

func (generatedKey) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || len(s) != keygen.DefaultLength {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func TestStationRepoCreate(t *testing.T) {
	repo, mock := newRepos(t)
	id := uuid.New()

	mock.ExpectQuery(insertStationQuery).
		WithArgs("Roof", generatedKey{}).
		WillReturnRows(sqlmock.NewRows(stationColumns).AddRow(id.String(), "Roof", "k3yk3yk3yk3yk3yk3yk3yk3y"))

	st, err := repo.Create(context.Background(), "Roof")
	require.NoError(t, err)
	assert.Equal(t, id, st.ID)
	assert.Equal(t, "Roof", st.Label)
	assert.Equal(t, "k3yk3yk3yk3yk3yk3yk3yk3y", st.Key)
	assert.Nil(t, st.Sensors)
}

func TestStationRepoCreateConflict(t *testing.T) {
	repo, mock := newRepos(t)

	mock.ExpectQuery(insertStationQuery).
		WithArgs("Roof", generatedKey{}).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), "Roof")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assertReleased(t, repo)
}

func TestStationRepoFind(t *testing.T) {
	repo, mock := newRepos(t)
	id, sensorID := uuid.New(), uuid.New()

	mock.ExpectQuery(selectStationQuery).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(stationColumns).AddRow(id.String(), "Garden", "secret"))
	mock.ExpectQuery(sensorsByStationQuery).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(sensorColumns).AddRow(sensorID.String(), id.String(), "Thermo", "temperature", "C"))

	st, err := repo.Find(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Garden", st.Label)
	assert.Equal(t, "secret", st.Key)
	require.Len(t, st.Sensors, 1)
	assert.Equal(t, models.Sensor{ID: sensorID, StationID: id, Label: "Thermo", Kind: models.Temperature, Unit: "C"}, st.Sensors[0])
}

func TestStationRepoFindNotFound(t *testing.T) {
	repo, mock := newRepos(t)
	id := uuid.New()

	mock.ExpectQuery(selectStationQuery).WithArgs(id).WillReturnRows(sqlmock.NewRows(stationColumns))

	_, err := repo.Find(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assertReleased(t, repo)

	mock.ExpectQuery(selectStationsQuery).WillReturnRows(sqlmock.NewRows(stationColumns))
	hash, err := repo.AsHash(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestStationRepoFindAllLoadsSensors(t *testing.T) {
	repo, mock := newRepos(t)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(selectStationsQuery).
		WillReturnRows(sqlmock.NewRows(stationColumns).AddRow(a.String(), "A", "ka").AddRow(b.String(), "B", "kb"))
	mock.ExpectQuery(sensorsByStationQuery).
		WithArgs(a).
		WillReturnRows(sqlmock.NewRows(sensorColumns).AddRow(uuid.NewString(), a.String(), "Wind", "wind_speed", "m/s"))
	mock.ExpectQuery(sensorsByStationQuery).
		WithArgs(b).
		WillReturnRows(sqlmock.NewRows(sensorColumns))

	stations, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Len(t, stations[0].Sensors, 1)
	assert.NotNil(t, stations[1].Sensors)
	assert.Empty(t, stations[1].Sensors)
}

func TestStationRepoFindAllSensorFailure(t *testing.T) {
	repo, mock := newRepos(t)
	a := uuid.New()

	mock.ExpectQuery(selectStationsQuery).
		WillReturnRows(sqlmock.NewRows(stationColumns).AddRow(a.String(), "A", "ka"))
	mock.ExpectQuery(sensorsByStationQuery).
		WithArgs(a).
		WillReturnError(stderrors.New("connection reset"))

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeDatabase, apiErr.Type)
	assertReleased(t, repo)
}

func TestStationRepoAsHash(t *testing.T) {
	repo, mock := newRepos(t)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(selectStationsQuery).
		WillReturnRows(sqlmock.NewRows(stationColumns).AddRow(a.String(), "A", "ka").AddRow(b.String(), "B", "kb"))

	hash, err := repo.AsHash(context.Background())
	require.NoError(t, err)
	require.Len(t, hash, 2)
	for id, st := range hash {
		assert.Equal(t, st.ID.String(), id)
		assert.Nil(t, st.Sensors)
	}
	assert.Equal(t, "B", hash[b.String()].Label)
}

func TestStationRepoUpdate(t *testing.T) {
	repo, mock := newRepos(t)
	id := uuid.New()

	mock.ExpectQuery(updateStationQuery).
		WithArgs("Renamed", "newkey", id).
		WillReturnRows(sqlmock.NewRows(stationColumns).AddRow(id.String(), "Renamed", "newkey"))

	rec, err := repo.Update(context.Background(), id, "Renamed", "newkey")
	require.NoError(t, err)
	assert.Equal(t, models.StationRecord{ID: id, Label: "Renamed", Key: "newkey"}, *rec)
}

func TestStationRepoUpdateMissing(t *testing.T) {
	repo, mock := newRepos(t)
	id := uuid.New()

	mock.ExpectQuery(updateStationQuery).
		WithArgs("Renamed", "newkey", id).
		WillReturnRows(sqlmock.NewRows(stationColumns))

	_, err := repo.Update(context.Background(), id, "Renamed", "newkey")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assertReleased(t, repo)
}

func TestStationRepoDelete(t *testing.T) {
	repo, mock := newRepos(t)
	id := uuid.New()

	mock.ExpectExec(deleteStationQuery).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	n, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectExec(deleteStationQuery).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	n, err = repo.Delete(context.Background(), id)
	require.NoError(t, err, "deleting a missing station is not an error")
	assert.Equal(t, int64(0), n)
	assertReleased(t, repo)
}

func TestStationRepoDeleteFailureReleasesConnection(t *testing.T) {
	repo, mock := newRepos(t)
	id := uuid.New()

	mock.ExpectExec(deleteStationQuery).WithArgs(id).WillReturnError(stderrors.New("connection reset"))
	_, err := repo.Delete(context.Background(), id)
	require.Error(t, err)
	assertReleased(t, repo)
}

func TestSensorRepoListByStation(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewSensorRepository(database.Wrap(mockDB, "postgres"))
	id := uuid.New()
	mock.ExpectQuery(sensorsByStationQuery).WithArgs(id).WillReturnRows(sqlmock.NewRows(sensorColumns))

	sensors, err := repo.ListByStation(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, sensors)
	assert.Empty(t, sensors)
	assert.NoError(t, mock.ExpectationsWereMet())
}
