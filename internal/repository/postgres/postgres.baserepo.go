package postgres

import (
	"context"

	"github.com/itsatony/w4b_v3/server/stations/internal/database"
	"github.com/itsatony/w4b_v3/server/stations/internal/errors"
	"github.com/jmoiron/sqlx"
)

type PostgresBaseRepo struct {
	db database.DB
}

// acquire checks out a single connection from the pool. Callers must Close it.
func (r *PostgresBaseRepo) acquire(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := r.db.GetDB().Connx(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to acquire connection", err)
	}
	return conn, nil
}
