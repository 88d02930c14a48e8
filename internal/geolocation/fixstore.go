package geolocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// SQLiteFixStore keeps acquired fixes in the location_fixes table.
// The table is created by database.Open.
type SQLiteFixStore struct {
	db *sql.DB
}

// NewSQLiteFixStore wraps an open database
func NewSQLiteFixStore(db *sql.DB) *SQLiteFixStore {
	return &SQLiteFixStore{db: db}
}

// Latest returns the newest fix for source acquired at or after notBefore
func (s *SQLiteFixStore) Latest(ctx context.Context, source string, notBefore time.Time) (models.Coordinates, bool, error) {
	var coords models.Coordinates

	err := s.db.QueryRowContext(ctx,
		`SELECT latitude, longitude FROM location_fixes
		 WHERE source = ? AND acquired_at >= ?
		 ORDER BY acquired_at DESC LIMIT 1`,
		source, notBefore.UnixMilli(),
	).Scan(&coords.Latitude, &coords.Longitude)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Coordinates{}, false, nil
	}
	if err != nil {
		return models.Coordinates{}, false, fmt.Errorf("querying fix: %w", err)
	}

	return coords, true, nil
}

// Save records a fix
func (s *SQLiteFixStore) Save(ctx context.Context, source string, coords models.Coordinates, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO location_fixes (source, latitude, longitude, acquired_at) VALUES (?, ?, ?, ?)",
		source, coords.Latitude, coords.Longitude, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving fix: %w", err)
	}
	return nil
}

// Prune deletes fixes older than before
func (s *SQLiteFixStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM location_fixes WHERE acquired_at < ?", before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("pruning fixes: %w", err)
	}
	return res.RowsAffected()
}
