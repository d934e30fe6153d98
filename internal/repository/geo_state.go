package repository

import (
	"context"
	"fmt"

	"github.com/voterworks/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type geoStateRepository struct {
	db *sqlx.DB
}

func newGeoStateRepository(db *sqlx.DB) *geoStateRepository {
	return &geoStateRepository{
		db: db,
	}
}

func (r *geoStateRepository) GetAll(ctx context.Context) ([]domain.GeoState, error) {
	const query = `
	SELECT id, name, abbreviation FROM geo_state ORDER BY id ASC;
	`
	var states []domain.GeoState
	if err := r.db.SelectContext(ctx, &states, query); err != nil {
		return nil, fmt.Errorf("select from geo_state failed: %w", err)
	}
	return states, nil
}
