package repository

import (
	"context"
	"time"

	"github.com/voterworks/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Registrants Registrants
	Partners    Partners
	GeoStates   GeoStates
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Registrants: newRegistrantRepository(db),
		Partners:    newPartnerRepository(db),
		GeoStates:   newGeoStateRepository(db),
	}
}

// RegistrantFilters narrows a partner-scoped listing. Nil fields are skipped.
type RegistrantFilters struct {
	Email *string
	Since *time.Time
}

type Registrants interface {
	Create(ctx context.Context, registrant *domain.Registrant) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Registrant, error)
	FindByPartner(ctx context.Context, partnerID int64, filters RegistrantFilters) ([]domain.Registrant, error)
	UpdatePdfPath(ctx context.Context, id uuid.UUID, pdfPath string) error
}

type Partners interface {
	Create(ctx context.Context, partner *domain.Partner) error
	GetOneByID(ctx context.Context, id int64) (*domain.Partner, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Partner, error)
}

type GeoStates interface {
	GetAll(ctx context.Context) ([]domain.GeoState, error)
}
