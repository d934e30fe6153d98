package service

import (
	"context"

	"github.com/voterworks/backend/internal/config"
	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/repository"

	"github.com/google/uuid"
)

type Services struct {
	Registrations Registrations
	Partners      Partners
}

type Deps struct {
	Config     *config.Config
	Repos      *repository.Repositories
	GeoStates  *domain.GeoStates
	Dispatcher CompletionDispatcher
}

func NewServices(deps Deps) *Services {
	partners := newPartnerService(deps.Repos.Partners)
	return &Services{
		Registrations: newRegistrationService(
			deps.Repos.Registrants,
			partners,
			deps.GeoStates,
			deps.Dispatcher,
		),
		Partners: partners,
	}
}

type Registrations interface {
	CreateRecord(ctx context.Context, data map[string]any) (*domain.Registrant, error)
	FindRecords(ctx context.Context, partnerID int64, apiKey string, filters repository.RegistrantFilters) ([]RegistrantRecord, error)
}

type Partners interface {
	Authenticate(ctx context.Context, partnerID int64, apiKey string) (*domain.Partner, error)
	Create(ctx context.Context, partner *domain.Partner) error
}

// CompletionDispatcher hands a completed registration off to the asynchronous
// workflow. Implementations must be quick: CreateRecord calls it inline.
type CompletionDispatcher interface {
	DispatchCompleteRegistration(ctx context.Context, registrantID uuid.UUID) error
}
