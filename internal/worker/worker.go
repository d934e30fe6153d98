package worker

import (
	"context"

	"github.com/voterworks/backend/internal/config"
	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/repository"
	emailProvider "github.com/voterworks/backend/pkg/email"

	"github.com/google/uuid"
)

type Workers struct {
	RegistrationCompleter RegistrationCompleter
}

type Deps struct {
	Repos         *repository.Repositories
	EmailProvider emailProvider.Sender
	PdfGenerator  PdfGenerator
	Config        *config.Config
}

type PdfGenerator interface {
	Generate(registrant *domain.Registrant, partner *domain.Partner) (string, error)
}

type RegistrationCompleter interface {
	CompleteRegistration(ctx context.Context, registrantID uuid.UUID) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		RegistrationCompleter: newRegistrationCompleter(
			deps.Repos.Registrants,
			deps.Repos.Partners,
			deps.PdfGenerator,
			deps.EmailProvider,
			deps.Config.Email,
		),
	}
}
