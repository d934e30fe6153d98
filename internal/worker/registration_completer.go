package worker

import (
	"context"
	"fmt"

	"github.com/voterworks/backend/internal/config"
	"github.com/voterworks/backend/internal/repository"
	emailProvider "github.com/voterworks/backend/pkg/email"

	"github.com/google/uuid"
)

type registrationCompleter struct {
	registrantRepository repository.Registrants
	partnerRepository    repository.Partners
	pdfGenerator         PdfGenerator
	sender               emailProvider.Sender
	config               config.EmailConfig
}

func newRegistrationCompleter(
	registrantRepository repository.Registrants,
	partnerRepository repository.Partners,
	pdfGenerator PdfGenerator,
	sender emailProvider.Sender,
	config config.EmailConfig,
) *registrationCompleter {
	return &registrationCompleter{
		registrantRepository: registrantRepository,
		partnerRepository:    partnerRepository,
		pdfGenerator:         pdfGenerator,
		sender:               sender,
		config:               config,
	}
}

type confirmationEmailInput struct {
	FirstName   string
	PartnerName string
}

// CompleteRegistration runs the post-registration workflow: render the filled
// registration form and notify the registrant. Retries are handled by the
// queue, so every step must be safe to repeat.
func (c *registrationCompleter) CompleteRegistration(ctx context.Context, registrantID uuid.UUID) error {
	registrant, err := c.registrantRepository.GetOneByID(ctx, registrantID)
	if err != nil {
		return fmt.Errorf("get registrant failed: %w", err)
	}

	partner, err := c.partnerRepository.GetOneByID(ctx, registrant.PartnerID)
	if err != nil {
		return fmt.Errorf("get partner failed: %w", err)
	}

	path, err := c.pdfGenerator.Generate(registrant, partner)
	if err != nil {
		return fmt.Errorf("generate registration pdf failed: %w", err)
	}

	if err := c.registrantRepository.UpdatePdfPath(ctx, registrant.ID, path); err != nil {
		return fmt.Errorf("update registrant pdf path failed: %w", err)
	}

	if !c.config.Enabled || !registrant.OptInEmail || !registrant.EmailAddress.Valid {
		return nil
	}

	subject := "Your voter registration is complete"
	if registrant.Locale == "es" {
		subject = "Su registro de votante está completo"
	}

	templateInput := confirmationEmailInput{
		FirstName:   registrant.FirstName.String,
		PartnerName: partner.Name,
	}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: registrant.EmailAddress.String}

	if err := sendInput.GenerateBodyFromHTML(c.config.Templates.Confirmation, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := c.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
