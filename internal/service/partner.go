package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/repository"
)

var (
	zipCodeRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneRe   = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

type partnerService struct {
	partnerRepository repository.Partners
}

func newPartnerService(partnerRepository repository.Partners) *partnerService {
	return &partnerService{
		partnerRepository: partnerRepository,
	}
}

// Authenticate resolves a partner by id and checks its api key. Every failure
// mode collapses into ErrInvalidPartnerOrAPIKey: responses must not reveal
// whether the id or the key was wrong.
func (s *partnerService) Authenticate(ctx context.Context, partnerID int64, apiKey string) (*domain.Partner, error) {
	if partnerID == 0 || apiKey == "" {
		return nil, ErrInvalidPartnerOrAPIKey
	}

	partner, err := s.partnerRepository.GetOneByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidPartnerOrAPIKey
		}
		return nil, fmt.Errorf("get partner by id failed: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(partner.APIKey), []byte(apiKey)) != 1 {
		return nil, ErrInvalidPartnerOrAPIKey
	}

	return partner, nil
}

// Create registers a new partner. The phone number is normalized before
// validation so partners may submit any ten digit format.
func (s *partnerService) Create(ctx context.Context, partner *domain.Partner) error {
	partner.NormalizePhone()

	if err := validatePartner(partner); err != nil {
		return err
	}

	if partner.APIKey == "" {
		key, err := generateAPIKey()
		if err != nil {
			return fmt.Errorf("generate api key failed: %w", err)
		}
		partner.APIKey = key
	}

	if err := s.partnerRepository.Create(ctx, partner); err != nil {
		return fmt.Errorf("create partner failed: %w", err)
	}
	return nil
}

func validatePartner(partner *domain.Partner) error {
	required := []struct {
		field string
		value string
	}{
		{"name", partner.Name},
		{"url", partner.URL},
		{"address", partner.Address},
		{"city", partner.City},
		{"zip_code", partner.ZipCode},
		{"phone", partner.Phone},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field, Message: "Required"}
		}
	}
	if partner.StateID == 0 {
		return &ValidationError{Field: "state_id", Message: "Required"}
	}
	if !zipCodeRe.MatchString(partner.ZipCode) {
		return &ValidationError{Field: "zip_code", Message: "Invalid"}
	}
	if !phoneRe.MatchString(partner.Phone) {
		return &ValidationError{Field: "phone", Message: "Phone must look like ###-###-####"}
	}
	return nil
}

func generateAPIKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
