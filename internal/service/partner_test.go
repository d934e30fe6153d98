package service

import (
	"context"
	"testing"

	"github.com/voterworks/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartner() *domain.Partner {
	return &domain.Partner{
		Name:    "Civic Org",
		URL:     "https://civic.example.org",
		Address: "1 Main St",
		City:    "Albany",
		StateID: 33,
		ZipCode: "12207",
		Phone:   "(518) 555-0123",
	}
}

func TestPartnerAuthenticate(t *testing.T) {
	repo := newFakePartnerRepository()
	svc := newPartnerService(repo)

	partner := testPartner()
	partner.APIKey = "key"
	require.NoError(t, repo.Create(context.Background(), partner))

	t.Run("ok", func(t *testing.T) {
		got, err := svc.Authenticate(context.Background(), partner.ID, "key")
		require.NoError(t, err)
		assert.Equal(t, partner.ID, got.ID)
	})

	// All failure modes collapse into the same error.
	t.Run("zero id", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), 0, "key")
		assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)
	})
	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), 404, "key")
		assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)
	})
	t.Run("wrong key", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), partner.ID, "not_the_key")
		assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)
	})
	t.Run("empty key", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), partner.ID, "")
		assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)
	})
}

func TestPartnerCreate_NormalizesPhone(t *testing.T) {
	svc := newPartnerService(newFakePartnerRepository())

	partner := testPartner()
	require.NoError(t, svc.Create(context.Background(), partner))

	assert.Equal(t, "518-555-0123", partner.Phone)
}

func TestPartnerCreate_GeneratesAPIKey(t *testing.T) {
	svc := newPartnerService(newFakePartnerRepository())

	partner := testPartner()
	require.NoError(t, svc.Create(context.Background(), partner))

	assert.Len(t, partner.APIKey, 40)
	assert.NotZero(t, partner.ID)
}

func TestPartnerCreate_KeepsProvidedAPIKey(t *testing.T) {
	svc := newPartnerService(newFakePartnerRepository())

	partner := testPartner()
	partner.APIKey = "preissued"
	require.NoError(t, svc.Create(context.Background(), partner))

	assert.Equal(t, "preissued", partner.APIKey)
}

func TestPartnerCreate_Validation(t *testing.T) {
	svc := newPartnerService(newFakePartnerRepository())

	cases := []struct {
		name    string
		mutate  func(*domain.Partner)
		field   string
		message string
	}{
		{"missing name", func(p *domain.Partner) { p.Name = "" }, "name", "Required"},
		{"missing url", func(p *domain.Partner) { p.URL = "" }, "url", "Required"},
		{"missing state", func(p *domain.Partner) { p.StateID = 0 }, "state_id", "Required"},
		{"bad zip", func(p *domain.Partner) { p.ZipCode = "1220" }, "zip_code", "Invalid"},
		{"bad phone", func(p *domain.Partner) { p.Phone = "555-01" }, "phone", "Phone must look like ###-###-####"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			partner := testPartner()
			tc.mutate(partner)

			err := svc.Create(context.Background(), partner)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.field, validation.Field)
			assert.Equal(t, tc.message, validation.Message)
		})
	}
}
