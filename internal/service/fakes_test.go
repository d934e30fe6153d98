package service

import (
	"context"
	"sync"
	"time"

	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/repository"

	"github.com/google/uuid"
)

func testGeoStates() *domain.GeoStates {
	return domain.NewGeoStates([]domain.GeoState{
		{ID: 5, Name: "California", Abbreviation: "CA"},
		{ID: 31, Name: "New Jersey", Abbreviation: "NJ"},
		{ID: 33, Name: "New York", Abbreviation: "NY"},
	})
}

type fakeRegistrantRepository struct {
	mu          sync.Mutex
	registrants []domain.Registrant
	createErr   error
	now         time.Time
}

func newFakeRegistrantRepository() *fakeRegistrantRepository {
	return &fakeRegistrantRepository{now: time.Now()}
}

func (r *fakeRegistrantRepository) Create(_ context.Context, registrant *domain.Registrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	// Mimic the column defaults the real table applies on insert. Each insert
	// gets a strictly later timestamp so ordering is observable.
	r.now = r.now.Add(time.Second)
	registrant.CreatedAt = r.now
	registrant.UpdatedAt = r.now
	r.registrants = append(r.registrants, *registrant)
	return nil
}

func (r *fakeRegistrantRepository) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Registrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.registrants {
		if r.registrants[i].ID == id {
			registrant := r.registrants[i]
			return &registrant, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegistrantRepository) FindByPartner(_ context.Context, partnerID int64, filters repository.RegistrantFilters) ([]domain.Registrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Registrant
	for _, registrant := range r.registrants {
		if registrant.PartnerID != partnerID {
			continue
		}
		if filters.Email != nil && registrant.EmailAddress.String != *filters.Email {
			continue
		}
		if filters.Since != nil && registrant.CreatedAt.Before(*filters.Since) {
			continue
		}
		out = append(out, registrant)
	}
	return out, nil
}

func (r *fakeRegistrantRepository) UpdatePdfPath(_ context.Context, id uuid.UUID, pdfPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.registrants {
		if r.registrants[i].ID == id {
			r.registrants[i].PdfPath.String = pdfPath
			r.registrants[i].PdfPath.Valid = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRegistrantRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.registrants)
}

type fakePartnerRepository struct {
	mu       sync.Mutex
	partners map[int64]*domain.Partner
	nextID   int64
}

func newFakePartnerRepository() *fakePartnerRepository {
	return &fakePartnerRepository{partners: make(map[int64]*domain.Partner), nextID: 1}
}

func (r *fakePartnerRepository) Create(_ context.Context, partner *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	partner.ID = r.nextID
	r.nextID++
	copied := *partner
	r.partners[partner.ID] = &copied
	return nil
}

func (r *fakePartnerRepository) GetOneByID(_ context.Context, id int64) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	partner, ok := r.partners[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *partner
	return &copied, nil
}

func (r *fakePartnerRepository) GetByAPIKey(_ context.Context, apiKey string) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, partner := range r.partners {
		if partner.APIKey == apiKey {
			copied := *partner
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []uuid.UUID
	err        error
}

func (d *fakeDispatcher) DispatchCompleteRegistration(_ context.Context, registrantID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.dispatched = append(d.dispatched, registrantID)
	return nil
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dispatched)
}
