package draft

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/pricing"
)

// Store persists drafts across page reloads.
type Store interface {
	SaveDraft(ctx context.Context, sessionID string, d Draft) error
	LoadDraft(ctx context.Context, sessionID string) (*Draft, error)
}

// Catalog is the read-only service/sitter source the draft refetches from.
// The Postgres catalog repository satisfies it directly.
type Catalog interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListOffersByService(ctx context.Context, serviceID string) ([]domain.SitterOffer, error)
}

// SitterOption is one sitter offer as shown in the draft view, with the
// review rounded for display.
type SitterOption struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Seniority string  `json:"seniority"`
	Review    float64 `json:"review"`
	Price     float64 `json:"price"`
	ServiceID string  `json:"serviceId"`
}

// View is what a mutation returns: the draft, the recomputed quote and the
// budget-filtered sitter list for the selected service.
type View struct {
	Draft   Draft          `json:"draft"`
	Quote   pricing.Quote  `json:"quote"`
	Sitters []SitterOption `json:"sitters"`
}

// Session owns one draft. All mutations go through it so persistence, the
// sitter refetch and the quote recompute happen on every change.
type Session struct {
	id      string
	store   Store
	catalog Catalog
	tariff  pricing.Tariff

	mu      sync.Mutex
	draft   Draft
	sitters []domain.SitterOffer

	// fetchSeq tags each outgoing sitter fetch; a response is installed
	// only when its tag is still the latest issued, so a slow earlier
	// fetch can never overwrite a newer result.
	fetchSeq atomic.Int64
}

// Manager hands out sessions, loading persisted drafts on first access.
type Manager struct {
	store         Store
	catalog       Catalog
	tariff        pricing.Tariff
	defaultBudget float64

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store Store, catalog Catalog, tariff pricing.Tariff, defaultBudget float64) *Manager {
	return &Manager{
		store:         store,
		catalog:       catalog,
		tariff:        tariff,
		defaultBudget: defaultBudget,
		sessions:      make(map[string]*Session),
	}
}

func (m *Manager) Session(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s := &Session{
		id:      sessionID,
		store:   m.store,
		catalog: m.catalog,
		tariff:  m.tariff,
		draft:   Draft{Budget: m.defaultBudget},
	}
	if m.store != nil {
		saved, err := m.store.LoadDraft(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if saved != nil {
			s.draft = *saved
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[sessionID]; ok {
		return existing, nil
	}
	m.sessions[sessionID] = s
	return s, nil
}

// SetDates records a date change. On an inverted range the check-out and
// nights are cleared, the cleared draft is persisted and the error is
// surfaced for display. A date that does not parse changes nothing, so
// there is nothing to persist on that path.
func (s *Session) SetDates(ctx context.Context, checkin, checkout string) (View, error) {
	s.mu.Lock()
	mutErr := s.draft.setDates(checkin, checkout)
	s.mu.Unlock()

	if mutErr == ErrBadDate {
		return s.view(ctx), mutErr
	}
	if err := s.persist(ctx); err != nil {
		return View{}, err
	}
	s.refreshSitters(ctx)
	return s.view(ctx), mutErr
}

func (s *Session) SelectService(ctx context.Context, serviceID string) (View, error) {
	s.mu.Lock()
	s.draft.selectService(serviceID)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return View{}, err
	}
	s.refreshSitters(ctx)
	return s.view(ctx), nil
}

func (s *Session) SelectSitter(ctx context.Context, sitterID string) (View, error) {
	s.mu.Lock()
	s.draft.selectSitter(sitterID)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return View{}, err
	}
	return s.view(ctx), nil
}

func (s *Session) SelectPet(ctx context.Context, petID string) (View, error) {
	s.mu.Lock()
	s.draft.PetID = &petID
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return View{}, err
	}
	return s.view(ctx), nil
}

// SetBudget changes the budget ceiling and refetches the sitter list for
// the current service.
func (s *Session) SetBudget(ctx context.Context, budget float64) (View, error) {
	s.mu.Lock()
	s.draft.Budget = budget
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return View{}, err
	}
	s.refreshSitters(ctx)
	return s.view(ctx), nil
}

// Reset returns the draft to its initial state after a successful
// submission. The pet stays selected for the next booking.
func (s *Session) Reset(ctx context.Context) (View, error) {
	s.mu.Lock()
	s.draft.reset()
	s.sitters = nil
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return View{}, err
	}
	return s.view(ctx), nil
}

func (s *Session) Current(ctx context.Context) View {
	s.mu.Lock()
	needFetch := s.draft.ServiceID != nil && s.sitters == nil
	s.mu.Unlock()
	if needFetch {
		s.refreshSitters(ctx)
	}
	return s.view(ctx)
}

func (s *Session) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.mu.Lock()
	d := s.draft
	s.mu.Unlock()
	return s.store.SaveDraft(ctx, s.id, d)
}

func (s *Session) refreshSitters(ctx context.Context) {
	s.mu.Lock()
	serviceID := s.draft.ServiceID
	s.mu.Unlock()

	if serviceID == nil {
		s.mu.Lock()
		s.sitters = nil
		s.mu.Unlock()
		return
	}

	seq := s.fetchSeq.Add(1)
	offers, err := s.catalog.ListOffersByService(ctx, *serviceID)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq.Load() {
		// A newer fetch was issued while this one was in flight.
		return
	}
	s.sitters = offers
}

func (s *Session) view(ctx context.Context) View {
	s.mu.Lock()
	d := s.draft
	sitters := s.sitters
	s.mu.Unlock()

	var svc *domain.Service
	if d.ServiceID != nil {
		if services, err := s.catalog.ListServices(ctx); err == nil {
			for i := range services {
				if services[i].ID == *d.ServiceID {
					svc = &services[i]
					break
				}
			}
		}
	}

	var offer *domain.SitterOffer
	filtered := make([]SitterOption, 0, len(sitters))
	for i := range sitters {
		if sitters[i].Price <= d.Budget {
			filtered = append(filtered, SitterOption{
				ID:        sitters[i].SitterID,
				Name:      sitters[i].Name,
				Specialty: sitters[i].Specialty,
				Seniority: sitters[i].Seniority,
				Review:    domain.RoundRating(sitters[i].Rating),
				Price:     sitters[i].Price,
				ServiceID: sitters[i].ServiceID,
			})
		}
		if d.SitterID != nil && sitters[i].SitterID == *d.SitterID {
			offer = &sitters[i]
		}
	}

	return View{
		Draft:   d,
		Quote:   s.tariff.Compute(d.Nights, svc, offer),
		Sitters: filtered,
	}
}
