package draft

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/pricing"
)

type fakeCatalog struct {
	mu       sync.Mutex
	services []domain.Service
	offers   [][]domain.SitterOffer // consumed call by call; last entry repeats
	calls    int

	blockFirst   chan struct{} // first offers call waits on this when set
	firstStarted chan struct{}
}

func (f *fakeCatalog) ListServices(ctx context.Context) ([]domain.Service, error) {
	return f.services, nil
}

func (f *fakeCatalog) ListOffersByService(ctx context.Context, serviceID string) ([]domain.SitterOffer, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	idx := call
	if idx >= len(f.offers) {
		idx = len(f.offers) - 1
	}
	result := f.offers[idx]
	f.mu.Unlock()

	if call == 0 && f.blockFirst != nil {
		close(f.firstStarted)
		<-f.blockFirst
	}
	return result, nil
}

type memoryStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: make(map[string]Draft)}
}

func (m *memoryStore) SaveDraft(ctx context.Context, sessionID string, d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[sessionID] = d
	return nil
}

func (m *memoryStore) LoadDraft(ctx context.Context, sessionID string) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: []domain.Service{
			{ID: "s0001", Name: "Basic Care", BasePrice: 900},
			{ID: "s0004", Name: "Full Grooming", BasePrice: 800},
		},
		offers: [][]domain.SitterOffer{{
			{SitterID: "t0001", Name: "Mina Park", Price: 500, ServiceID: "s0001"},
			{SitterID: "t0002", Name: "Jonas Weber", Price: 2500, ServiceID: "s0001"},
		}},
	}
}

func newTestSession(t *testing.T, store Store, catalog Catalog) *Session {
	t.Helper()
	m := NewManager(store, catalog, pricing.DefaultTariff(), 2000)
	s, err := m.Session(context.Background(), "session-1")
	require.NoError(t, err)
	return s
}

func TestSetDates_DerivesNights(t *testing.T) {
	s := newTestSession(t, nil, testCatalog())

	view, err := s.SetDates(context.Background(), "2026-09-01", "2026-09-04")
	require.NoError(t, err)
	require.NotNil(t, view.Draft.Nights)
	assert.Equal(t, 3, *view.Draft.Nights)
}

func TestSetDates_SameDayIsZeroNights(t *testing.T) {
	s := newTestSession(t, nil, testCatalog())

	view, err := s.SetDates(context.Background(), "2026-09-01", "2026-09-01")
	require.NoError(t, err)
	require.NotNil(t, view.Draft.Nights)
	assert.Equal(t, 0, *view.Draft.Nights)
}

func TestSetDates_InvertedRangeClearsCheckout(t *testing.T) {
	s := newTestSession(t, nil, testCatalog())

	view, err := s.SetDates(context.Background(), "2026-09-05", "2026-09-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	require.NotNil(t, view.Draft.CheckIn)
	assert.Equal(t, "2026-09-05", *view.Draft.CheckIn)
	assert.Nil(t, view.Draft.CheckOut)
	assert.Nil(t, view.Draft.Nights)
}

func TestSetDates_BadDateRejected(t *testing.T) {
	s := newTestSession(t, nil, testCatalog())

	_, err := s.SetDates(context.Background(), "not-a-date", "")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestSetDates_BadCheckoutLeavesDraftUntouched(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	s := newTestSession(t, store, testCatalog())

	_, err := s.SetDates(ctx, "2026-09-01", "2026-09-03")
	require.NoError(t, err)
	_, err = s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	_, err = s.SelectSitter(ctx, "t0001")
	require.NoError(t, err)

	view, err := s.SetDates(ctx, "2026-09-02", "not-a-date")
	assert.ErrorIs(t, err, ErrBadDate)

	// The returned view, the in-memory draft and the stored draft all keep
	// the previous selection.
	require.NotNil(t, view.Draft.CheckIn)
	assert.Equal(t, "2026-09-01", *view.Draft.CheckIn)
	require.NotNil(t, view.Draft.Nights)
	assert.Equal(t, 2, *view.Draft.Nights)
	require.NotNil(t, view.Draft.ServiceID)
	assert.Equal(t, "s0001", *view.Draft.ServiceID)
	require.NotNil(t, view.Draft.SitterID)
	assert.Equal(t, "t0001", *view.Draft.SitterID)

	current := s.Current(ctx)
	assert.Equal(t, view.Draft, current.Draft)

	saved, err := store.LoadDraft(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, view.Draft, *saved)
}

func TestSetDates_ClearsServiceAndSitter(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil, testCatalog())

	_, err := s.SetDates(ctx, "2026-09-01", "2026-09-03")
	require.NoError(t, err)
	_, err = s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	_, err = s.SelectSitter(ctx, "t0001")
	require.NoError(t, err)

	view, err := s.SetDates(ctx, "2026-09-02", "2026-09-05")
	require.NoError(t, err)
	assert.Nil(t, view.Draft.ServiceID)
	assert.Nil(t, view.Draft.SitterID)
}

func TestSelectService_TogglesAndClearsSitter(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil, testCatalog())

	_, err := s.SetDates(ctx, "2026-09-01", "2026-09-03")
	require.NoError(t, err)

	view, err := s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	require.NotNil(t, view.Draft.ServiceID)
	assert.Equal(t, "s0001", *view.Draft.ServiceID)

	_, err = s.SelectSitter(ctx, "t0001")
	require.NoError(t, err)

	// Selecting the same service again deselects it and drops the sitter.
	view, err = s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	assert.Nil(t, view.Draft.ServiceID)
	assert.Nil(t, view.Draft.SitterID)
}

func TestSelectSitter_Toggles(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil, testCatalog())

	_, err := s.SelectService(ctx, "s0001")
	require.NoError(t, err)

	view, err := s.SelectSitter(ctx, "t0001")
	require.NoError(t, err)
	require.NotNil(t, view.Draft.SitterID)
	assert.Equal(t, "t0001", *view.Draft.SitterID)

	view, err = s.SelectSitter(ctx, "t0001")
	require.NoError(t, err)
	assert.Nil(t, view.Draft.SitterID)
}

func TestView_BudgetFiltersSitters(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil, testCatalog())

	view, err := s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	// Default budget 2000 hides the 2500 offer.
	require.Len(t, view.Sitters, 1)
	assert.Equal(t, "t0001", view.Sitters[0].ID)

	view, err = s.SetBudget(ctx, 3000)
	require.NoError(t, err)
	assert.Len(t, view.Sitters, 2)
}

func TestView_QuoteFollowsSelection(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil, testCatalog())

	_, err := s.SetDates(ctx, "2026-09-01", "2026-09-03")
	require.NoError(t, err)
	_, err = s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	view, err := s.SelectSitter(ctx, "t0001")
	require.NoError(t, err)

	require.True(t, view.Quote.OK)
	assert.Equal(t, 1000.0, view.Quote.Total)
}

func TestReset_KeepsPet(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil, testCatalog())

	_, err := s.SetDates(ctx, "2026-09-01", "2026-09-03")
	require.NoError(t, err)
	_, err = s.SelectService(ctx, "s0001")
	require.NoError(t, err)
	_, err = s.SelectPet(ctx, "p0001")
	require.NoError(t, err)

	view, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Nil(t, view.Draft.CheckIn)
	assert.Nil(t, view.Draft.Nights)
	assert.Nil(t, view.Draft.ServiceID)
	assert.Nil(t, view.Draft.SitterID)
	require.NotNil(t, view.Draft.PetID)
	assert.Equal(t, "p0001", *view.Draft.PetID)
}

func TestManager_LoadsPersistedDraft(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	catalog := testCatalog()

	s := newTestSession(t, store, catalog)
	_, err := s.SetDates(ctx, "2026-09-01", "2026-09-03")
	require.NoError(t, err)
	_, err = s.SelectPet(ctx, "p0001")
	require.NoError(t, err)

	// A fresh manager, as after a restart, sees the same draft.
	m := NewManager(store, catalog, pricing.DefaultTariff(), 2000)
	restored, err := m.Session(ctx, "session-1")
	require.NoError(t, err)

	view := restored.Current(ctx)
	require.NotNil(t, view.Draft.Nights)
	assert.Equal(t, 2, *view.Draft.Nights)
	require.NotNil(t, view.Draft.PetID)
	assert.Equal(t, "p0001", *view.Draft.PetID)
}

// A sitter fetch that was overtaken by a newer one must never install its
// result.
func TestRefreshSitters_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()

	oldList := []domain.SitterOffer{{SitterID: "t0009", Name: "Old Result", Price: 100, ServiceID: "s0001"}}
	newList := []domain.SitterOffer{{SitterID: "t0001", Name: "Mina Park", Price: 500, ServiceID: "s0001"}}

	catalog := &fakeCatalog{
		services:     []domain.Service{{ID: "s0001", Name: "Basic Care"}},
		offers:       [][]domain.SitterOffer{oldList, newList},
		blockFirst:   make(chan struct{}),
		firstStarted: make(chan struct{}),
	}
	s := newTestSession(t, nil, catalog)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.SelectService(ctx, "s0001")
		assert.NoError(t, err)
	}()

	// Wait for the first fetch to be in flight, then let a second one
	// complete ahead of it.
	<-catalog.firstStarted
	_, err := s.SetBudget(ctx, 3000)
	require.NoError(t, err)

	close(catalog.blockFirst)
	wg.Wait()

	view := s.Current(ctx)
	require.Len(t, view.Sitters, 1)
	assert.Equal(t, "t0001", view.Sitters[0].ID)
}
