package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/ports"
	"bikerental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWizardRepository struct{ mock.Mock }

func (m *MockWizardRepository) Add(ctx context.Context, w *wizard.Wizard) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWizardRepository) Update(ctx context.Context, w *wizard.Wizard) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWizardRepository) Get(ctx context.Context, id kernel.UUID) (*wizard.Wizard, error) {
	args := m.Called(ctx, id)
	if w := args.Get(0); w != nil {
		return w.(*wizard.Wizard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWizardRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWizardRepository) DeleteIdleSince(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockWizardUoW struct{ mock.Mock }

func (m *MockWizardUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWizardUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWizardUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWizardUoW) WizardRepository() ports.WizardRepository {
	args := m.Called()
	return args.Get(0).(ports.WizardRepository)
}

type MockWizardUoWFactory struct{ mock.Mock }

func (m *MockWizardUoWFactory) Create() commands.WizardUoW {
	args := m.Called()
	return args.Get(0).(commands.WizardUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ListAvailable(ctx context.Context, locationID string, filter bike.Filter) ([]*bike.Bike, error) {
	args := m.Called(ctx, locationID, filter)
	if b := args.Get(0); b != nil {
		return b.([]*bike.Bike), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPartners struct{ mock.Mock }

func (m *MockPartners) GetByID(ctx context.Context, partnerID string) (*partner.Partner, error) {
	args := m.Called(ctx, partnerID)
	if p := args.Get(0); p != nil {
		return p.(*partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Create(ctx context.Context, principal ports.Principal, req booking.Request) (*booking.Booking, error) {
	args := m.Called(ctx, principal, req)
	if b := args.Get(0); b != nil {
		return b.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuth struct{ mock.Mock }

func (m *MockAuth) Principal(ctx context.Context) (ports.Principal, bool) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Principal), args.Bool(1)
}

func (m *MockAuth) LoginURL(returnTo string) string {
	args := m.Called(returnTo)
	return args.String(0)
}

type MockParkedStore struct{ mock.Mock }

func (m *MockParkedStore) Park(ctx context.Context, snapshot wizard.Snapshot, ttl time.Duration) (string, error) {
	args := m.Called(ctx, snapshot, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockParkedStore) Peek(ctx context.Context, token string) (wizard.Snapshot, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(wizard.Snapshot), args.Error(1)
}

func (m *MockParkedStore) Claim(ctx context.Context, token string) (wizard.Snapshot, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(wizard.Snapshot), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) BookingCreated(ctx context.Context, event ports.BookingCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Schedule(ctx context.Context, wizardID kernel.UUID) error {
	args := m.Called(ctx, wizardID)
	return args.Error(0)
}

func (m *MockScheduler) Cancel(wizardID kernel.UUID) {
	m.Called(wizardID)
}

func (m *MockScheduler) Remaining(wizardID kernel.UUID) (int, bool) {
	args := m.Called(wizardID)
	return args.Int(0), args.Bool(1)
}

// memoryStore keeps wizards as snapshots so every transaction sees its own
// copy, like the postgres repository does.
type memoryStore struct {
	mu      sync.Mutex
	rows    map[string]wizard.Snapshot
	updates int

	failUpdates bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[string]wizard.Snapshot)}
}

func (s *memoryStore) Create() commands.WizardUoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) put(t *testing.T, w *wizard.Wizard) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[w.ID().String()] = w.Snapshot()
}

func (s *memoryStore) load(t *testing.T, id kernel.UUID) *wizard.Wizard {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.rows[id.String()]
	require.True(t, ok, "wizard %s is not stored", id)
	w, err := wizard.RestoreWizard(snapshot)
	require.NoError(t, err)
	return w
}

func (s *memoryStore) remove(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id.String())
}

type memoryUoW struct {
	store   *memoryStore
	pending map[string]*wizard.Snapshot
}

func (u *memoryUoW) Begin(context.Context) error {
	u.pending = make(map[string]*wizard.Snapshot)
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for id, s := range u.pending {
		if s == nil {
			delete(u.store.rows, id)
			continue
		}
		u.store.rows[id] = *s
	}
	u.pending = nil
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	u.pending = nil
	return nil
}

func (u *memoryUoW) WizardRepository() ports.WizardRepository {
	return memoryRepo{uow: u}
}

type memoryRepo struct {
	uow *memoryUoW
}

func (r memoryRepo) Add(_ context.Context, w *wizard.Wizard) error {
	w.SetVersion(1)
	s := w.Snapshot()
	r.uow.pending[w.ID().String()] = &s
	return nil
}

func (r memoryRepo) Update(_ context.Context, w *wizard.Wizard) error {
	r.uow.store.mu.Lock()
	current, ok := r.uow.store.rows[w.ID().String()]
	r.uow.store.updates++
	fail := r.uow.store.failUpdates
	r.uow.store.mu.Unlock()
	if fail {
		return assert.AnError
	}
	if !ok {
		return errs.NewObjectNotFoundError("wizard", w.ID())
	}
	if current.Version != w.Version() {
		return errs.NewVersionIsInvalidErrorWithCause("wizard")
	}
	w.SetVersion(w.Version() + 1)
	s := w.Snapshot()
	r.uow.pending[w.ID().String()] = &s
	return nil
}

func (r memoryRepo) Get(_ context.Context, id kernel.UUID) (*wizard.Wizard, error) {
	r.uow.store.mu.Lock()
	s, ok := r.uow.store.rows[id.String()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("wizard", id)
	}
	return wizard.RestoreWizard(s)
}

func (r memoryRepo) Delete(_ context.Context, id kernel.UUID) error {
	r.uow.pending[id.String()] = nil
	return nil
}

func (r memoryRepo) DeleteIdleSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}
