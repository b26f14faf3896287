package engine

import (
	"sync"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/jonboulle/clockwork"
)

var _ Store = (*MemStore)(nil)

// MemStore is the thread-safe in-memory roster.
type MemStore struct {
	mu        sync.RWMutex
	users     []schema.User
	status    schema.Status
	assignIDs bool
}

// Option customizes a MemStore at construction.
type Option func(*memStoreConfig)

type memStoreConfig struct {
	clock     clockwork.Clock
	status    *schema.Status
	assignIDs bool
}

// WithClock sets the clock used to stamp the initial status.
func WithClock(c clockwork.Clock) Option {
	return func(cfg *memStoreConfig) { cfg.clock = c }
}

// WithStatus replaces the initial status record entirely.
func WithStatus(s schema.Status) Option {
	return func(cfg *memStoreConfig) { cfg.status = &s }
}

// WithAssignedIDs makes the store replace a zero id with max(existing)+1.
// Without it every user is stored exactly as given.
func WithAssignedIDs() Option {
	return func(cfg *memStoreConfig) { cfg.assignIDs = true }
}

// NewMemStore initializes a store holding a copy of initialUsers.
// The status record is created here and never replaced afterwards.
func NewMemStore(initialUsers []schema.User, opts ...Option) *MemStore {
	cfg := memStoreConfig{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&cfg)
	}

	status := schema.Status{
		ID:     1,
		Status: schema.StatusActive,
		Time:   cfg.clock.Now().Format(StatusTimeLayout),
	}
	if cfg.status != nil {
		status = *cfg.status
	}

	users := make([]schema.User, len(initialUsers))
	copy(users, initialUsers)

	return &MemStore{
		users:     users,
		status:    status,
		assignIDs: cfg.assignIDs,
	}
}

func (m *MemStore) ListUsers() []schema.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.copyUsers()
}

func (m *MemStore) AppendUser(u schema.User) schema.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.append(u)
}

func (m *MemStore) AppendUserChecked(u schema.User, check func(existing []schema.User) error) (schema.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if check != nil {
		// check gets its own copy so it cannot alias the live slice
		if err := check(m.copyUsers()); err != nil {
			return schema.User{}, err
		}
	}
	return m.append(u), nil
}

func (m *MemStore) GetStatus() schema.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.status
}

// Len reports how many users are stored.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.users)
}

// append stores u, assigning the next id when u.ID is zero and assignment is on.
// It MUST be called while holding m.mu.Lock.
func (m *MemStore) append(u schema.User) schema.User {
	if m.assignIDs && u.ID == 0 {
		u.ID = m.nextID()
	}
	m.users = append(m.users, u)
	return u
}

// nextID MUST be called while holding m.mu.Lock.
func (m *MemStore) nextID() int {
	highest := 0
	for _, u := range m.users {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}

// copyUsers MUST be called while holding m.mu.Lock or m.mu.RLock.
func (m *MemStore) copyUsers() []schema.User {
	out := make([]schema.User, len(m.users))
	copy(out, m.users)
	return out
}
