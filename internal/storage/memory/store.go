package memory

import (
	"context"
	"sort"
	"sync"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It is safe for concurrent use. Data is lost when the process exits.
//
// RunInTx works on a private copy of the state and swaps it in on success,
// so readers either see all of a transaction's writes or none of them.
type MemoryLedgerStore struct {
	mu sync.RWMutex // protects st; held for writing for the whole of RunInTx
	st *state
}

// NewMemoryLedgerStore creates and returns a new, empty MemoryLedgerStore.
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{st: newState()}
}

type state struct {
	businesses map[int64]models.Business
	parties    map[int64]models.Party
	entries    map[int64]models.LedgerEntry
	cash       map[int64]models.CashEntry
	prefs      map[string]string

	businessSeq, partySeq, entrySeq, cashSeq int64
}

func newState() *state {
	return &state{
		businesses: make(map[int64]models.Business),
		parties:    make(map[int64]models.Party),
		entries:    make(map[int64]models.LedgerEntry),
		cash:       make(map[int64]models.CashEntry),
		prefs:      make(map[string]string),
	}
}

func (s *state) clone() *state {
	c := &state{
		businesses:  make(map[int64]models.Business, len(s.businesses)),
		parties:     make(map[int64]models.Party, len(s.parties)),
		entries:     make(map[int64]models.LedgerEntry, len(s.entries)),
		cash:        make(map[int64]models.CashEntry, len(s.cash)),
		prefs:       make(map[string]string, len(s.prefs)),
		businessSeq: s.businessSeq,
		partySeq:    s.partySeq,
		entrySeq:    s.entrySeq,
		cashSeq:     s.cashSeq,
	}
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.parties {
		c.parties[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.cash {
		c.cash[k] = v
	}
	for k, v := range s.prefs {
		c.prefs[k] = v
	}
	return c
}

func (s *state) getParty(id int64) (models.Party, error) {
	p, ok := s.parties[id]
	if !ok {
		return models.Party{}, models.ErrPartyNotFound
	}
	return p, nil
}

func (s *state) getEntry(id int64) (models.LedgerEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return models.LedgerEntry{}, models.ErrEntryNotFound
	}
	return e, nil
}

func (s *state) deleteParty(id int64) {
	delete(s.parties, id)
	for eid, e := range s.entries {
		if e.PartyID == id {
			delete(s.entries, eid)
		}
	}
}

// Business

func (m *MemoryLedgerStore) InsertBusiness(ctx context.Context, business models.Business) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.businessSeq++
	business.ID = m.st.businessSeq
	m.st.businesses[business.ID] = business
	return business.ID, nil
}

func (m *MemoryLedgerStore) GetBusiness(ctx context.Context, id int64) (models.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.st.businesses[id]
	if !ok {
		return models.Business{}, models.ErrBusinessNotFound
	}
	return b, nil
}

// ListBusinesses returns businesses in creation order.
func (m *MemoryLedgerStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Business, 0, len(m.st.businesses))
	for _, b := range m.st.businesses {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryLedgerStore) UpdateBusiness(ctx context.Context, business models.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.businesses[business.ID]; !ok {
		return models.ErrBusinessNotFound
	}
	m.st.businesses[business.ID] = business
	return nil
}

func (m *MemoryLedgerStore) DeleteBusiness(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.businesses[id]; !ok {
		return models.ErrBusinessNotFound
	}
	delete(m.st.businesses, id)
	for pid, p := range m.st.parties {
		if p.BusinessID == id {
			m.st.deleteParty(pid)
		}
	}
	for cid, c := range m.st.cash {
		if c.BusinessID == id {
			delete(m.st.cash, cid)
		}
	}
	return nil
}

// Party

func (m *MemoryLedgerStore) InsertParty(ctx context.Context, party models.Party) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.businesses[party.BusinessID]; !ok {
		return 0, models.ErrBusinessNotFound
	}
	m.st.partySeq++
	party.ID = m.st.partySeq
	party.Balance = 0
	m.st.parties[party.ID] = party
	return party.ID, nil
}

func (m *MemoryLedgerStore) GetParty(ctx context.Context, id int64) (models.Party, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.getParty(id)
}

func (m *MemoryLedgerStore) ListPartiesForBusiness(ctx context.Context, businessID int64) ([]models.Party, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.Party
	for _, p := range m.st.parties {
		if p.BusinessID == businessID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MemoryLedgerStore) UpdateParty(ctx context.Context, party models.Party) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.st.getParty(party.ID)
	if err != nil {
		return err
	}
	current.Name = party.Name
	current.Phone = party.Phone
	current.Role = party.Role
	current.Address = party.Address
	m.st.parties[party.ID] = current
	return nil
}

func (m *MemoryLedgerStore) DeleteParty(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.st.getParty(id); err != nil {
		return err
	}
	m.st.deleteParty(id)
	return nil
}

// Ledger entries

func (m *MemoryLedgerStore) GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.getEntry(id)
}

func (m *MemoryLedgerStore) ListEntriesForParty(ctx context.Context, partyID int64) ([]models.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.LedgerEntry
	for _, e := range m.st.entries {
		if e.PartyID == partyID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Cash

func (m *MemoryLedgerStore) InsertCashEntry(ctx context.Context, entry models.CashEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.businesses[entry.BusinessID]; !ok {
		return 0, models.ErrBusinessNotFound
	}
	m.st.cashSeq++
	entry.ID = m.st.cashSeq
	m.st.cash[entry.ID] = entry
	return entry.ID, nil
}

func (m *MemoryLedgerStore) GetCashEntry(ctx context.Context, id int64) (models.CashEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.st.cash[id]
	if !ok {
		return models.CashEntry{}, models.ErrCashEntryNotFound
	}
	return c, nil
}

func (m *MemoryLedgerStore) ListCashEntriesForBusiness(ctx context.Context, businessID int64) ([]models.CashEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.CashEntry
	for _, c := range m.st.cash {
		if c.BusinessID == businessID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MemoryLedgerStore) DeleteCashEntry(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.cash[id]; !ok {
		return models.ErrCashEntryNotFound
	}
	delete(m.st.cash, id)
	return nil
}

// Preferences

func (m *MemoryLedgerStore) GetPreference(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.st.prefs[key]
	return v, ok, nil
}

func (m *MemoryLedgerStore) SetPreference(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.prefs[key] = value
	return nil
}

// RunInTx runs fn against a copy of the current state and publishes the
// copy only if fn succeeds. fn must not call back into m.
func (m *MemoryLedgerStore) RunInTx(ctx context.Context, fn func(tx interfaces.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := m.st.clone()
	if err := fn(&memoryTx{st: draft}); err != nil {
		return err
	}
	m.st = draft
	return nil
}

func (m *MemoryLedgerStore) Close() error {
	return nil
}

type memoryTx struct {
	st *state
}

func (t *memoryTx) GetParty(ctx context.Context, id int64) (models.Party, error) {
	return t.st.getParty(id)
}

func (t *memoryTx) GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error) {
	return t.st.getEntry(id)
}

func (t *memoryTx) InsertEntry(ctx context.Context, entry models.LedgerEntry) (int64, error) {
	if _, err := t.st.getParty(entry.PartyID); err != nil {
		return 0, err
	}
	t.st.entrySeq++
	entry.ID = t.st.entrySeq
	t.st.entries[entry.ID] = entry
	return entry.ID, nil
}

func (t *memoryTx) UpdateEntry(ctx context.Context, entry models.LedgerEntry) error {
	if _, err := t.st.getEntry(entry.ID); err != nil {
		return err
	}
	t.st.entries[entry.ID] = entry
	return nil
}

func (t *memoryTx) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := t.st.getEntry(id); err != nil {
		return err
	}
	delete(t.st.entries, id)
	return nil
}

func (t *memoryTx) UpdatePartyBalance(ctx context.Context, partyID int64, balance int64) error {
	p, err := t.st.getParty(partyID)
	if err != nil {
		return err
	}
	p.Balance = balance
	t.st.parties[partyID] = p
	return nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
