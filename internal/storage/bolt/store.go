// Package bolt stores the ledger in a single bbolt file. Records are JSON
// encoded and keyed by their big-endian ID.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// Bucket names.
const (
	BucketBusinesses  = "businesses"
	BucketParties     = "parties"
	BucketEntries     = "ledger_entries"
	BucketCash        = "cash_entries"
	BucketPreferences = "preferences"
)

var errBucketMissing = errors.New("bucket not found")

// OpenTimeout bounds the wait for the file lock held by another process.
var OpenTimeout = time.Second

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// Open creates a new Store instance and initializes buckets. It fails with
// bolt.ErrTimeout when another process keeps the file open for longer than
// OpenTimeout.
func Open(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{BucketBusinesses, BucketParties, BucketEntries, BucketCash, BucketPreferences}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("%w: %s", errBucketMissing, name)
	}
	return b, nil
}

// insert assigns the next sequence of the bucket as ID through setID and stores the record.
func insert[T any](tx *bolt.Tx, name string, v *T, setID func(*T, int64)) (int64, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return 0, err
	}
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	id := int64(seq)
	setID(v, id)
	return id, put(tx, name, id, v)
}

func put(tx *bolt.Tx, name string, id int64, v any) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put(itob(id), data)
}

func get(tx *bolt.Tx, name string, id int64, v any, notFound error) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	data := b.Get(itob(id))
	if data == nil {
		return notFound
	}
	return json.Unmarshal(data, v)
}

func remove(tx *bolt.Tx, name string, id int64, notFound error) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	if b.Get(itob(id)) == nil {
		return notFound
	}
	return b.Delete(itob(id))
}

// list decodes every record of a bucket and keeps those accepted by keep.
func list[T any](tx *bolt.Tx, name string, keep func(T) bool) ([]T, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return nil, err
	}
	var result []T
	err = b.ForEach(func(k, v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return fmt.Errorf("failed to unmarshal %s record: %w", name, err)
		}
		if keep == nil || keep(item) {
			result = append(result, item)
		}
		return nil
	})
	return result, err
}

func sortEntries(entries []models.LedgerEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

func deletePartyCascade(tx *bolt.Tx, partyID int64) error {
	if err := remove(tx, BucketParties, partyID, models.ErrPartyNotFound); err != nil {
		return err
	}
	entries, err := list(tx, BucketEntries, func(e models.LedgerEntry) bool { return e.PartyID == partyID })
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := remove(tx, BucketEntries, e.ID, models.ErrEntryNotFound); err != nil {
			return err
		}
	}
	return nil
}

// Business

func (s *Store) InsertBusiness(ctx context.Context, business models.Business) (int64, error) {
	var id int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		id, err = insert(tx, BucketBusinesses, &business, func(b *models.Business, id int64) { b.ID = id })
		return err
	})
	return id, err
}

func (s *Store) GetBusiness(ctx context.Context, id int64) (models.Business, error) {
	var b models.Business
	err := s.db.View(func(tx *bolt.Tx) error {
		return get(tx, BucketBusinesses, id, &b, models.ErrBusinessNotFound)
	})
	return b, err
}

// ListBusinesses returns businesses in creation order, which is key order.
func (s *Store) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var result []models.Business
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		result, err = list[models.Business](tx, BucketBusinesses, nil)
		return err
	})
	return result, err
}

func (s *Store) UpdateBusiness(ctx context.Context, business models.Business) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var current models.Business
		if err := get(tx, BucketBusinesses, business.ID, &current, models.ErrBusinessNotFound); err != nil {
			return err
		}
		return put(tx, BucketBusinesses, business.ID, business)
	})
}

func (s *Store) DeleteBusiness(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := remove(tx, BucketBusinesses, id, models.ErrBusinessNotFound); err != nil {
			return err
		}
		parties, err := list(tx, BucketParties, func(p models.Party) bool { return p.BusinessID == id })
		if err != nil {
			return err
		}
		for _, p := range parties {
			if err := deletePartyCascade(tx, p.ID); err != nil {
				return err
			}
		}
		cash, err := list(tx, BucketCash, func(c models.CashEntry) bool { return c.BusinessID == id })
		if err != nil {
			return err
		}
		for _, c := range cash {
			if err := remove(tx, BucketCash, c.ID, models.ErrCashEntryNotFound); err != nil {
				return err
			}
		}
		return nil
	})
}

// Party

func (s *Store) InsertParty(ctx context.Context, party models.Party) (int64, error) {
	var id int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		var owner models.Business
		if err := get(tx, BucketBusinesses, party.BusinessID, &owner, models.ErrBusinessNotFound); err != nil {
			return err
		}
		party.Balance = 0
		var err error
		id, err = insert(tx, BucketParties, &party, func(p *models.Party, id int64) { p.ID = id })
		return err
	})
	return id, err
}

func (s *Store) GetParty(ctx context.Context, id int64) (models.Party, error) {
	var p models.Party
	err := s.db.View(func(tx *bolt.Tx) error {
		return get(tx, BucketParties, id, &p, models.ErrPartyNotFound)
	})
	return p, err
}

func (s *Store) ListPartiesForBusiness(ctx context.Context, businessID int64) ([]models.Party, error) {
	var result []models.Party
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		result, err = list(tx, BucketParties, func(p models.Party) bool { return p.BusinessID == businessID })
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *Store) UpdateParty(ctx context.Context, party models.Party) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var current models.Party
		if err := get(tx, BucketParties, party.ID, &current, models.ErrPartyNotFound); err != nil {
			return err
		}
		current.Name = party.Name
		current.Phone = party.Phone
		current.Role = party.Role
		current.Address = party.Address
		return put(tx, BucketParties, current.ID, current)
	})
}

func (s *Store) DeleteParty(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deletePartyCascade(tx, id)
	})
}

// Ledger entries

func (s *Store) GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return get(tx, BucketEntries, id, &e, models.ErrEntryNotFound)
	})
	return e, err
}

func (s *Store) ListEntriesForParty(ctx context.Context, partyID int64) ([]models.LedgerEntry, error) {
	var result []models.LedgerEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		result, err = list(tx, BucketEntries, func(e models.LedgerEntry) bool { return e.PartyID == partyID })
		return err
	})
	if err != nil {
		return nil, err
	}
	sortEntries(result)
	return result, nil
}

// Cash

func (s *Store) InsertCashEntry(ctx context.Context, entry models.CashEntry) (int64, error) {
	var id int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		var owner models.Business
		if err := get(tx, BucketBusinesses, entry.BusinessID, &owner, models.ErrBusinessNotFound); err != nil {
			return err
		}
		var err error
		id, err = insert(tx, BucketCash, &entry, func(c *models.CashEntry, id int64) { c.ID = id })
		return err
	})
	return id, err
}

func (s *Store) GetCashEntry(ctx context.Context, id int64) (models.CashEntry, error) {
	var c models.CashEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return get(tx, BucketCash, id, &c, models.ErrCashEntryNotFound)
	})
	return c, err
}

func (s *Store) ListCashEntriesForBusiness(ctx context.Context, businessID int64) ([]models.CashEntry, error) {
	var result []models.CashEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		result, err = list(tx, BucketCash, func(c models.CashEntry) bool { return c.BusinessID == businessID })
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) DeleteCashEntry(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return remove(tx, BucketCash, id, models.ErrCashEntryNotFound)
	})
}

// Preferences

func (s *Store) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketPreferences)
		if err != nil {
			return err
		}
		if data := b.Get([]byte(key)); data != nil {
			value, found = string(data), true
		}
		return nil
	})
	return value, found, err
}

func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketPreferences)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// RunInTx runs fn inside one bbolt read-write transaction, which bbolt
// rolls back when fn returns an error.
func (s *Store) RunInTx(ctx context.Context, fn func(tx interfaces.LedgerTx) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

type boltTx struct {
	tx *bolt.Tx
}

func (t *boltTx) GetParty(ctx context.Context, id int64) (models.Party, error) {
	var p models.Party
	err := get(t.tx, BucketParties, id, &p, models.ErrPartyNotFound)
	return p, err
}

func (t *boltTx) GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := get(t.tx, BucketEntries, id, &e, models.ErrEntryNotFound)
	return e, err
}

func (t *boltTx) InsertEntry(ctx context.Context, entry models.LedgerEntry) (int64, error) {
	if _, err := t.GetParty(ctx, entry.PartyID); err != nil {
		return 0, err
	}
	return insert(t.tx, BucketEntries, &entry, func(e *models.LedgerEntry, id int64) { e.ID = id })
}

func (t *boltTx) UpdateEntry(ctx context.Context, entry models.LedgerEntry) error {
	if _, err := t.GetEntry(ctx, entry.ID); err != nil {
		return err
	}
	return put(t.tx, BucketEntries, entry.ID, entry)
}

func (t *boltTx) DeleteEntry(ctx context.Context, id int64) error {
	return remove(t.tx, BucketEntries, id, models.ErrEntryNotFound)
}

func (t *boltTx) UpdatePartyBalance(ctx context.Context, partyID int64, balance int64) error {
	p, err := t.GetParty(ctx, partyID)
	if err != nil {
		return err
	}
	p.Balance = balance
	return put(t.tx, BucketParties, partyID, p)
}

var _ interfaces.LedgerStore = (*Store)(nil)
