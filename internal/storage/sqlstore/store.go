// Package sqlstore implements interfaces.LedgerStore on top of database/sql.
// The postgres and sqlite packages supply the driver, the DDL and a Dialect;
// the queries here are shared and written with '?' placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// Dialect captures what differs between SQL engines.
type Dialect struct {
	Name string
	// Numbered placeholders ($1, $2, ...) instead of '?'.
	NumberedPlaceholders bool
	// Appended to the party read inside a transaction.
	LockClause string
}

// Store is a database/sql backed LedgerStore.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open database. The schema must already exist.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rebind rewrites '?' placeholders for dialects that number them.
func (s *Store) rebind(query string) string {
	if !s.dialect.NumberedPlaceholders {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// expectOne turns a zero-row update or delete into notFound.
func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// Business

func (s *Store) InsertBusiness(ctx context.Context, business models.Business) (int64, error) {
	const query = `INSERT INTO businesses (name, category) VALUES (?, ?) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(query), business.Name, string(business.Category)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert business: %w", err)
	}
	return id, nil
}

func (s *Store) GetBusiness(ctx context.Context, id int64) (models.Business, error) {
	const query = `SELECT id, name, category FROM businesses WHERE id = ?`

	var b models.Business
	err := s.db.QueryRowContext(ctx, s.rebind(query), id).Scan(&b.ID, &b.Name, &b.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, models.ErrBusinessNotFound
	}
	if err != nil {
		return models.Business{}, fmt.Errorf("failed to get business: %w", err)
	}
	return b, nil
}

func (s *Store) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	const query = `SELECT id, name, category FROM businesses ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		var b models.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Category); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (s *Store) UpdateBusiness(ctx context.Context, business models.Business) error {
	const query = `UPDATE businesses SET name = ?, category = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, s.rebind(query), business.Name, string(business.Category), business.ID)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	return expectOne(res, models.ErrBusinessNotFound)
}

func (s *Store) DeleteBusiness(ctx context.Context, id int64) error {
	const query = `DELETE FROM businesses WHERE id = ?`

	res, err := s.db.ExecContext(ctx, s.rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	return expectOne(res, models.ErrBusinessNotFound)
}

// Party

const partyColumns = `id, business_id, name, phone, role, address, balance`

func scanParty(row interface{ Scan(...any) error }) (models.Party, error) {
	var p models.Party
	err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Phone, &p.Role, &p.Address, &p.Balance)
	return p, err
}

func (s *Store) InsertParty(ctx context.Context, party models.Party) (int64, error) {
	if _, err := s.GetBusiness(ctx, party.BusinessID); err != nil {
		return 0, err
	}

	const query = `INSERT INTO parties (business_id, name, phone, role, address, balance)
	VALUES (?, ?, ?, ?, ?, 0) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(query),
		party.BusinessID, party.Name, party.Phone, string(party.Role), party.Address,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert party: %w", err)
	}
	return id, nil
}

func (s *Store) getParty(ctx context.Context, q querier, id int64, lock bool) (models.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = ?`
	if lock {
		query += s.dialect.LockClause
	}

	p, err := scanParty(q.QueryRowContext(ctx, s.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Party{}, models.ErrPartyNotFound
	}
	if err != nil {
		return models.Party{}, fmt.Errorf("failed to get party: %w", err)
	}
	return p, nil
}

func (s *Store) GetParty(ctx context.Context, id int64) (models.Party, error) {
	return s.getParty(ctx, s.db, id, false)
}

func (s *Store) ListPartiesForBusiness(ctx context.Context, businessID int64) ([]models.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE business_id = ? ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []models.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parties, nil
}

func (s *Store) UpdateParty(ctx context.Context, party models.Party) error {
	const query = `UPDATE parties SET name = ?, phone = ?, role = ?, address = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, s.rebind(query),
		party.Name, party.Phone, string(party.Role), party.Address, party.ID)
	if err != nil {
		return fmt.Errorf("failed to update party: %w", err)
	}
	return expectOne(res, models.ErrPartyNotFound)
}

func (s *Store) DeleteParty(ctx context.Context, id int64) error {
	const query = `DELETE FROM parties WHERE id = ?`

	res, err := s.db.ExecContext(ctx, s.rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	return expectOne(res, models.ErrPartyNotFound)
}

// Ledger entries

const entryColumns = `id, party_id, type, amount, running_balance, note, created_at`

func scanEntry(row interface{ Scan(...any) error }) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := row.Scan(&e.ID, &e.PartyID, &e.Type, &e.Amount, &e.RunningBalance, &e.Note, &e.CreatedAt)
	return e, err
}

func (s *Store) getEntry(ctx context.Context, q querier, id int64) (models.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = ?`

	e, err := scanEntry(q.QueryRowContext(ctx, s.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerEntry{}, models.ErrEntryNotFound
	}
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return e, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error) {
	return s.getEntry(ctx, s.db, id)
}

func (s *Store) ListEntriesForParty(ctx context.Context, partyID int64) ([]models.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries
	WHERE party_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Cash

const cashColumns = `id, business_id, amount, type, category, note, created_at`

func scanCash(row interface{ Scan(...any) error }) (models.CashEntry, error) {
	var c models.CashEntry
	err := row.Scan(&c.ID, &c.BusinessID, &c.Amount, &c.Type, &c.Category, &c.Note, &c.CreatedAt)
	return c, err
}

func (s *Store) InsertCashEntry(ctx context.Context, entry models.CashEntry) (int64, error) {
	if _, err := s.GetBusiness(ctx, entry.BusinessID); err != nil {
		return 0, err
	}

	const query = `INSERT INTO cash_entries (business_id, amount, type, category, note, created_at)
	VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(query),
		entry.BusinessID, entry.Amount, string(entry.Type), entry.Category, entry.Note, entry.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cash entry: %w", err)
	}
	return id, nil
}

func (s *Store) GetCashEntry(ctx context.Context, id int64) (models.CashEntry, error) {
	query := `SELECT ` + cashColumns + ` FROM cash_entries WHERE id = ?`

	c, err := scanCash(s.db.QueryRowContext(ctx, s.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CashEntry{}, models.ErrCashEntryNotFound
	}
	if err != nil {
		return models.CashEntry{}, fmt.Errorf("failed to get cash entry: %w", err)
	}
	return c, nil
}

func (s *Store) ListCashEntriesForBusiness(ctx context.Context, businessID int64) ([]models.CashEntry, error) {
	query := `SELECT ` + cashColumns + ` FROM cash_entries
	WHERE business_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CashEntry
	for rows.Next() {
		c, err := scanCash(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash entry: %w", err)
		}
		entries = append(entries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) DeleteCashEntry(ctx context.Context, id int64) error {
	const query = `DELETE FROM cash_entries WHERE id = ?`

	res, err := s.db.ExecContext(ctx, s.rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete cash entry: %w", err)
	}
	return expectOne(res, models.ErrCashEntryNotFound)
}

// Preferences

func (s *Store) GetPreference(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT pref_value FROM preferences WHERE pref_key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, s.rebind(query), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference: %w", err)
	}
	return value, true, nil
}

func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	const query = `INSERT INTO preferences (pref_key, pref_value) VALUES (?, ?)
	ON CONFLICT (pref_key) DO UPDATE SET pref_value = excluded.pref_value`

	if _, err := s.db.ExecContext(ctx, s.rebind(query), key, value); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// RunInTx executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back and the error is
// returned as is. Otherwise, the transaction is committed.
func (s *Store) RunInTx(ctx context.Context, fn func(tx interfaces.LedgerTx) error) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = dbTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&sqlTx{store: s, tx: dbTx}); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type sqlTx struct {
	store *Store
	tx    *sql.Tx
}

func (t *sqlTx) GetParty(ctx context.Context, id int64) (models.Party, error) {
	return t.store.getParty(ctx, t.tx, id, true)
}

func (t *sqlTx) GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error) {
	return t.store.getEntry(ctx, t.tx, id)
}

func (t *sqlTx) InsertEntry(ctx context.Context, entry models.LedgerEntry) (int64, error) {
	const query = `INSERT INTO ledger_entries (party_id, type, amount, running_balance, note, created_at)
	VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	var id int64
	err := t.tx.QueryRowContext(ctx, t.store.rebind(query),
		entry.PartyID, string(entry.Type), entry.Amount, entry.RunningBalance, entry.Note, entry.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return id, nil
}

func (t *sqlTx) UpdateEntry(ctx context.Context, entry models.LedgerEntry) error {
	const query = `UPDATE ledger_entries
	SET type = ?, amount = ?, running_balance = ?, note = ?, created_at = ?
	WHERE id = ?`

	res, err := t.tx.ExecContext(ctx, t.store.rebind(query),
		string(entry.Type), entry.Amount, entry.RunningBalance, entry.Note, entry.CreatedAt.UTC(), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	return expectOne(res, models.ErrEntryNotFound)
}

func (t *sqlTx) DeleteEntry(ctx context.Context, id int64) error {
	const query = `DELETE FROM ledger_entries WHERE id = ?`

	res, err := t.tx.ExecContext(ctx, t.store.rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return expectOne(res, models.ErrEntryNotFound)
}

func (t *sqlTx) UpdatePartyBalance(ctx context.Context, partyID int64, balance int64) error {
	const query = `UPDATE parties SET balance = ? WHERE id = ?`

	res, err := t.tx.ExecContext(ctx, t.store.rebind(query), balance, partyID)
	if err != nil {
		return fmt.Errorf("failed to update party balance: %w", err)
	}
	return expectOne(res, models.ErrPartyNotFound)
}

var _ interfaces.LedgerStore = (*Store)(nil)
