package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/models"
	"github.com/sheikh-saqib/udharbook/internal/models/events"
)

// Ledger keeps every party balance equal to the signed sum of the party's
// entries. It is the only code that writes Party.Balance.
type Ledger struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher // optional
	log       zerolog.Logger
	now       func() time.Time

	muMap map[int64]*partyLock // parties with an operation running or waiting
	mapMu sync.Mutex           // protects muMap
}

type partyLock struct {
	mu   sync.Mutex
	refs int // holders and waiters; guarded by Ledger.mapMu
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPublisher sends an EntryRecorded event after each committed operation.
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithClock replaces time.Now for the default timestamp of new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(store interfaces.LedgerStore, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
		muMap: make(map[int64]*partyLock),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// lockParty serializes operations on one party. The returned func unlocks
// and drops the party's mutex once nobody else holds or waits for it.
func (l *Ledger) lockParty(partyID int64) (unlock func()) {
	l.mapMu.Lock()
	pl, exists := l.muMap[partyID]
	if !exists {
		pl = &partyLock{}
		l.muMap[partyID] = pl
	}
	pl.refs++
	l.mapMu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()

		l.mapMu.Lock()
		defer l.mapMu.Unlock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.muMap, partyID)
		}
	}
}

// AddEntry records a GOT or GAVE entry for a party and moves the balance by
// its effect. A zero at means now.
func (l *Ledger) AddEntry(ctx context.Context, partyID int64, entryType models.EntryType, amount int64, note string, at time.Time) (models.LedgerEntry, error) {
	if !models.ValidAmount(amount) {
		return models.LedgerEntry{}, models.ErrInvalidAmount
	}
	if _, err := models.ParseEntryType(string(entryType)); err != nil {
		return models.LedgerEntry{}, err
	}
	if at.IsZero() {
		at = l.now()
	}

	unlock := l.lockParty(partyID)
	defer unlock()

	entry := models.LedgerEntry{
		PartyID:   partyID,
		Type:      entryType,
		Amount:    amount,
		Note:      note,
		CreatedAt: at,
	}
	err := l.store.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		party, err := tx.GetParty(ctx, partyID)
		if err != nil {
			return err
		}

		entry.RunningBalance, err = moveBalance(party.Balance, entry.Effect())
		if err != nil {
			return err
		}
		id, err := tx.InsertEntry(ctx, entry)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		entry.ID = id

		if err := tx.UpdatePartyBalance(ctx, partyID, entry.RunningBalance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.LedgerEntry{}, err
	}

	l.log.Debug().
		Int64("party_id", partyID).
		Int64("entry_id", entry.ID).
		Str("type", string(entry.Type)).
		Int64("amount", entry.Amount).
		Int64("balance", entry.RunningBalance).
		Msg("entry added")
	l.publish(ctx, events.EntryAdded, entry, entry.RunningBalance)
	return entry, nil
}

// DeleteEntry removes an entry and reverses exactly its effect. It returns
// the party with its new balance.
func (l *Ledger) DeleteEntry(ctx context.Context, partyID, entryID int64) (models.Party, error) {
	unlock := l.lockParty(partyID)
	defer unlock()

	var party models.Party
	var removed models.LedgerEntry
	err := l.store.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		var err error
		party, err = tx.GetParty(ctx, partyID)
		if err != nil {
			return err
		}
		removed, err = entryOf(ctx, tx, partyID, entryID)
		if err != nil {
			return err
		}

		if err := tx.DeleteEntry(ctx, entryID); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		party.Balance, err = moveBalance(party.Balance, -removed.Effect())
		if err != nil {
			return err
		}
		if err := tx.UpdatePartyBalance(ctx, partyID, party.Balance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Party{}, err
	}

	l.log.Debug().
		Int64("party_id", partyID).
		Int64("entry_id", entryID).
		Int64("balance", party.Balance).
		Msg("entry deleted")
	l.publish(ctx, events.EntryDeleted, removed, party.Balance)
	return party, nil
}

// EntryChange holds the new values of an edited entry. A zero At keeps the
// entry's timestamp.
type EntryChange struct {
	Type   models.EntryType
	Amount int64
	Note   string
	At     time.Time
}

// EditEntry replaces an entry's type, amount, note and timestamp. The
// balance moves by the difference between the new and old effects, and the
// edited entry's running balance becomes the party's new balance. Running
// balances of other entries are left as they were written.
func (l *Ledger) EditEntry(ctx context.Context, partyID, entryID int64, change EntryChange) (models.LedgerEntry, error) {
	if !models.ValidAmount(change.Amount) {
		return models.LedgerEntry{}, models.ErrInvalidAmount
	}
	if _, err := models.ParseEntryType(string(change.Type)); err != nil {
		return models.LedgerEntry{}, err
	}

	unlock := l.lockParty(partyID)
	defer unlock()

	var edited models.LedgerEntry
	err := l.store.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		party, err := tx.GetParty(ctx, partyID)
		if err != nil {
			return err
		}
		old, err := entryOf(ctx, tx, partyID, entryID)
		if err != nil {
			return err
		}

		edited = old
		edited.Type = change.Type
		edited.Amount = change.Amount
		edited.Note = change.Note
		if !change.At.IsZero() {
			edited.CreatedAt = change.At
		}
		edited.RunningBalance, err = moveBalance(party.Balance, edited.Effect()-old.Effect())
		if err != nil {
			return err
		}

		if err := tx.UpdateEntry(ctx, edited); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		if err := tx.UpdatePartyBalance(ctx, partyID, edited.RunningBalance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.LedgerEntry{}, err
	}

	l.log.Debug().
		Int64("party_id", partyID).
		Int64("entry_id", entryID).
		Int64("balance", edited.RunningBalance).
		Msg("entry edited")
	l.publish(ctx, events.EntryEdited, edited, edited.RunningBalance)
	return edited, nil
}

// moveBalance applies delta to balance, refusing results that overflow.
func moveBalance(balance, delta int64) (int64, error) {
	sum, ok := models.AddBalance(balance, delta)
	if !ok {
		return 0, fmt.Errorf("%w: balance %d cannot move by %d", models.ErrInvalidAmount, balance, delta)
	}
	return sum, nil
}

// entryOf loads an entry and checks that it belongs to the party.
func entryOf(ctx context.Context, tx interfaces.LedgerTx, partyID, entryID int64) (models.LedgerEntry, error) {
	entry, err := tx.GetEntry(ctx, entryID)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if entry.PartyID != partyID {
		return models.LedgerEntry{}, models.ErrEntryNotFound
	}
	return entry, nil
}

func (l *Ledger) publish(ctx context.Context, action events.EntryAction, entry models.LedgerEntry, balance int64) {
	if l.publisher == nil {
		return
	}

	event := events.EntryRecorded{
		EventID:    uuid.New().String(),
		Action:     action,
		PartyID:    entry.PartyID,
		EntryID:    entry.ID,
		Type:       entry.Type,
		Amount:     entry.Amount,
		Balance:    balance,
		OccurredAt: l.now().UTC(),
	}
	if err := l.publisher.Publish(ctx, fmt.Sprint(entry.PartyID), event); err != nil {
		l.log.Warn().Err(err).
			Str("event_id", event.EventID).
			Int64("party_id", entry.PartyID).
			Msg("failed to publish entry event")
	}
}
