package events

import (
	"time"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// EntryAction names the ledger operation that produced an event.
type EntryAction string

const (
	EntryAdded   EntryAction = "added"
	EntryEdited  EntryAction = "edited"
	EntryDeleted EntryAction = "deleted"
)

// EntryRecorded is published after a ledger operation has been committed.
type EntryRecorded struct {
	EventID    string           `json:"event_id"`
	Action     EntryAction      `json:"action"`
	PartyID    int64            `json:"party_id"`
	EntryID    int64            `json:"entry_id"`
	Type       models.EntryType `json:"type"`
	Amount     int64            `json:"amount"`
	Balance    int64            `json:"balance"` // party balance after the operation
	OccurredAt time.Time        `json:"occurred_at"`
}
