package models

import "fmt"

// PartyRole tells customers and suppliers apart. It has no effect on how
// the balance is computed.
type PartyRole string

const (
	RoleCustomer PartyRole = "Customer"
	RoleSupplier PartyRole = "Supplier"
)

// ParsePartyRole maps an empty string to Customer.
func ParsePartyRole(s string) (PartyRole, error) {
	switch PartyRole(s) {
	case "", RoleCustomer:
		return RoleCustomer, nil
	case RoleSupplier:
		return RoleSupplier, nil
	default:
		return "", fmt.Errorf("%w: unknown party role %q", ErrInvalidInput, s)
	}
}

// Party is a customer or supplier tracked against a business.
//
// Balance is the money the business expects from the party: positive means
// the party owes the business, negative means the business owes the party.
// It is a cached sum of the party's ledger entries and is only written by
// the ledger engine.
type Party struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Role       PartyRole `json:"role"`
	Address    string    `json:"address"`
	Balance    int64     `json:"balance"`
}
