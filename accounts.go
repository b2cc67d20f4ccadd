package splitpot

import (
	"fmt"

	"github.com/google/uuid"
)

// AccountID uniquely and stably identifies an account within a group.
// Locally minted ids are uuids; imported groups keep their server-side ids
// verbatim, so no particular format is assumed.
type AccountID string

// NewAccountID mints a fresh account id.
func NewAccountID() AccountID { return AccountID(uuid.NewString()) }

// AccountKind is a typed string discriminating personal from clearing accounts.
type AccountKind string

const (
	// Personal is a real participant that can end up owing or being owed money.
	Personal AccountKind = "personal"
	// Clearing is a virtual pooling account whose balance is always
	// redistributed to the accounts in its share table.
	Clearing AccountKind = "clearing"
)

// Shares is a weighted mapping from account id to a non-negative weight.
//
// It is used for creditor and debitor shares, for position usages, and for
// clearing share tables.
type Shares map[AccountID]Weight

// Total returns the sum of all weights.
func (s Shares) Total() Weight {
	var total Weight
	for _, w := range s {
		total = total.Add(w)
	}
	return total
}

// Clone returns an independent copy of the share table.
func (s Shares) Clone() Shares {
	if s == nil {
		return nil
	}
	c := make(Shares, len(s))
	for id, w := range s {
		c[id] = w
	}
	return c
}

// validate rejects negative weights. 'where' names the share table in errors.
func (s Shares) validate(where string) error {
	for id, w := range s {
		if w.IsNegative() {
			return fmt.Errorf("%s: negative weight %s for account %s", where, w, id)
		}
	}
	return nil
}

// Account is a participant (personal) or a virtual pooling node (clearing) in
// a group's ledger. The engine treats it as an immutable snapshot for one
// resolution pass.
type Account struct {
	ID          AccountID
	Kind        AccountKind
	Name        string
	Description string
	// ClearingShares assigns, for clearing accounts only, the weights with
	// which the account's balance is pushed onward.
	ClearingShares Shares
}

// NewPersonalAccount creates a personal account with a fresh id.
func NewPersonalAccount(name, description string) Account {
	return Account{ID: NewAccountID(), Kind: Personal, Name: name, Description: description}
}

// NewClearingAccount creates a clearing account with a fresh id and the given
// share table.
func NewClearingAccount(name, description string, shares Shares) Account {
	return Account{ID: NewAccountID(), Kind: Clearing, Name: name, Description: description, ClearingShares: shares.Clone()}
}

// IsClearing reports whether the account is a virtual clearing account.
func (a Account) IsClearing() bool { return a.Kind == Clearing }

// Validate checks the account for structural correctness.
func (a Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("account %q has no id", a.Name)
	}
	if a.Name == "" {
		return fmt.Errorf("account %s has no name", a.ID)
	}
	switch a.Kind {
	case Personal:
		if len(a.ClearingShares) > 0 {
			return fmt.Errorf("personal account %q carries clearing shares", a.Name)
		}
	case Clearing:
		if err := a.ClearingShares.validate(fmt.Sprintf("clearing account %q", a.Name)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("account %q has unknown kind %q", a.Name, a.Kind)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Account.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", CmdAccount)
	w.Append("id", a.ID)
	w.Append("kind", a.Kind)
	w.Append("name", a.Name)
	w.Optional("description", a.Description)
	if a.IsClearing() {
		w.Append("clearing_shares", a.ClearingShares)
	}
	return w.MarshalJSON()
}
