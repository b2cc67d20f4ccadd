package splitpot

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying ledger line commands.
type CommandType string

// Command types used for identifying ledger lines.
const (
	CmdAccount  CommandType = "account"
	CmdPurchase CommandType = "purchase"
	CmdTransfer CommandType = "transfer"
)

// TransactionID uniquely identifies a transaction within a group.
type TransactionID string

// NewTransactionID mints a fresh transaction id.
func NewTransactionID() TransactionID { return TransactionID(uuid.NewString()) }

// Transaction defines the common interface for all types of financial
// transactions that can be recorded in the ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "purchase").
	When() Date        // When returns the billing date of the transaction.
	ID() TransactionID
	IsDeleted() bool
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

type baseTx struct {
	Command     CommandType   `json:"command"`
	TxID        TransactionID `json:"id"`
	Date        Date          `json:"date"` // Date is the day the transaction was billed.
	Description string        `json:"description,omitempty"`
	Deleted     bool          `json:"deleted,omitempty"`
}

// What returns the command name for the transaction.
func (t baseTx) What() CommandType { return t.Command }

// When returns the billing date of the transaction.
func (t baseTx) When() Date { return t.Date }

// ID returns the stable id of the transaction.
func (t baseTx) ID() TransactionID { return t.TxID }

// IsDeleted reports whether the transaction is marked deleted. Deleted
// transactions are kept in the ledger file but excluded from every
// computation.
func (t baseTx) IsDeleted() bool { return t.Deleted }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("id", t.TxID)
	w.Append("date", t.Date)
	w.Optional("description", t.Description)
	if t.Deleted {
		w.Append("deleted", true)
	}
	return w.MarshalJSON()
}

// Validate checks the base fields. It sets the date to today if it's zero and
// mints an id if missing. It's meant to be embedded in other transaction
// validation methods.
func (t *baseTx) Validate() {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if t.TxID == "" {
		t.TxID = NewTransactionID()
	}
}

// sharedTx is a component common to purchase and transfer transactions: a
// value plus the share tables that decide who paid and who owes the
// undifferentiated part of that value.
type sharedTx struct {
	baseTx
	Value     Money
	Creditors Shares // Creditors maps payer accounts to their weights.
	Debitors  Shares // Debitors maps owing accounts to their weights.
}

// Validate checks the shared fields against the ledger roster.
func (t *sharedTx) Validate(ledger *Ledger) error {
	t.baseTx.Validate()

	if !t.Value.IsPositive() {
		return fmt.Errorf("%s transaction value must be positive, got %s", t.Command, t.Value)
	}
	if c := ledger.Currency(); c != "" && t.Value.Currency() != "" && t.Value.Currency() != c {
		return fmt.Errorf("%s transaction currency %s does not match group currency %s", t.Command, t.Value.Currency(), c)
	}
	if err := t.Creditors.validate("creditor shares"); err != nil {
		return err
	}
	if err := t.Debitors.validate("debitor shares"); err != nil {
		return err
	}
	for id := range t.Creditors {
		if _, ok := ledger.Account(id); !ok {
			return &UnknownAccountReferenceError{Account: id, Where: fmt.Sprintf("creditor shares of transaction %s", t.TxID)}
		}
	}
	for id := range t.Debitors {
		if _, ok := ledger.Account(id); !ok {
			return &UnknownAccountReferenceError{Account: id, Where: fmt.Sprintf("debitor shares of transaction %s", t.TxID)}
		}
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for sharedTx.
func (t sharedTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.EmbedFrom(t.Value)
	w.Append("creditor_shares", t.Creditors)
	w.Append("debitor_shares", t.Debitors)
	return w.MarshalJSON()
}

// sharedCmd is a specialized struct to decode the shared transaction fields,
// reading the value from its two persisted fields.
type sharedCmd struct {
	baseTx
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Creditors Shares          `json:"creditor_shares"`
	Debitors  Shares          `json:"debitor_shares"`
}

func (c sharedCmd) shared() sharedTx {
	return sharedTx{
		baseTx:    c.baseTx,
		Value:     M(c.Amount, c.Currency),
		Creditors: c.Creditors,
		Debitors:  c.Debitors,
	}
}

// Transfer represents a direct payment from the creditor accounts to the
// debitor accounts, with no line items.
type Transfer struct {
	sharedTx
}

// NewTransfer creates a new Transfer transaction.
func NewTransfer(day Date, description string, value Money, creditors, debitors Shares) Transfer {
	return Transfer{sharedTx{
		baseTx:    baseTx{Command: CmdTransfer, TxID: NewTransactionID(), Date: day, Description: description},
		Value:     value,
		Creditors: creditors.Clone(),
		Debitors:  debitors.Clone(),
	}}
}

func (t Transfer) Equal(other Transaction) bool {
	o, ok := other.(Transfer)
	return ok && t.baseTx == o.baseTx && t.Value.Equal(o.Value) &&
		sharesEqual(t.Creditors, o.Creditors) && sharesEqual(t.Debitors, o.Debitors)
}

// Validate checks the Transfer transaction's fields.
func (t Transfer) Validate(ledger *Ledger) (Transaction, error) {
	err := t.sharedTx.Validate(ledger)
	return t, err
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transfer.
func (t *Transfer) UnmarshalJSON(data []byte) error {
	var temp sharedCmd
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.sharedTx = temp.shared()
	return nil
}

// Purchase represents a purchase whose value is split among the group, with
// optional line items assigning parts of the cost to specific accounts.
type Purchase struct {
	sharedTx
	Positions []Position
}

// NewPurchase creates a new Purchase transaction.
func NewPurchase(day Date, description string, value Money, creditors, debitors Shares, positions ...Position) Purchase {
	return Purchase{
		sharedTx: sharedTx{
			baseTx:    baseTx{Command: CmdPurchase, TxID: NewTransactionID(), Date: day, Description: description},
			Value:     value,
			Creditors: creditors.Clone(),
			Debitors:  debitors.Clone(),
		},
		Positions: positions,
	}
}

func (t Purchase) Equal(other Transaction) bool {
	o, ok := other.(Purchase)
	if !ok || t.baseTx != o.baseTx || !t.Value.Equal(o.Value) ||
		!sharesEqual(t.Creditors, o.Creditors) || !sharesEqual(t.Debitors, o.Debitors) {
		return false
	}
	if len(t.Positions) != len(o.Positions) {
		return false
	}
	for i := range t.Positions {
		if !t.Positions[i].Equal(o.Positions[i]) {
			return false
		}
	}
	return true
}

// Validate checks the Purchase transaction's fields, including every line item.
func (t Purchase) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.sharedTx.Validate(ledger); err != nil {
		return t, err
	}
	for i, p := range t.Positions {
		if err := p.Validate(ledger, t.TxID); err != nil {
			return t, err
		}
		if p.PosID == "" {
			p.PosID = PositionID(uuid.NewString())
			t.Positions[i] = p
		}
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Purchase.
func (t Purchase) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.sharedTx)
	if len(t.Positions) > 0 {
		w.Append("positions", t.Positions)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Purchase.
func (t *Purchase) UnmarshalJSON(data []byte) error {
	var temp struct {
		sharedCmd
		Positions []Position `json:"positions"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.sharedTx = temp.shared()
	t.Positions = temp.Positions
	return nil
}

// PositionID uniquely identifies a line item within a purchase.
type PositionID string

// Position represents one priced line item of a purchase. Its price is split
// among the accounts that consumed it, weighted by usage, plus a shared
// ("communist") remainder folded back into the purchase's undifferentiated
// value.
type Position struct {
	PosID           PositionID
	Name            string
	Price           Money // in the purchase's currency
	Usages          Shares
	CommunistShares Weight
	Deleted         bool
}

func (p Position) Equal(o Position) bool {
	return p.PosID == o.PosID && p.Name == o.Name && p.Price.Equal(o.Price) &&
		sharesEqual(p.Usages, o.Usages) && p.CommunistShares.Equal(o.CommunistShares) &&
		p.Deleted == o.Deleted
}

// Validate checks the line item against the ledger roster.
func (p Position) Validate(ledger *Ledger, tx TransactionID) error {
	if err := p.Usages.validate(fmt.Sprintf("usages of position %q", p.Name)); err != nil {
		return err
	}
	if p.CommunistShares.IsNegative() {
		return fmt.Errorf("position %q: negative communist shares %s", p.Name, p.CommunistShares)
	}
	for id := range p.Usages {
		if _, ok := ledger.Account(id); !ok {
			return &UnknownAccountReferenceError{Account: id, Where: fmt.Sprintf("usages of position %q in transaction %s", p.Name, tx)}
		}
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.PosID)
	w.Optional("name", p.Name)
	w.Append("price", p.Price.value)
	w.Append("usages", p.Usages)
	w.Append("communist_shares", p.CommunistShares)
	if p.Deleted {
		w.Append("deleted", true)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Position. The
// price is persisted as a bare number in the purchase's currency.
func (p *Position) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID              PositionID      `json:"id"`
		Name            string          `json:"name"`
		Price           decimal.Decimal `json:"price"`
		Usages          Shares          `json:"usages"`
		CommunistShares Weight          `json:"communist_shares"`
		Deleted         bool            `json:"deleted"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	p.PosID = temp.ID
	p.Name = temp.Name
	p.Price = M(temp.Price, "")
	p.Usages = temp.Usages
	p.CommunistShares = temp.CommunistShares
	p.Deleted = temp.Deleted
	return nil
}

func sharesEqual(a, b Shares) bool {
	return maps.EqualFunc(a, b, Weight.Equal)
}
