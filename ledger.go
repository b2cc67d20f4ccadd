package splitpot

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Ledger represents a group's roster of accounts and its list of transactions.
//
// In a Ledger transactions are always in chronological order. A Ledger is the
// frozen input snapshot handed to the balance resolution engine; the engine
// never mutates it.
type Ledger struct {
	name         string
	currency     string
	transactions []Transaction
	accounts     map[AccountID]Account // index accounts by id
}

// NewLedger creates an empty ledger whose amounts are in the given currency.
func NewLedger(currency string) *Ledger {
	return &Ledger{
		currency:     currency,
		transactions: make([]Transaction, 0),
		accounts:     make(map[AccountID]Account),
	}
}

// Currency returns the group's currency code.
func (l *Ledger) Currency() string { return l.currency }

// Name returns the group's name.
func (l *Ledger) Name() string { return l.name }

// Rename sets the group's name.
func (l *Ledger) Rename(name string) { l.name = name }

// Account returns the account declared with this id.
func (l *Ledger) Account(id AccountID) (Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

// AccountByName returns the first account with this name.
func (l *Ledger) AccountByName(name string) (Account, bool) {
	for a := range l.Accounts() {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}

// AddAccount declares an account in the ledger.
func (l *Ledger) AddAccount(accounts ...Account) error {
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, exists := l.accounts[a.ID]; exists {
			return fmt.Errorf("duplicate account id %s", a.ID)
		}
		l.accounts[a.ID] = a
	}
	return nil
}

// Accounts returns all declared accounts sorted by name, then by id for
// deterministic output.
func (l *Ledger) Accounts() iter.Seq[Account] {
	list := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return strings.Compare(list[i].Name, list[j].Name) < 0
		}
		return list[i].ID < list[j].ID
	})
	return func(yield func(Account) bool) {
		for _, a := range list {
			if !yield(a) {
				return
			}
		}
	}
}

// Append adds transactions to the ledger, keeping it chronologically sorted.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort() // Ensure the ledger remains sorted after appending
}

// stableSort keeps same-day transactions in insertion order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Transactions returns an iterator over the transactions matching the
// predicate, in chronological order. A nil predicate matches everything.
func (l *Ledger) Transactions(predicate func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if predicate != nil && !predicate(tx) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// ByAccount returns a predicate matching non-deleted transactions that touch
// the given account through any share table or line item, whatever the net
// monetary effect.
func ByAccount(id AccountID) func(Transaction) bool {
	return func(tx Transaction) bool {
		if tx.IsDeleted() {
			return false
		}
		return decompose(tx).touches(id)
	}
}

// Validate checks a transaction for correctness and applies quick fixes where
// applicable (e.g., minting a missing id). It returns the validated (and
// potentially modified) transaction or an error detailing the failure.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	switch v := tx.(type) {
	case Purchase:
		return v.Validate(l)
	case Transfer:
		return v.Validate(l)
	default:
		return tx, fmt.Errorf("unsupported transaction type for validation: %T", tx)
	}
}

// Balances runs one full balance resolution pass over the ledger snapshot.
func (l *Ledger) Balances() (*Balances, error) {
	accounts := make([]Account, 0, len(l.accounts))
	for a := range l.Accounts() {
		accounts = append(accounts, a)
	}
	return ResolveBalances(accounts, l.transactions)
}

// OldestTransactionDate returns the date of the oldest transaction.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the newest transaction.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}
