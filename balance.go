package splitpot

import "fmt"

// AccountBalance is the engine output for one account.
type AccountBalance struct {
	Positions       Money // sum billed via line items
	CommonDebitors  Money // sum billed via the transactions' undifferentiated remainders
	CommonCreditors Money // sum received as payer
	Balance         Money // net amount owed (negative) or due (positive), after clearing redistribution
	TotalPaid       Money
	TotalConsumed   Money
}

// Balances is the read-facing result of one balance resolution pass. It is
// immutable once returned; recompute it whenever the input snapshot changes.
type Balances struct {
	byAccount map[AccountID]AccountBalance
}

// For returns the balance of the given account. Every account of the supplied
// roster has an entry, even when no transaction references it.
func (b *Balances) For(id AccountID) (AccountBalance, bool) {
	ab, ok := b.byAccount[id]
	return ab, ok
}

// Len returns the number of accounts in the result.
func (b *Balances) Len() int { return len(b.byAccount) }

// ResolveBalances computes a single consistent net balance per account from
// an immutable snapshot of the group's accounts and transactions.
//
// Deleted transactions are excluded. Every clearing account ends with a zero
// balance, its raw balance pushed through its share table in dependency
// order. The computation is pure: permuting the transaction list or calling
// twice on the same input yields the identical result.
//
// It fails with UnknownAccountReferenceError when a transaction or clearing
// share table references an account missing from the roster, and with
// CyclicClearingGraphError when the clearing accounts' share tables form a
// cycle. No partial result is ever returned.
func ResolveBalances(accounts []Account, transactions []Transaction) (*Balances, error) {
	roster := make(map[AccountID]Account, len(accounts))
	for _, a := range accounts {
		roster[a.ID] = a
	}
	if err := checkReferences(roster, transactions); err != nil {
		return nil, err
	}

	// Accounts not referenced by any transaction keep a zero balance rather
	// than being omitted: callers depend on the key existing.
	currency := snapshotCurrency(transactions)
	zero := M(0, currency)
	balances := make(map[AccountID]*AccountBalance, len(accounts))
	for id := range roster {
		balances[id] = &AccountBalance{
			Positions:       zero,
			CommonDebitors:  zero,
			CommonCreditors: zero,
			Balance:         zero,
			TotalPaid:       zero,
			TotalConsumed:   zero,
		}
	}

	// Commutative fold of the per-transaction deltas.
	for _, tx := range transactions {
		d := decompose(tx)
		for id, m := range d.positions {
			balances[id].Positions = balances[id].Positions.Add(m)
		}
		for id, m := range d.commonDebitors {
			balances[id].CommonDebitors = balances[id].CommonDebitors.Add(m)
		}
		for id, m := range d.commonCreditors {
			balances[id].CommonCreditors = balances[id].CommonCreditors.Add(m)
		}
	}
	for _, b := range balances {
		b.Balance = b.CommonCreditors.Sub(b.Positions).Sub(b.CommonDebitors)
		b.TotalPaid = b.CommonCreditors
		b.TotalConsumed = b.Positions.Add(b.CommonDebitors)
	}

	if err := resolveClearing(roster, balances); err != nil {
		return nil, err
	}

	result := &Balances{byAccount: make(map[AccountID]AccountBalance, len(balances))}
	for id, b := range balances {
		result.byAccount[id] = *b
	}
	return result, nil
}

// checkReferences verifies that every account referenced by a transaction
// share table, a line item usage, or a clearing share table is part of the
// roster.
func checkReferences(roster map[AccountID]Account, transactions []Transaction) error {
	check := func(s Shares, where string) error {
		for id := range s {
			if _, ok := roster[id]; !ok {
				return &UnknownAccountReferenceError{Account: id, Where: where}
			}
		}
		return nil
	}
	for _, a := range roster {
		if err := check(a.ClearingShares, fmt.Sprintf("clearing shares of account %q", a.Name)); err != nil {
			return err
		}
	}
	for _, tx := range transactions {
		if tx.IsDeleted() {
			continue
		}
		var creditors, debitors Shares
		var positions []Position
		switch v := tx.(type) {
		case Purchase:
			creditors, debitors, positions = v.Creditors, v.Debitors, v.Positions
		case Transfer:
			creditors, debitors = v.Creditors, v.Debitors
		default:
			return fmt.Errorf("unhandled transaction type: %T", tx)
		}
		if err := check(creditors, fmt.Sprintf("creditor shares of transaction %s", tx.ID())); err != nil {
			return err
		}
		if err := check(debitors, fmt.Sprintf("debitor shares of transaction %s", tx.ID())); err != nil {
			return err
		}
		for _, p := range positions {
			if p.Deleted {
				continue
			}
			if err := check(p.Usages, fmt.Sprintf("usages of position %q in transaction %s", p.Name, tx.ID())); err != nil {
				return err
			}
		}
	}
	return nil
}

// snapshotCurrency returns the currency shared by the snapshot's
// transactions, so that untouched accounts report zero in the right currency.
func snapshotCurrency(transactions []Transaction) string {
	for _, tx := range transactions {
		switch v := tx.(type) {
		case Purchase:
			if c := v.Value.Currency(); c != "" {
				return c
			}
		case Transfer:
			if c := v.Value.Currency(); c != "" {
				return c
			}
		}
	}
	return ""
}
