package splitpot

import (
	"iter"
	"slices"
)

// BalanceHistory returns the cumulative balance of one account over time: one
// point per distinct billing day among the account's transactions, each
// accumulating that day's signed contributions into a running total. A day
// whose transactions net out to zero still yields its point.
//
// The sequence is lazy, finite, and restartable: ranging over it again
// recomputes the points from the same snapshot. Clearing redistribution is
// not part of the history; it reflects the account's direct participation in
// transactions only.
func BalanceHistory(id AccountID, transactions []Transaction) iter.Seq2[Date, Money] {
	// Work on a sorted copy, the caller's slice is never reordered.
	txs := slices.Clone(transactions)
	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.When().Compare(b.When()) })

	return func(yield func(Date, Money) bool) {
		var running Money
		var day Date
		var open bool // a point for 'day' is accumulating
		for _, tx := range txs {
			if tx.IsDeleted() {
				continue
			}
			d := decompose(tx)
			if !d.touches(id) {
				continue
			}
			if open && tx.When() != day {
				if !yield(day, running) {
					return
				}
			}
			day = tx.When()
			open = true
			running = running.Add(d.contribution(id))
		}
		if open {
			yield(day, running)
		}
	}
}

// BalanceHistory returns the balance history of one account over the whole
// ledger.
func (l *Ledger) BalanceHistory(id AccountID) iter.Seq2[Date, Money] {
	return BalanceHistory(id, slices.Collect(l.Transactions(ByAccount(id))))
}
