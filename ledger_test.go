package splitpot

import (
	"testing"
	"time"
)

func TestLedger_ByAccount(t *testing.T) {
	jan := func(d int) Date { return NewDate(2025, time.January, d) }
	ledger := NewLedger("EUR")
	if err := ledger.AddAccount(personal("alice"), personal("bob"), personal("carol")); err != nil {
		t.Fatalf("AddAccount() error = %v", err)
	}

	deleted := NewTransfer(jan(7), "", M(5, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)})
	deleted.Deleted = true
	ledger.Append(
		NewTransfer(jan(3), "", M(30, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)}),
		NewPurchase(jan(5), "", M(20, "EUR"), Shares{"bob": W(1)}, Shares{"bob": W(1)},
			Position{Price: M(8, "EUR"), Usages: Shares{"carol": W(1)}}),
		deleted,
	)

	counts := map[AccountID]int{"alice": 1, "bob": 2, "carol": 1, "nobody": 0}
	for id, want := range counts {
		var got int
		for range ledger.Transactions(ByAccount(id)) {
			got++
		}
		if got != want {
			t.Errorf("ByAccount(%s) matched %d transactions, want %d", id, got, want)
		}
	}
}

func TestLedger_TransactionDates(t *testing.T) {
	jan := func(d int) Date { return NewDate(2025, time.January, d) }
	ledger := NewLedger("EUR")

	if got := ledger.OldestTransactionDate(); !got.IsZero() {
		t.Errorf("oldest of empty ledger = %s, want zero", got)
	}
	if got := ledger.NewestTransactionDate(); !got.IsZero() {
		t.Errorf("newest of empty ledger = %s, want zero", got)
	}

	// Appended out of order, the ledger keeps itself sorted.
	ledger.Append(
		NewTransfer(jan(9), "", M(1, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)}),
		NewTransfer(jan(3), "", M(1, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)}),
	)
	if got := ledger.OldestTransactionDate(); got != jan(3) {
		t.Errorf("oldest = %s, want %s", got, jan(3))
	}
	if got := ledger.NewestTransactionDate(); got != jan(9) {
		t.Errorf("newest = %s, want %s", got, jan(9))
	}
}

func TestLedger_BalanceHistory(t *testing.T) {
	jan := func(d int) Date { return NewDate(2025, time.January, d) }
	ledger := NewLedger("EUR")
	if err := ledger.AddAccount(personal("alice"), personal("bob")); err != nil {
		t.Fatalf("AddAccount() error = %v", err)
	}
	ledger.Append(
		NewTransfer(jan(3), "", M(30, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)}),
		NewTransfer(jan(5), "", M(10, "EUR"), Shares{"bob": W(1)}, Shares{"alice": W(1)}),
	)

	want := []Money{M(-30, "EUR"), M(-20, "EUR")}
	var i int
	for _, balance := range ledger.BalanceHistory("bob") {
		if i >= len(want) {
			t.Fatalf("too many history points")
		}
		if !balance.Equal(want[i]) {
			t.Errorf("point %d = %s, want %s", i, balance, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("got %d history points, want %d", i, len(want))
	}
}
