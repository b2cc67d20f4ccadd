package splitpot

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestResolveBalances_PureTransfer(t *testing.T) {
	day := NewDate(2025, time.January, 10)
	accounts := []Account{personal("alice"), personal("bob"), personal("carol")}
	txs := []Transaction{
		NewTransfer(day, "", M(30, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)}),
	}

	balances, err := ResolveBalances(accounts, txs)
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}

	if got := balanceOf(t, balances, "alice").Balance; !got.Equal(M(30, "EUR")) {
		t.Errorf("alice balance = %s, want %s", got, M(30, "EUR"))
	}
	if got := balanceOf(t, balances, "bob").Balance; !got.Equal(M(-30, "EUR")) {
		t.Errorf("bob balance = %s, want %s", got, M(-30, "EUR"))
	}
	// Untouched accounts keep a zero balance rather than being omitted.
	if got := balanceOf(t, balances, "carol").Balance; !got.IsZero() {
		t.Errorf("carol balance = %s, want zero", got)
	}
}

func TestResolveBalances_PurchaseWithPositions(t *testing.T) {
	day := NewDate(2025, time.January, 10)
	accounts := []Account{personal("alice"), personal("bob")}
	txs := []Transaction{
		NewPurchase(day, "groceries", M(100, "EUR"),
			Shares{"alice": W(1)},
			Shares{"alice": W(1), "bob": W(1)},
			Position{
				Name:            "beer",
				Price:           M(40, "EUR"),
				Usages:          Shares{"alice": W(1), "bob": W(1)},
				CommunistShares: W(2),
			},
		),
	}

	balances, err := ResolveBalances(accounts, txs)
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}

	alice := balanceOf(t, balances, "alice")
	if !alice.Balance.Equal(M(50, "EUR")) {
		t.Errorf("alice balance = %s, want %s", alice.Balance, M(50, "EUR"))
	}
	if !alice.TotalPaid.Equal(M(100, "EUR")) {
		t.Errorf("alice total paid = %s, want %s", alice.TotalPaid, M(100, "EUR"))
	}
	if !alice.TotalConsumed.Equal(M(50, "EUR")) {
		t.Errorf("alice total consumed = %s, want %s", alice.TotalConsumed, M(50, "EUR"))
	}

	bob := balanceOf(t, balances, "bob")
	if !bob.Balance.Equal(M(-50, "EUR")) {
		t.Errorf("bob balance = %s, want %s", bob.Balance, M(-50, "EUR"))
	}
	if !bob.Positions.Equal(M(10, "EUR")) {
		t.Errorf("bob positions = %s, want %s", bob.Positions, M(10, "EUR"))
	}
	if !bob.CommonDebitors.Equal(M(40, "EUR")) {
		t.Errorf("bob common debitors = %s, want %s", bob.CommonDebitors, M(40, "EUR"))
	}
}

// sampleLedger is a mixed set of transactions among three personal accounts.
func sampleTransactions() []Transaction {
	jan := func(d int) Date { return NewDate(2025, time.January, d) }
	return []Transaction{
		NewPurchase(jan(3), "dinner", M(90, "EUR"),
			Shares{"alice": W(1)},
			Shares{"alice": W(1), "bob": W(1), "carol": W(1)}),
		NewTransfer(jan(5), "rent share", M(250, "EUR"), Shares{"bob": W(1)}, Shares{"alice": W(1)}),
		NewPurchase(jan(8), "drinks", M(36, "EUR"),
			Shares{"carol": W(1)},
			Shares{"bob": W(2), "carol": W(1)},
			Position{Price: M(12, "EUR"), Usages: Shares{"bob": W(1)}},
		),
		NewTransfer(jan(8), "settling", M(10, "EUR"), Shares{"carol": W(1)}, Shares{"bob": W(1)}),
	}
}

func TestResolveBalances_Conservation(t *testing.T) {
	accounts := []Account{personal("alice"), personal("bob"), personal("carol")}
	balances, err := ResolveBalances(accounts, sampleTransactions())
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}

	sum := M(0, "EUR")
	for _, id := range []string{"alice", "bob", "carol"} {
		sum = sum.Add(balanceOf(t, balances, id).Balance)
	}
	if !sum.IsZero() {
		t.Errorf("sum of balances = %s, want zero", sum)
	}
}

func TestResolveBalances_OrderIndependence(t *testing.T) {
	accounts := []Account{personal("alice"), personal("bob"), personal("carol")}
	reference, err := ResolveBalances(accounts, sampleTransactions())
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		txs := sampleTransactions()
		rng.Shuffle(len(txs), func(a, b int) { txs[a], txs[b] = txs[b], txs[a] })
		permuted, err := ResolveBalances(accounts, txs)
		if err != nil {
			t.Fatalf("ResolveBalances() error = %v", err)
		}
		for _, id := range []string{"alice", "bob", "carol"} {
			want := balanceOf(t, reference, id).Balance
			if got := balanceOf(t, permuted, id).Balance; !got.Equal(want) {
				t.Errorf("permutation %d: %s balance = %s, want %s", i, id, got, want)
			}
		}
	}
}

func TestResolveBalances_Idempotence(t *testing.T) {
	accounts := []Account{personal("alice"), personal("bob"), personal("carol")}
	txs := sampleTransactions()

	first, err := ResolveBalances(accounts, txs)
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}
	second, err := ResolveBalances(accounts, txs)
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}

	for _, id := range []string{"alice", "bob", "carol"} {
		a, b := balanceOf(t, first, id), balanceOf(t, second, id)
		if a.Balance.String() != b.Balance.String() ||
			a.TotalPaid.String() != b.TotalPaid.String() ||
			a.TotalConsumed.String() != b.TotalConsumed.String() {
			t.Errorf("%s: second pass differs: %+v vs %+v", id, a, b)
		}
	}
}

func TestResolveBalances_UnknownAccount(t *testing.T) {
	day := NewDate(2025, time.January, 10)
	accounts := []Account{personal("alice")}

	testCases := []struct {
		name     string
		accounts []Account
		tx       Transaction
	}{
		{
			name:     "unknown debitor",
			accounts: accounts,
			tx:       NewTransfer(day, "", M(10, "EUR"), Shares{"alice": W(1)}, Shares{"ghost": W(1)}),
		},
		{
			name:     "unknown creditor",
			accounts: accounts,
			tx:       NewTransfer(day, "", M(10, "EUR"), Shares{"ghost": W(1)}, Shares{"alice": W(1)}),
		},
		{
			name:     "unknown position usage",
			accounts: accounts,
			tx: NewPurchase(day, "", M(10, "EUR"), Shares{"alice": W(1)}, Shares{"alice": W(1)},
				Position{Price: M(5, "EUR"), Usages: Shares{"ghost": W(1)}}),
		},
		{
			name:     "unknown clearing target",
			accounts: []Account{personal("alice"), clearingAcct("pool", Shares{"ghost": W(1)})},
			tx:       NewTransfer(day, "", M(10, "EUR"), Shares{"alice": W(1)}, Shares{"pool": W(1)}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveBalances(tc.accounts, []Transaction{tc.tx})
			var unknown *UnknownAccountReferenceError
			if !errors.As(err, &unknown) {
				t.Fatalf("ResolveBalances() error = %v, want UnknownAccountReferenceError", err)
			}
			if unknown.Account != "ghost" {
				t.Errorf("offending account = %s, want ghost", unknown.Account)
			}
		})
	}
}

func TestResolveBalances_DeletedTransactionsExcluded(t *testing.T) {
	day := NewDate(2025, time.January, 10)
	accounts := []Account{personal("alice"), personal("bob")}
	deleted := NewTransfer(day, "", M(99, "EUR"), Shares{"alice": W(1)}, Shares{"bob": W(1)})
	deleted.Deleted = true

	balances, err := ResolveBalances(accounts, []Transaction{deleted})
	if err != nil {
		t.Fatalf("ResolveBalances() error = %v", err)
	}
	if got := balanceOf(t, balances, "alice").Balance; !got.IsZero() {
		t.Errorf("alice balance = %s, want zero", got)
	}
}
