package splitpot

// test fixtures: accounts with readable ids.

func personal(id string) Account {
	return Account{ID: AccountID(id), Kind: Personal, Name: id}
}

func clearingAcct(id string, shares Shares) Account {
	return Account{ID: AccountID(id), Kind: Clearing, Name: id, ClearingShares: shares}
}

func balanceOf(t interface {
	Fatalf(format string, args ...any)
}, b *Balances, id string) AccountBalance {
	ab, ok := b.For(AccountID(id))
	if !ok {
		t.Fatalf("no balance for account %q", id)
	}
	return ab
}
