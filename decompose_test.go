package splitpot

import (
	"testing"
	"time"
)

func TestDecompose_PurchaseWithPositions(t *testing.T) {
	a, b := AccountID("alice"), AccountID("bob")
	day := NewDate(2025, time.March, 1)

	tx := NewPurchase(day, "groceries", M(100, "EUR"),
		Shares{a: W(1)},
		Shares{a: W(1), b: W(1)},
		Position{
			Name:            "beer",
			Price:           M(40, "EUR"),
			Usages:          Shares{a: W(1), b: W(1)},
			CommunistShares: W(2),
		},
	)

	d := decompose(tx)

	// Position split: total_shares=4, unit=10, each consumer gets 10, the
	// communal remainder of 20 goes back into the undifferentiated value.
	for id, want := range map[AccountID]Money{a: M(10, "EUR"), b: M(10, "EUR")} {
		if got := d.positions[id]; !got.Equal(want) {
			t.Errorf("positions[%s] = %s, want %s", id, got, want)
		}
	}
	// remaining_value = 100 - 40 + 20 = 80, split evenly over the debitors.
	for id, want := range map[AccountID]Money{a: M(40, "EUR"), b: M(40, "EUR")} {
		if got := d.commonDebitors[id]; !got.Equal(want) {
			t.Errorf("commonDebitors[%s] = %s, want %s", id, got, want)
		}
	}
	// The payer is credited the full value.
	if got := d.commonCreditors[a]; !got.Equal(M(100, "EUR")) {
		t.Errorf("commonCreditors[alice] = %s, want %s", got, M(100, "EUR"))
	}

	// Net effect: alice +50, bob -50.
	if got := d.contribution(a); !got.Equal(M(50, "EUR")) {
		t.Errorf("contribution(alice) = %s, want %s", got, M(50, "EUR"))
	}
	if got := d.contribution(b); !got.Equal(M(-50, "EUR")) {
		t.Errorf("contribution(bob) = %s, want %s", got, M(-50, "EUR"))
	}
}

func TestDecompose_Transfer(t *testing.T) {
	a, b := AccountID("alice"), AccountID("bob")
	day := NewDate(2025, time.March, 1)

	tx := NewTransfer(day, "settling up", M(30, "EUR"), Shares{a: W(1)}, Shares{b: W(1)})
	d := decompose(tx)

	if got := d.contribution(a); !got.Equal(M(30, "EUR")) {
		t.Errorf("contribution(alice) = %s, want %s", got, M(30, "EUR"))
	}
	if got := d.contribution(b); !got.Equal(M(-30, "EUR")) {
		t.Errorf("contribution(bob) = %s, want %s", got, M(-30, "EUR"))
	}
}

func TestDecompose_Edges(t *testing.T) {
	a, b := AccountID("alice"), AccountID("bob")
	day := NewDate(2025, time.March, 1)

	t.Run("zero debitor shares distribute nothing", func(t *testing.T) {
		tx := NewTransfer(day, "", M(30, "EUR"), Shares{a: W(1)}, Shares{})
		d := decompose(tx)
		if len(d.commonDebitors) != 0 {
			t.Errorf("commonDebitors = %v, want empty", d.commonDebitors)
		}
		if got := d.commonCreditors[a]; !got.Equal(M(30, "EUR")) {
			t.Errorf("commonCreditors[alice] = %s, want %s", got, M(30, "EUR"))
		}
	})

	t.Run("deleted transaction contributes nothing", func(t *testing.T) {
		tx := NewTransfer(day, "", M(30, "EUR"), Shares{a: W(1)}, Shares{b: W(1)})
		tx.Deleted = true
		d := decompose(tx)
		if len(d.commonCreditors) != 0 || len(d.commonDebitors) != 0 {
			t.Errorf("deleted transaction produced a delta: %v %v", d.commonCreditors, d.commonDebitors)
		}
	})

	t.Run("deleted positions are skipped", func(t *testing.T) {
		tx := NewPurchase(day, "", M(50, "EUR"),
			Shares{a: W(1)},
			Shares{b: W(1)},
			Position{Price: M(20, "EUR"), Usages: Shares{b: W(1)}, Deleted: true},
		)
		d := decompose(tx)
		// The deleted position neither bills bob nor reduces the remainder.
		if got := d.positions[b]; !got.IsZero() {
			t.Errorf("positions[bob] = %s, want zero", got)
		}
		if got := d.commonDebitors[b]; !got.Equal(M(50, "EUR")) {
			t.Errorf("commonDebitors[bob] = %s, want %s", got, M(50, "EUR"))
		}
	})
}
