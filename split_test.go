package splitpot

import "testing"

func TestSplitPosition(t *testing.T) {
	a, b := AccountID("alice"), AccountID("bob")

	testCases := []struct {
		name          string
		position      Position
		wantPerAcct   map[AccountID]Money
		wantRemainder Money
	}{
		{
			name: "usages and communist shares",
			position: Position{
				Price:           M(40, "EUR"),
				Usages:          Shares{a: W(1), b: W(1)},
				CommunistShares: W(2),
			},
			wantPerAcct:   map[AccountID]Money{a: M(10, "EUR"), b: M(10, "EUR")},
			wantRemainder: M(20, "EUR"),
		},
		{
			name: "usages only",
			position: Position{
				Price:  M(30, "EUR"),
				Usages: Shares{a: W(2), b: W(1)},
			},
			wantPerAcct:   map[AccountID]Money{a: M(20, "EUR"), b: M(10, "EUR")},
			wantRemainder: M(0, "EUR"),
		},
		{
			name: "communist shares only",
			position: Position{
				Price:           M(15, "EUR"),
				CommunistShares: W(3),
			},
			wantPerAcct:   map[AccountID]Money{},
			wantRemainder: M(15, "EUR"),
		},
		{
			name: "zero total shares distributes nothing",
			position: Position{
				Price:  M(40, "EUR"),
				Usages: Shares{a: W(0)},
			},
			wantPerAcct:   map[AccountID]Money{},
			wantRemainder: Money{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			split := splitPosition(tc.position)
			if !split.remainder.Equal(tc.wantRemainder) {
				t.Errorf("remainder = %s, want %s", split.remainder, tc.wantRemainder)
			}
			for id, want := range tc.wantPerAcct {
				if got := split.perAccount[id]; !got.Equal(want) {
					t.Errorf("perAccount[%s] = %s, want %s", id, got, want)
				}
			}
			for id, got := range split.perAccount {
				if _, expected := tc.wantPerAcct[id]; !expected && !got.IsZero() {
					t.Errorf("unexpected allocation %s for account %s", got, id)
				}
			}
		})
	}
}
