package splitpot

import "testing"

func TestMoney_SignedString(t *testing.T) {
	testCases := []struct {
		in   Money
		want string
	}{
		{in: M(50, "EUR"), want: "+€50.00"},
		{in: M(-50, "EUR"), want: "-€50.00"},
		{in: M(0, "EUR"), want: "-"},
		{in: M(12.34, "EUR"), want: "+€12.34"},
	}
	for _, tc := range testCases {
		if got := tc.in.SignedString(); got != tc.want {
			t.Errorf("SignedString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// The "" currency yields to any concrete currency in arithmetic, so
	// freshly decoded amounts can join typed ones.
	got := M(10, "").Add(M(5, "EUR"))
	if !got.Equal(M(15, "EUR")) {
		t.Errorf(`M(10, "").Add(M(5, EUR)) = %s, want %s`, got, M(15, "EUR"))
	}
	got = M(10, "EUR").Sub(M(4, ""))
	if !got.Equal(M(6, "EUR")) {
		t.Errorf(`M(10, EUR).Sub(M(4, "")) = %s, want %s`, got, M(6, "EUR"))
	}

	defer func() {
		if recover() == nil {
			t.Error("adding EUR to USD should panic")
		}
	}()
	M(1, "EUR").Add(M(1, "USD"))
}

func TestMoney_Comparisons(t *testing.T) {
	small, big := M(10, "EUR"), M(20, "EUR")
	if !small.LessThan(big) || small.LessThan(small) {
		t.Errorf("LessThan ordering is inconsistent for %s and %s", small, big)
	}
	if !big.GreaterThan(small) || big.GreaterThan(big) {
		t.Errorf("GreaterThan ordering is inconsistent for %s and %s", small, big)
	}
	if got := small.Neg(); !got.Equal(M(-10, "EUR")) {
		t.Errorf("Neg(%s) = %s, want %s", small, got, M(-10, "EUR"))
	}
	if got := small.Neg().Abs(); !got.Equal(small) {
		t.Errorf("Abs(Neg(%s)) = %s, want %s", small, got, small)
	}
}

func TestMoney_Round(t *testing.T) {
	if got := M(10, "EUR").Div(W(3)).Round(); !got.Equal(M(3.33, "EUR")) {
		t.Errorf("10/3 rounded = %s, want %s", got, M(3.33, "EUR"))
	}
}
