package splitpot

// positionSplit is the outcome of allocating one line item's price: the part
// billed to each consuming account, and the communal remainder that the
// caller folds back into the transaction's undifferentiated value.
type positionSplit struct {
	perAccount map[AccountID]Money
	remainder  Money
}

// splitPosition allocates a non-deleted line item's price across the accounts
// that consumed it, weighted by usage, plus the communal remainder weighted
// by the communist shares.
//
// When all weights sum to zero nothing is distributed and the price is not
// carried forward. This is the defined no-distribution policy, not an error.
func splitPosition(p Position) positionSplit {
	split := positionSplit{perAccount: make(map[AccountID]Money, len(p.Usages))}

	total := p.Usages.Total().Add(p.CommunistShares)
	if total.IsZero() {
		return split
	}

	unit := p.Price.Div(total)
	for id, w := range p.Usages {
		split.perAccount[id] = unit.Mul(w)
	}
	split.remainder = unit.Mul(p.CommunistShares)
	return split
}
