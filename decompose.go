package splitpot

// delta is one transaction's monetary contribution to every account it
// touches, before aggregation and before any clearing redistribution. An
// account absent from all three buckets is simply not affected by the
// transaction.
type delta struct {
	positions       map[AccountID]Money // billed via line items
	commonDebitors  map[AccountID]Money // billed via the undifferentiated remainder
	commonCreditors map[AccountID]Money // received as payer
}

// decompose turns one transaction into its per-account contributions.
//
// For a purchase, every non-deleted line item is split first; the value not
// already assigned to specific accounts (plus the communal remainders) is
// then distributed over the debitor shares, while the creditors are credited
// the full value: the payer is reimbursed fully regardless of how the cost is
// later split among consumers. A transfer is the degenerate case with no line
// items. Deleted transactions contribute nothing.
func decompose(tx Transaction) delta {
	d := delta{
		positions:       make(map[AccountID]Money),
		commonDebitors:  make(map[AccountID]Money),
		commonCreditors: make(map[AccountID]Money),
	}
	if tx.IsDeleted() {
		return d
	}

	var value Money
	var creditors, debitors Shares
	var positions []Position
	switch v := tx.(type) {
	case Purchase:
		value, creditors, debitors, positions = v.Value, v.Creditors, v.Debitors, v.Positions
	case Transfer:
		value, creditors, debitors = v.Value, v.Creditors, v.Debitors
	default:
		return d
	}

	var itemized, remainder Money
	for _, p := range positions {
		if p.Deleted {
			continue
		}
		itemized = itemized.Add(p.Price)
		split := splitPosition(p)
		for id, m := range split.perAccount {
			d.positions[id] = d.positions[id].Add(m)
		}
		remainder = remainder.Add(split.remainder)
	}

	// The portion of the value not already assigned via line items. For a
	// transfer this is the full value.
	remaining := value.Sub(itemized).Add(remainder)

	// Zero share totals distribute nothing (defined no-op, not an error).
	if total := debitors.Total(); total.IsPositive() {
		for id, w := range debitors {
			d.commonDebitors[id] = d.commonDebitors[id].Add(remaining.Mul(w).Div(total))
		}
	}
	if total := creditors.Total(); total.IsPositive() {
		for id, w := range creditors {
			d.commonCreditors[id] = d.commonCreditors[id].Add(value.Mul(w).Div(total))
		}
	}
	return d
}

// contribution returns the signed net effect of the transaction on one
// account: received as payer, minus billed via remainder, minus billed via
// line items.
func (d delta) contribution(id AccountID) Money {
	return d.commonCreditors[id].Sub(d.commonDebitors[id]).Sub(d.positions[id])
}

// touches reports whether the account appears in any bucket of the delta.
func (d delta) touches(id AccountID) bool {
	if _, ok := d.positions[id]; ok {
		return true
	}
	if _, ok := d.commonDebitors[id]; ok {
		return true
	}
	_, ok := d.commonCreditors[id]
	return ok
}
