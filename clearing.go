package splitpot

import "slices"

// resolveClearing pushes every clearing account's raw balance onward to the
// accounts named in its share table, weighted by share, possibly transitively
// when a share table points at another clearing account.
//
// Clearing accounts are processed in topological order of the directed graph
// whose edge C -> T exists when C's share table names T: an account is only
// drained after everything feeding it has been drained. A Kahn-style
// traversal makes a cycle detectable instead of silently leaving balance
// stranded; a cycle is reported as CyclicClearingGraphError.
func resolveClearing(roster map[AccountID]Account, balances map[AccountID]*AccountBalance) error {
	clearing := make(map[AccountID]Shares)
	for id, a := range roster {
		if a.IsClearing() {
			clearing[id] = a.ClearingShares
		}
	}
	if len(clearing) == 0 {
		return nil
	}

	// In-degree counts only edges between clearing accounts; personal targets
	// never block the order.
	indegree := make(map[AccountID]int, len(clearing))
	for id := range clearing {
		indegree[id] = 0
	}
	for _, shares := range clearing {
		for target := range shares {
			if _, ok := clearing[target]; ok {
				indegree[target]++
			}
		}
	}

	// Seed with the clearing accounts nothing feeds into, sorted for a
	// deterministic traversal.
	queue := make([]AccountID, 0, len(clearing))
	for id, deg := range indegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	slices.Sort(queue)

	done := 0
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		done++

		b := balances[c]
		amount := b.Balance
		b.Balance = b.Balance.Sub(amount) // zero, keeping the currency

		shares := clearing[c]
		total := shares.Total()
		distribute := total.IsPositive() // zero total distributes nothing (defined no-op)

		for _, target := range sortedTargets(shares) {
			if distribute {
				delta := amount.Mul(shares[target]).Div(total)
				tb := balances[target]
				tb.Balance = tb.Balance.Add(delta)
				if delta.IsPositive() {
					tb.TotalPaid = tb.TotalPaid.Add(delta)
				} else {
					tb.TotalConsumed = tb.TotalConsumed.Add(delta.Abs())
				}
			}
			// The edge is consumed whether or not money moved along it.
			if _, ok := clearing[target]; ok {
				indegree[target]--
				if indegree[target] == 0 {
					queue = append(queue, target)
					slices.Sort(queue)
				}
			}
		}
	}

	if done < len(clearing) {
		stuck := make([]AccountID, 0, len(clearing)-done)
		for id, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		slices.Sort(stuck)
		return &CyclicClearingGraphError{Accounts: stuck}
	}
	return nil
}

// sortedTargets returns the share table's account ids in stable order.
func sortedTargets(s Shares) []AccountID {
	targets := make([]AccountID, 0, len(s))
	for id := range s {
		targets = append(targets, id)
	}
	slices.Sort(targets)
	return targets
}
