package splitpot

import (
	"fmt"
	"strings"
)

// UnknownAccountReferenceError reports a transaction or clearing share table
// referencing an account id absent from the supplied roster. It is a fatal
// input-validation failure: the engine refuses to produce a result.
type UnknownAccountReferenceError struct {
	Account AccountID
	Where   string
}

func (e *UnknownAccountReferenceError) Error() string {
	return fmt.Sprintf("unknown account %s referenced in %s", e.Account, e.Where)
}

// CyclicClearingGraphError reports a cycle among clearing accounts: following
// the share tables from any of the listed accounts eventually leads back to
// itself, so no redistribution order exists. The engine refuses to produce a
// result rather than dropping or endlessly shuffling balance.
type CyclicClearingGraphError struct {
	Accounts []AccountID // the clearing accounts left unresolved, sorted
}

func (e *CyclicClearingGraphError) Error() string {
	ids := make([]string, len(e.Accounts))
	for i, id := range e.Accounts {
		ids[i] = string(id)
	}
	return fmt.Sprintf("clearing shares form a cycle among accounts %s", strings.Join(ids, ", "))
}
