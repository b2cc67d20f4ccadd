package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/splitpot/splitpot"
)

// sharesFlag collects repeatable "name[=weight]" flag values into a weighted
// share list. The weight defaults to 1. Account names are resolved against
// the ledger roster at execution time.
type sharesFlag struct {
	entries []shareEntry
}

type shareEntry struct {
	account string
	weight  float64
}

func (s *sharesFlag) String() string {
	parts := make([]string, len(s.entries))
	for i, e := range s.entries {
		parts[i] = fmt.Sprintf("%s=%g", e.account, e.weight)
	}
	return strings.Join(parts, ",")
}

func (s *sharesFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		entry, err := parseShareEntry(part)
		if err != nil {
			return err
		}
		s.entries = append(s.entries, entry)
	}
	return nil
}

func parseShareEntry(part string) (shareEntry, error) {
	part = strings.TrimSpace(part)
	name, weightStr, found := strings.Cut(part, "=")
	if name == "" {
		return shareEntry{}, fmt.Errorf("empty account in share %q", part)
	}
	if !found {
		return shareEntry{account: name, weight: 1}, nil
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return shareEntry{}, fmt.Errorf("invalid weight in share %q: %w", part, err)
	}
	return shareEntry{account: name, weight: weight}, nil
}

// resolve maps the collected entries to account ids.
func (s *sharesFlag) resolve(ledger *splitpot.Ledger) (splitpot.Shares, error) {
	shares := make(splitpot.Shares, len(s.entries))
	for _, e := range s.entries {
		account, err := resolveAccount(ledger, e.account)
		if err != nil {
			return nil, err
		}
		shares[account.ID] = splitpot.W(e.weight)
	}
	return shares, nil
}

// resolveAccount finds an account by name first, then by id. Imported groups
// keep their server-side ids verbatim, so the id is matched as-is.
func resolveAccount(ledger *splitpot.Ledger, ref string) (splitpot.Account, error) {
	if a, ok := ledger.AccountByName(ref); ok {
		return a, nil
	}
	if a, ok := ledger.Account(splitpot.AccountID(ref)); ok {
		return a, nil
	}
	return splitpot.Account{}, fmt.Errorf("no account named %q in the group", ref)
}
