package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `spt fmt

  Validates and formats the ledger file. This command reads all accounts and
  transactions, validates them, applies available quick-fixes (like minting
  missing ids), sorts transactions by date, and writes the file back in a
  canonical JSONL form.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted := splitpot.NewLedger(ledger.Currency())
	formatted.Rename(ledger.Name())
	for a := range ledger.Accounts() {
		if err := formatted.AddAccount(a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid account %q: %v\n", a.Name, err)
			return subcommands.ExitFailure
		}
	}
	for tx := range ledger.Transactions(nil) {
		tx, err := formatted.Validate(tx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid transaction %s: %v\n", tx.ID(), err)
			return subcommands.ExitFailure
		}
		warnLostPositions(tx)
		formatted.Append(tx)
	}

	if err := saveLedger(formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Formatted %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// warnLostPositions flags line items whose weights sum to zero: their price
// is distributed to nobody and silently drops out of the group's balance.
func warnLostPositions(tx splitpot.Transaction) {
	purchase, ok := tx.(splitpot.Purchase)
	if !ok {
		return
	}
	for _, pos := range purchase.Positions {
		if pos.Deleted {
			continue
		}
		if pos.Usages.Total().Add(pos.CommunistShares).IsZero() && !pos.Price.IsZero() {
			log.Printf("warning: position %q of transaction %s has no shares, its price %s is not billed to anyone", pos.Name, tx.ID(), pos.Price)
		}
	}
}
