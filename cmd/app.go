// Package cmd implements the CLI application to manage a shared-expense
// group ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/splitpot/splitpot"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
	c.Register(&importCmd{}, "ledger")

	c.Register(&newAccountCmd{}, "accounts")
	c.Register(&newClearingCmd{}, "accounts")

	c.Register(&purchaseCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")

	c.Register(&balancesCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "group.jsonl", "Path to the group ledger file (JSONL format)")

// DecodeLedgerFile reads the app default ledger file.
func DecodeLedgerFile() (*splitpot.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ledger file %q does not exist, run 'spt init' first", *ledgerFile)
		}
		return nil, err
	}
	defer f.Close()
	return splitpot.DecodeLedger(f)
}

// saveLedger rewrites the app default ledger file in canonical form.
func saveLedger(l *splitpot.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("cannot write ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return splitpot.EncodeLedger(f, l)
}

// appendTransaction validates a transaction against the ledger and appends it
// to the app default ledger file.
func appendTransaction(tx splitpot.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err = ledger.Validate(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := splitpot.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s to %s\n", tx.What(), *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
