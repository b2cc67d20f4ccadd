package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot"
)

type initCmd struct {
	name     string
	currency string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new group ledger file" }
func (*initCmd) Usage() string {
	return `spt init -n <name> [-c <currency>]

  Creates a new, empty group ledger file.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the group")
	f.StringVar(&c.currency, "c", "EUR", "Currency of the group (e.g., USD, EUR)")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(*ledgerFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: ledger file %q already exists\n", *ledgerFile)
		return subcommands.ExitFailure
	}

	ledger := splitpot.NewLedger(c.currency)
	ledger.Rename(c.name)
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created group %q in %s\n", c.name, *ledgerFile)
	return subcommands.ExitSuccess
}
