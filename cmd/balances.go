package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot/renderer"
)

// balancesCmd holds the flags for the 'balances' subcommand.
type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display the resolved balance of every account" }
func (*balancesCmd) Usage() string {
	return `spt balances

  Resolves and displays the net balance, total paid and total consumed of
  every account, with clearing accounts drained through their share tables.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := ledger.NewBalanceReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving balances: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BalancesMarkdown(report))
	return subcommands.ExitSuccess
}
