package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot/renderer"
)

type historyCmd struct {
	account string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display an account's balance over time" }
func (*historyCmd) Usage() string {
	return `spt history -a <account>

  Displays the running balance of a single account, one point per billing
  day among the transactions it participates in.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account name or id to report on")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-a must be provided")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	account, err := resolveAccount(ledger, c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := ledger.NewHistoryReport(account.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing history: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HistoryMarkdown(report))
	return subcommands.ExitSuccess
}
