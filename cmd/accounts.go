package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot"
)

// --- New Account Command ---

type newAccountCmd struct {
	name        string
	description string
}

func (*newAccountCmd) Name() string     { return "new-account" }
func (*newAccountCmd) Synopsis() string { return "declare a personal account in the group" }
func (*newAccountCmd) Usage() string {
	return `spt new-account -n <name> [-d <description>]

  Declares a personal account: a participant that can pay for or consume
  shared expenses.
`
}

func (c *newAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the account")
	f.StringVar(&c.description, "d", "", "An optional description")
}

func (c *newAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	account := splitpot.NewPersonalAccount(c.name, c.description)
	return appendAccount(account)
}

// --- New Clearing Account Command ---

type newClearingCmd struct {
	name        string
	description string
	shares      sharesFlag
}

func (*newClearingCmd) Name() string     { return "new-clearing" }
func (*newClearingCmd) Synopsis() string { return "declare a clearing account in the group" }
func (*newClearingCmd) Usage() string {
	return `spt new-clearing -n <name> -share <account[=weight]> [-share ...]

  Declares a clearing account: a virtual pool whose balance is redistributed
  to the listed accounts, weighted by share.

Usage Examples:
# A flat shared among three flatmates, double weight for the couple's room.
$ spt new-clearing -n Flat -share Alice=2 -share Bob -share Carol
`
}

func (c *newClearingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the clearing account")
	f.StringVar(&c.description, "d", "", "An optional description")
	f.Var(&c.shares, "share", "Target account and weight, repeatable (name[=weight])")
}

func (c *newClearingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	shares, err := c.shares.resolve(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	account := splitpot.NewClearingAccount(c.name, c.description, shares)
	return appendAccount(account)
}

// appendAccount validates an account against the ledger and appends its
// declaration to the app default ledger file.
func appendAccount(account splitpot.Account) subcommands.ExitStatus {
	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, exists := ledger.AccountByName(account.Name); exists {
		fmt.Fprintf(os.Stderr, "Error: an account named %q already exists\n", account.Name)
		return subcommands.ExitFailure
	}
	if err := ledger.AddAccount(account); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid account: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := splitpot.EncodeAccount(f, account); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully declared %s account %q\n", account.Kind, account.Name)
	return subcommands.ExitSuccess
}
