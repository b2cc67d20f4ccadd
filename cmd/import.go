package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot"
)

type importCmd struct {
	file  string
	force bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a group export file into a new ledger" }
func (*importCmd) Usage() string {
	return `spt import -f <export.json> [-force]

  Imports a group export document (a single JSON file as produced by a
  server application) and writes it as a ledger file.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Path to the group export JSON file")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing ledger file")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(*ledgerFile); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: ledger file %q already exists, use -force to overwrite\n", *ledgerFile)
		return subcommands.ExitFailure
	}

	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	ledger, err := splitpot.ImportGroup(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing group: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := saveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %q into %s\n", ledger.Name(), *ledgerFile)
	return subcommands.ExitSuccess
}
