package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/splitpot/splitpot"
)

// --- Purchase Command ---

type purchaseCmd struct {
	date        string
	amount      float64
	description string
	creditors   sharesFlag
	debitors    sharesFlag
	items       itemsFlag
}

func (*purchaseCmd) Name() string     { return "purchase" }
func (*purchaseCmd) Synopsis() string { return "record a shared purchase" }
func (*purchaseCmd) Usage() string {
	return `spt purchase -a <amount> -by <payer[=weight]> -for <consumer[=weight]> [-item <name:price:usages[:communist]>] [-d <date>] [-m <description>]

  Records a purchase. The payers listed with -by are credited the full
  amount; line items added with -item bill specific consumers; whatever is
  not covered by line items is split over the -for shares.

Usage Examples:
# Alice paid 100 for groceries, split evenly between Alice and Bob.
$ spt purchase -a 100 -by Alice -for Alice -for Bob -m groceries

# Same, but 40 of it was a crate of beer consumed by Alice and Bob directly,
# with 2 communist shares going back into the common pot.
$ spt purchase -a 100 -by Alice -for Alice -for Bob -item "beer:40:Alice,Bob:2"
`
}

func (c *purchaseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", splitpot.Today().String(), "Billing date (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "a", 0, "Total value of the purchase")
	f.StringVar(&c.description, "m", "", "An optional description")
	f.Var(&c.creditors, "by", "Payer account and weight, repeatable (name[=weight])")
	f.Var(&c.debitors, "for", "Consumer account and weight, repeatable (name[=weight])")
	f.Var(&c.items, "item", "Line item, repeatable (name:price:usages[:communist])")
}

func (c *purchaseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := splitpot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	creditors, err := c.creditors.resolve(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	debitors, err := c.debitors.resolve(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	positions, err := c.items.resolve(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	value := splitpot.M(c.amount, ledger.Currency())
	tx := splitpot.NewPurchase(day, c.description, value, creditors, debitors, positions...)
	return appendTransaction(tx)
}

// --- Transfer Command ---

type transferCmd struct {
	date        string
	amount      float64
	description string
	from        sharesFlag
	to          sharesFlag
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "record a direct transfer between accounts" }
func (*transferCmd) Usage() string {
	return `spt transfer -a <amount> -from <sender[=weight]> -to <receiver[=weight]> [-d <date>] [-m <description>]

  Records money handed from the senders to the receivers, settling part of a
  debt. The sender's balance increases, the receiver's decreases.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", splitpot.Today().String(), "Billing date (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "a", 0, "Amount transferred")
	f.StringVar(&c.description, "m", "", "An optional description")
	f.Var(&c.from, "from", "Sender account and weight, repeatable (name[=weight])")
	f.Var(&c.to, "to", "Receiver account and weight, repeatable (name[=weight])")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := splitpot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	from, err := c.from.resolve(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := c.to.resolve(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	value := splitpot.M(c.amount, ledger.Currency())
	tx := splitpot.NewTransfer(day, c.description, value, from, to)
	return appendTransaction(tx)
}

// itemsFlag collects repeatable "name:price:usages[:communist]" line item
// flag values, where usages is a comma list of name[=weight].
type itemsFlag struct {
	raw []string
}

func (i *itemsFlag) String() string { return strings.Join(i.raw, " ") }

func (i *itemsFlag) Set(value string) error {
	if _, _, _, err := parseItem(value); err != nil {
		return err
	}
	i.raw = append(i.raw, value)
	return nil
}

func parseItem(value string) (name string, price float64, rest []string, err error) {
	parts := strings.Split(value, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return "", 0, nil, fmt.Errorf("invalid item %q, expected name:price:usages[:communist]", value)
	}
	price, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, nil, fmt.Errorf("invalid price in item %q: %w", value, err)
	}
	return parts[0], price, parts[2:], nil
}

// resolve maps the collected items to positions against the ledger roster.
func (i *itemsFlag) resolve(ledger *splitpot.Ledger) ([]splitpot.Position, error) {
	var positions []splitpot.Position
	for _, raw := range i.raw {
		name, price, rest, err := parseItem(raw)
		if err != nil {
			return nil, err
		}
		var usages sharesFlag
		if err := usages.Set(rest[0]); err != nil {
			return nil, fmt.Errorf("invalid usages in item %q: %w", raw, err)
		}
		resolved, err := usages.resolve(ledger)
		if err != nil {
			return nil, err
		}
		communist := 0.0
		if len(rest) == 2 {
			communist, err = strconv.ParseFloat(rest[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid communist shares in item %q: %w", raw, err)
			}
		}
		positions = append(positions, splitpot.Position{
			Name:            name,
			Price:           splitpot.M(price, ledger.Currency()),
			Usages:          resolved,
			CommunistShares: splitpot.W(communist),
		})
	}
	return positions, nil
}
