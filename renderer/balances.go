// Package renderer renders ledger reports to markdown.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/splitpot/splitpot"
)

// BalancesMarkdown renders the balance report to a markdown string.
func BalancesMarkdown(r *splitpot.BalanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Group != "" {
		doc.H1(fmt.Sprintf("Balances for %s", r.Group))
	} else {
		doc.H1("Balances")
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Kind", "Balance", "Paid", "Consumed"},
		Rows:   [][]string{},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Name,
			string(row.Kind),
			row.Balance.SignedString(),
			row.TotalPaid.String(),
			row.TotalConsumed.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
