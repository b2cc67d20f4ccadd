package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/splitpot/splitpot"
)

// HistoryMarkdown renders the balance history of one account to a markdown
// string.
func HistoryMarkdown(r *splitpot.HistoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", r.Account))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Balance"},
		Rows:   [][]string{},
	}
	for _, entry := range r.Entries {
		table.Rows = append(table.Rows, []string{
			entry.Date.String(),
			entry.Balance.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
