package splitpot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CmdGroup is the ledger header line carrying the group's name and currency.
const CmdGroup CommandType = "group"

// groupCmd is a specialized struct for decoding the ledger header line.
type groupCmd struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// accountCmd is a specialized struct for decoding account declaration lines.
type accountCmd struct {
	ID             AccountID   `json:"id"`
	Kind           AccountKind `json:"kind"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ClearingShares Shares      `json:"clearing_shares"`
}

func (a accountCmd) account() Account {
	return Account{
		ID:             a.ID,
		Kind:           a.Kind,
		Name:           a.Name,
		Description:    a.Description,
		ClearingShares: a.ClearingShares,
	}
}

// DecodeLedger decodes a group ledger from a stream of JSONL data: one group
// header line, account declarations, and transactions. It returns a
// chronologically sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger("")
	scanner := bufio.NewScanner(r)

	var txs []Transaction
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		switch identifier.Command {
		case CmdGroup:
			var g groupCmd
			if err := json.Unmarshal(lineBytes, &g); err != nil {
				return nil, fmt.Errorf("could not parse group header: %w", err)
			}
			ledger.name, ledger.currency = g.Name, g.Currency
		case CmdAccount:
			var a accountCmd
			if err := json.Unmarshal(lineBytes, &a); err != nil {
				return nil, fmt.Errorf("could not parse account line %q: %w", string(lineBytes), err)
			}
			if err := ledger.AddAccount(a.account()); err != nil {
				return nil, err
			}
		case CmdPurchase:
			var p Purchase
			if err := json.Unmarshal(lineBytes, &p); err != nil {
				return nil, fmt.Errorf("could not parse purchase line %q: %w", string(lineBytes), err)
			}
			c := or(p.Value.Currency(), ledger.currency)
			p.Value = M(p.Value.value, c)
			// Line item prices are persisted as bare numbers in the
			// transaction's currency.
			for i := range p.Positions {
				p.Positions[i].Price = M(p.Positions[i].Price.value, c)
			}
			txs = append(txs, p)
		case CmdTransfer:
			var t Transfer
			if err := json.Unmarshal(lineBytes, &t); err != nil {
				return nil, fmt.Errorf("could not parse transfer line %q: %w", string(lineBytes), err)
			}
			t.Value = M(t.Value.value, or(t.Value.Currency(), ledger.currency))
			txs = append(txs, t)
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(lineBytes))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}

	ledger.Append(txs...)
	return ledger, nil
}

func or(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// EncodeLedger writes the ledger in its canonical JSONL form: the group
// header first, then accounts sorted by name, then transactions in
// chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	var header jsonObjectWriter
	header.Append("command", CmdGroup)
	header.Optional("name", l.name)
	header.Append("currency", l.currency)
	if err := writeLine(w, &header); err != nil {
		return err
	}
	for a := range l.Accounts() {
		if err := writeJSONL(w, a); err != nil {
			return err
		}
	}
	for tx := range l.Transactions(nil) {
		if err := writeJSONL(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTransaction appends a single transaction in JSONL form.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	return writeJSONL(w, tx)
}

// EncodeAccount appends a single account declaration in JSONL form.
func EncodeAccount(w io.Writer, a Account) error {
	return writeJSONL(w, a)
}

func writeJSONL(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode ledger line: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func writeLine(w io.Writer, obj *jsonObjectWriter) error {
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode ledger line: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
