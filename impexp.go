package splitpot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains functions to ingest a group export produced by a server
// application. The export is a single JSON document; the exact wrapper around
// the accounts and transactions arrays varies between export versions, so the
// arrays are located by jsonpath instead of a fixed struct.

// jaccount is the readable shape of one exported account.
type jaccount struct {
	ID             string                     `json:"id"`
	Type           string                     `json:"type"`
	Name           string                     `json:"name"`
	Description    string                     `json:"description"`
	ClearingShares map[string]decimal.Decimal `json:"clearing_shares"`
}

// jposition is the readable shape of one exported line item.
type jposition struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Price           decimal.Decimal            `json:"price"`
	Usages          map[string]decimal.Decimal `json:"usages"`
	CommunistShares decimal.Decimal            `json:"communist_shares"`
	Deleted         bool                       `json:"deleted"`
}

// jtransaction is the readable shape of one exported transaction.
type jtransaction struct {
	ID             string                     `json:"id"`
	Type           string                     `json:"type"`
	Value          decimal.Decimal            `json:"value"`
	Currency       string                     `json:"currency_symbol"`
	BilledAt       string                     `json:"billed_at"`
	Description    string                     `json:"description"`
	CreditorShares map[string]decimal.Decimal `json:"creditor_shares"`
	DebitorShares  map[string]decimal.Decimal `json:"debitor_shares"`
	Deleted        bool                       `json:"deleted"`
	Positions      []jposition                `json:"positions"`
}

// ImportGroup reads a group export document and returns the equivalent
// Ledger.
func ImportGroup(r io.Reader) (*Ledger, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep amounts exact until they reach decimal
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse group export: %w", err)
	}

	name, _ := lookupString(doc, "$.name", "$.group.name")
	currency, _ := lookupString(doc, "$.currency", "$.group.currency", "$.currency_symbol")
	ledger := NewLedger(currency)
	ledger.name = name

	rawAccounts, err := lookupArray(doc, "$.accounts", "$.group.accounts")
	if err != nil {
		return nil, fmt.Errorf("cannot locate accounts in group export: %w", err)
	}
	for _, raw := range rawAccounts {
		var ja jaccount
		if err := reparse(raw, &ja); err != nil {
			return nil, fmt.Errorf("cannot parse exported account: %w", err)
		}
		account := Account{
			ID:          AccountID(ja.ID),
			Kind:        AccountKind(ja.Type),
			Name:        ja.Name,
			Description: ja.Description,
		}
		if account.Kind == Clearing {
			account.ClearingShares = importShares(ja.ClearingShares)
		}
		if err := ledger.AddAccount(account); err != nil {
			return nil, err
		}
	}

	rawTxs, err := lookupArray(doc, "$.transactions", "$.group.transactions")
	if err != nil {
		return nil, fmt.Errorf("cannot locate transactions in group export: %w", err)
	}
	for _, raw := range rawTxs {
		var jt jtransaction
		if err := reparse(raw, &jt); err != nil {
			return nil, fmt.Errorf("cannot parse exported transaction: %w", err)
		}
		tx, err := jt.transaction(or(jt.Currency, currency))
		if err != nil {
			return nil, err
		}
		ledger.Append(tx)
	}
	return ledger, nil
}

// transaction converts the exported shape into a ledger transaction.
func (jt jtransaction) transaction(currency string) (Transaction, error) {
	day, err := ParseDate(jt.BilledAt)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", jt.ID, err)
	}
	shared := sharedTx{
		baseTx: baseTx{
			Command:     CommandType(jt.Type),
			TxID:        TransactionID(jt.ID),
			Date:        day,
			Description: jt.Description,
			Deleted:     jt.Deleted,
		},
		Value:     M(jt.Value, currency),
		Creditors: importShares(jt.CreditorShares),
		Debitors:  importShares(jt.DebitorShares),
	}
	switch CommandType(jt.Type) {
	case CmdTransfer:
		return Transfer{shared}, nil
	case CmdPurchase:
		p := Purchase{sharedTx: shared}
		for _, jp := range jt.Positions {
			p.Positions = append(p.Positions, Position{
				PosID:           PositionID(jp.ID),
				Name:            jp.Name,
				Price:           M(jp.Price, currency),
				Usages:          importShares(jp.Usages),
				CommunistShares: W(jp.CommunistShares),
				Deleted:         jp.Deleted,
			})
		}
		return p, nil
	default:
		return nil, fmt.Errorf("transaction %s has unknown type %q", jt.ID, jt.Type)
	}
}

func importShares(m map[string]decimal.Decimal) Shares {
	if m == nil {
		return nil
	}
	s := make(Shares, len(m))
	for id, w := range m {
		s[AccountID(id)] = W(w)
	}
	return s
}

// reparse converts a decoded JSON value into a typed struct.
func reparse(raw any, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// lookupArray returns the first jsonpath query that resolves to a JSON array.
func lookupArray(doc any, paths ...string) ([]any, error) {
	for _, path := range paths {
		value, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		if list, ok := value.([]any); ok {
			return list, nil
		}
	}
	return nil, fmt.Errorf("none of %v resolved to an array", paths)
}

// lookupString returns the first jsonpath query that resolves to a string.
func lookupString(doc any, paths ...string) (string, bool) {
	for _, path := range paths {
		value, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		if s, ok := value.(string); ok {
			return s, true
		}
	}
	return "", false
}
