package splitpot

import "fmt"

// BalanceReport lists the resolved balance of every account of a group.
type BalanceReport struct {
	Group    string
	Currency string
	Rows     []BalanceRow
}

// BalanceRow is the resolved state of one account.
type BalanceRow struct {
	Name          string
	Kind          AccountKind
	Balance       Money
	TotalPaid     Money
	TotalConsumed Money
}

// NewBalanceReport runs a balance resolution pass over the ledger and lays
// the result out for rendering, accounts sorted by name.
func (l *Ledger) NewBalanceReport() (*BalanceReport, error) {
	balances, err := l.Balances()
	if err != nil {
		return nil, err
	}
	report := &BalanceReport{Group: l.name, Currency: l.currency}
	for a := range l.Accounts() {
		b, ok := balances.For(a.ID)
		if !ok {
			return nil, fmt.Errorf("no balance resolved for account %q", a.Name)
		}
		report.Rows = append(report.Rows, BalanceRow{
			Name:          a.Name,
			Kind:          a.Kind,
			Balance:       b.Balance.Round(),
			TotalPaid:     b.TotalPaid.Round(),
			TotalConsumed: b.TotalConsumed.Round(),
		})
	}
	return report, nil
}

// HistoryReport represents the running balance of one account over time.
type HistoryReport struct {
	Account  string
	Currency string
	Entries  []HistoryEntry
}

// HistoryEntry is a single point of the balance history.
type HistoryEntry struct {
	Date    Date
	Balance Money
}

// NewHistoryReport computes the balance history of one account.
func (l *Ledger) NewHistoryReport(id AccountID) (*HistoryReport, error) {
	account, ok := l.Account(id)
	if !ok {
		return nil, &UnknownAccountReferenceError{Account: id, Where: "history report"}
	}
	report := &HistoryReport{Account: account.Name, Currency: l.currency}
	for day, balance := range l.BalanceHistory(id) {
		report.Entries = append(report.Entries, HistoryEntry{Date: day, Balance: balance.Round()})
	}
	return report, nil
}
