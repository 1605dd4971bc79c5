package simulation

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one charge against the campaign funds.
type LedgerEntry struct {
	Date     time.Time       `json:"date"`
	PersonID string          `json:"person_id,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Memo     string          `json:"memo,omitempty"`
}

// Ledger tracks campaign funds. The balance may go negative.
type Ledger struct {
	balance decimal.Decimal
	entries []LedgerEntry
}

// NewLedger opens a ledger with an initial balance.
func NewLedger(balance decimal.Decimal) *Ledger {
	return &Ledger{balance: balance}
}

// Charge debits amount and records the entry.
func (l *Ledger) Charge(date time.Time, personID string, amount decimal.Decimal, memo string) {
	l.balance = l.balance.Sub(amount)
	l.entries = append(l.entries, LedgerEntry{
		Date:     date,
		PersonID: personID,
		Amount:   amount,
		Memo:     memo,
	})
}

// Balance returns the current funds.
func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// Entries returns the recorded charges, oldest first.
func (l *Ledger) Entries() []LedgerEntry {
	return slices.Clone(l.entries)
}

// Total sums every charge.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.Amount)
	}
	return total
}
