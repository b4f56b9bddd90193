/*
ledger.go - Append-only sales ledger and the X/Z report protocol

PURPOSE:
  The ledger accumulates every successful payment. It is the only place sales
  totals live, and the only things that ever happen to it are an append
  (payment) and a wholesale reset (Z-report).

CRITICAL INVARIANTS:
  1. APPEND-ONLY: transactions are never modified or deleted individually
  2. Both counters move together: daily and cumulative sales increase by the
     same amount on every payment
  3. X-report is a pure read - calling it any number of times changes nothing
  4. Z-report returns the pre-reset totals, then zeroes both counters and
     clears the transaction sequence, as one operation

NOTE ON "DAILY":
  DailySales has no calendar awareness. It resets only on Z-report, never at
  midnight. TransactionCount on both reports is the full sequence length.

SEE ALSO:
  - order.go: where the paid order comes from
  - session.go: persists the ledger snapshot after every mutation
*/
package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the sales accumulator. Exported fields carry the persisted
// snapshot shape; mutate only through Record and ZReport.
type Ledger struct {
	DailySales      decimal.Decimal `json:"dailySales"`
	CumulativeSales decimal.Decimal `json:"cumulativeSales"`
	Transactions    []Transaction   `json:"transactions"`
}

// NewLedger returns a zeroed ledger.
func NewLedger() *Ledger {
	return &Ledger{
		DailySales:      decimal.Zero,
		CumulativeSales: decimal.Zero,
	}
}

// Record appends a transaction and advances both running totals by its
// amount. This is the only write path besides the Z-report reset.
func (l *Ledger) Record(tx Transaction) {
	l.DailySales = l.DailySales.Add(tx.Amount)
	l.CumulativeSales = l.CumulativeSales.Add(tx.Amount)
	l.Transactions = append(l.Transactions, tx)
}

// XReport returns the current daily total and transaction count without
// mutating anything.
func (l *Ledger) XReport() XReport {
	return XReport{
		DailySales:       l.DailySales,
		TransactionCount: len(l.Transactions),
		GeneratedAt:      time.Now(),
	}
}

// ZReport snapshots the cumulative totals and then resets the ledger: both
// counters to zero, transaction sequence to empty. The returned report
// reflects the pre-reset values.
func (l *Ledger) ZReport() ZReport {
	report := ZReport{
		CumulativeSales:  l.CumulativeSales,
		TransactionCount: len(l.Transactions),
		GeneratedAt:      time.Now(),
	}
	l.DailySales = decimal.Zero
	l.CumulativeSales = decimal.Zero
	l.Transactions = nil
	return report
}

// Breakdown derives per-method totals and counts by filtering the transaction
// sequence. Read-only; computed fresh on every call.
func (l *Ledger) Breakdown() MethodBreakdown {
	b := MethodBreakdown{
		CashTotal: decimal.Zero,
		CardTotal: decimal.Zero,
	}
	for _, tx := range l.Transactions {
		switch tx.Method {
		case PayCash:
			b.CashTotal = b.CashTotal.Add(tx.Amount)
			b.CashCount++
		case PayCard:
			b.CardTotal = b.CardTotal.Add(tx.Amount)
			b.CardCount++
		}
	}
	return b
}
