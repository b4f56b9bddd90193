package pos_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusioneats/pos-engine/pos"
)

func tx(id, amount string, method pos.PaymentMethod) pos.Transaction {
	return pos.Transaction{
		ID:        id,
		Amount:    decimal.RequireFromString(amount),
		Method:    method,
		Timestamp: time.Now(),
	}
}

// =============================================================================
// ACCUMULATION
// =============================================================================

func TestLedger_Record_AdvancesBothCountersTogether(t *testing.T) {
	// GIVEN: a zeroed ledger
	// WHEN: payments are recorded
	// THEN: dailySales and cumulativeSales move by the same amount each time

	l := pos.NewLedger()

	l.Record(tx("t1", "12.99", pos.PayCash))
	assert.True(t, l.DailySales.Equal(decimal.RequireFromString("12.99")))
	assert.True(t, l.CumulativeSales.Equal(decimal.RequireFromString("12.99")))

	l.Record(tx("t2", "3.00", pos.PayCard))
	assert.True(t, l.DailySales.Equal(decimal.RequireFromString("15.99")))
	assert.True(t, l.CumulativeSales.Equal(decimal.RequireFromString("15.99")))
	assert.Len(t, l.Transactions, 2)
}

// =============================================================================
// X-REPORT - NON-DESTRUCTIVE
// =============================================================================

func TestLedger_XReport_NonDestructive(t *testing.T) {
	// GIVEN: a ledger with recorded sales
	// WHEN: the X-report is generated repeatedly
	// THEN: nothing about the ledger changes

	l := pos.NewLedger()
	l.Record(tx("t1", "5.00", pos.PayCash))
	l.Record(tx("t2", "7.50", pos.PayCard))

	var report pos.XReport
	for i := 0; i < 5; i++ {
		report = l.XReport()
	}

	assert.True(t, report.DailySales.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 2, report.TransactionCount)
	assert.True(t, l.DailySales.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, l.CumulativeSales.Equal(decimal.RequireFromString("12.50")))
	assert.Len(t, l.Transactions, 2)
}

// =============================================================================
// Z-REPORT - SNAPSHOT THEN RESET
// =============================================================================

func TestLedger_ZReport_ReturnsPreResetValuesAndZeroes(t *testing.T) {
	// GIVEN: a ledger with recorded sales
	// WHEN: the Z-report runs
	// THEN: the report carries the pre-reset totals and the ledger is empty

	l := pos.NewLedger()
	l.Record(tx("t1", "5.00", pos.PayCash))
	l.Record(tx("t2", "7.50", pos.PayCard))

	report := l.ZReport()

	assert.True(t, report.CumulativeSales.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 2, report.TransactionCount)

	assert.True(t, l.DailySales.IsZero())
	assert.True(t, l.CumulativeSales.IsZero())
	assert.Empty(t, l.Transactions)

	// A second Z on the reset ledger reports zero.
	again := l.ZReport()
	assert.True(t, again.CumulativeSales.IsZero())
	assert.Equal(t, 0, again.TransactionCount)
}

// =============================================================================
// PAYMENT-METHOD BREAKDOWN
// =============================================================================

func TestLedger_Breakdown_SplitsByMethod(t *testing.T) {
	l := pos.NewLedger()
	l.Record(tx("t1", "5.00", pos.PayCash))
	l.Record(tx("t2", "7.50", pos.PayCard))
	l.Record(tx("t3", "2.50", pos.PayCash))

	b := l.Breakdown()

	assert.True(t, b.CashTotal.Equal(decimal.RequireFromString("7.50")))
	assert.True(t, b.CardTotal.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, 2, b.CashCount)
	assert.Equal(t, 1, b.CardCount)

	// The breakdown is derived, not stored: the ledger is untouched.
	require.Len(t, l.Transactions, 3)
}

func TestLedger_Breakdown_EmptyLedger(t *testing.T) {
	b := pos.NewLedger().Breakdown()
	assert.True(t, b.CashTotal.IsZero())
	assert.True(t, b.CardTotal.IsZero())
	assert.Zero(t, b.CashCount)
	assert.Zero(t, b.CardCount)
}
