package ledger

import (
	"github.com/fopmanager/fop-api/internal/models"
)

// How a transaction is presented under a given calendar day.
const (
	PresentedAsCreated   = "created"
	PresentedAsRepayment = "repayment"
)

// DayEntry is one transaction's appearance in a daily view.
type DayEntry struct {
	Tx          *models.Transaction `json:"transaction"`
	PresentedAs string              `json:"presented_as"`
}

// ResolveDailyView lists the transactions belonging to viewDate.
//
// A record shows up as "created" on its recording day, and as "repayment"
// on its payment day when a debt was settled on a different day. The same
// record therefore appears under two view dates: once as the original
// sale, once as the settlement leaving the till. That double appearance
// is how daily cash flow reconciles; a single day never counts it twice.
func ResolveDailyView(txs []*models.Transaction, viewDate string) []DayEntry {
	var entries []DayEntry
	for _, tx := range txs {
		if tx.Date == viewDate {
			entries = append(entries, DayEntry{Tx: tx, PresentedAs: PresentedAsCreated})
			continue
		}
		if tx.PaymentStatus == models.PaymentStatusPaid &&
			tx.PaymentDate == viewDate && tx.Date != viewDate {
			entries = append(entries, DayEntry{Tx: tx, PresentedAs: PresentedAsRepayment})
		}
	}
	return entries
}

// DayCashTotals sums a daily view. A repayment entry contributes its
// income amount to the day's expense (the settled money leaves the till)
// and nothing to the day's income.
func DayCashTotals(entries []DayEntry) Totals {
	var t Totals
	for _, e := range entries {
		if e.PresentedAs == PresentedAsRepayment {
			t.Expense = t.Expense.Add(e.Tx.Income)
			continue
		}
		accumulate(&t, e.Tx)
	}
	return t
}
