package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

// Totals are plain sums over a set of transactions. Cash-drop records
// (till-to-safe movements) count toward expense only; they are not sales.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Writeoff decimal.Decimal `json:"writeoff"`
}

// Add returns the element-wise sum of two totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Income:   t.Income.Add(o.Income),
		Expense:  t.Expense.Add(o.Expense),
		Writeoff: t.Writeoff.Add(o.Writeoff),
	}
}

// DayTotals is one day's subtotal within a period breakdown.
type DayTotals struct {
	Date string `json:"date"`
	Totals
}

// InRange reports whether an ISO date falls within [start, end] inclusive.
// ISO-8601 date strings compare correctly as plain strings.
func InRange(date, start, end string) bool {
	return date >= start && date <= end
}

func accumulate(t *Totals, tx *models.Transaction) {
	c := Classify(tx)
	if !c.IsCashDrop {
		t.Income = t.Income.Add(tx.Income)
		t.Writeoff = t.Writeoff.Add(tx.Writeoff)
	}
	t.Expense = t.Expense.Add(tx.Expense)
}

// Aggregate sums all transactions recorded within [start, end] and
// returns the per-day breakdown in ascending date order.
func Aggregate(txs []*models.Transaction, start, end string) (Totals, []DayTotals) {
	var total Totals
	byDate := make(map[string]*Totals)
	for _, tx := range txs {
		if !InRange(tx.Date, start, end) {
			continue
		}
		accumulate(&total, tx)
		day, ok := byDate[tx.Date]
		if !ok {
			day = &Totals{}
			byDate[tx.Date] = day
		}
		accumulate(day, tx)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	breakdown := make([]DayTotals, 0, len(dates))
	for _, d := range dates {
		breakdown = append(breakdown, DayTotals{Date: d, Totals: *byDate[d]})
	}
	return total, breakdown
}

// UnconfirmedDates returns the distinct sorted dates within [start, end]
// that still hold transactions without a valid admin check.
func UnconfirmedDates(txs []*models.Transaction, start, end string) []string {
	seen := make(map[string]bool)
	for _, tx := range txs {
		if InRange(tx.Date, start, end) && tx.AdminCheck != models.AdminCheckValid {
			seen[tx.Date] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// PeriodSummary is the reconciled view of a date range, ready to become
// a period report.
type PeriodSummary struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Totals    Totals      `json:"totals"`
	Breakdown []DayTotals `json:"breakdown"`
	Markup    Markup      `json:"markup"`
}

// GeneratePeriod reconciles [start, end]. Every transaction in range
// must carry a valid admin check first; otherwise the generation aborts
// with the offending dates and no partial totals.
func GeneratePeriod(txs []*models.Transaction, start, end string) (*PeriodSummary, error) {
	if dates := UnconfirmedDates(txs, start, end); dates != nil {
		return nil, &ValidationError{Dates: dates}
	}
	total, breakdown := Aggregate(txs, start, end)
	return &PeriodSummary{
		StartDate: start,
		EndDate:   end,
		Totals:    total,
		Breakdown: breakdown,
		Markup:    ComputeMarkup(total.Income, total.Expense, total.Writeoff),
	}, nil
}
