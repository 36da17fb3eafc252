package ledger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

func tx(date string, income, expense, writeoff int64, check string) *models.Transaction {
	return &models.Transaction{
		Date:          date,
		Category:      models.CategoryTrade,
		Income:        decimal.NewFromInt(income),
		Expense:       decimal.NewFromInt(expense),
		Writeoff:      decimal.NewFromInt(writeoff),
		PaymentStatus: models.PaymentStatusPaid,
		AdminCheck:    check,
	}
}

func TestAggregateRangeAndOrder(t *testing.T) {
	txs := []*models.Transaction{
		tx("2024-03-03", 100, 40, 0, "valid"),
		tx("2024-03-01", 500, 200, 10, "valid"),
		tx("2024-03-01", 50, 20, 0, "valid"),
		tx("2024-04-01", 999, 999, 0, "valid"), // outside range
	}

	total, breakdown := Aggregate(txs, "2024-03-01", "2024-03-31")

	if !total.Income.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("income = %s, expected 650", total.Income)
	}
	if !total.Expense.Equal(decimal.NewFromInt(260)) {
		t.Fatalf("expense = %s, expected 260", total.Expense)
	}
	if !total.Writeoff.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("writeoff = %s, expected 10", total.Writeoff)
	}

	if len(breakdown) != 2 {
		t.Fatalf("breakdown has %d days, expected 2", len(breakdown))
	}
	if breakdown[0].Date != "2024-03-01" || breakdown[1].Date != "2024-03-03" {
		t.Fatalf("breakdown not in ascending date order: %+v", breakdown)
	}
	if !breakdown[0].Income.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("day subtotal = %s, expected 550", breakdown[0].Income)
	}
}

func TestAggregateAdditivity(t *testing.T) {
	txs := []*models.Transaction{
		tx("2024-03-01", 500, 200, 10, "valid"),
		tx("2024-03-05", 300, 100, 0, "valid"),
		tx("2024-03-20", 700, 350, 25, "valid"),
	}

	whole, _ := Aggregate(txs, "2024-03-01", "2024-03-31")
	first, _ := Aggregate(txs, "2024-03-01", "2024-03-10")
	second, _ := Aggregate(txs, "2024-03-11", "2024-03-31")
	sum := first.Add(second)

	if !whole.Income.Equal(sum.Income) || !whole.Expense.Equal(sum.Expense) || !whole.Writeoff.Equal(sum.Writeoff) {
		t.Fatalf("aggregate over split ranges differs: %+v vs %+v", whole, sum)
	}
}

func TestAggregateCashDropExclusion(t *testing.T) {
	drop := tx("2024-03-02", 400, 400, 50, "valid")
	drop.Category = models.CategoryCashDrop
	txs := []*models.Transaction{
		tx("2024-03-01", 500, 200, 0, "valid"),
		drop,
	}

	total, _ := Aggregate(txs, "2024-03-01", "2024-03-31")
	if !total.Income.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("cash drop leaked into income: %s", total.Income)
	}
	if !total.Writeoff.IsZero() {
		t.Fatalf("cash drop leaked into writeoff: %s", total.Writeoff)
	}
	if !total.Expense.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("cash drop expense missing: %s", total.Expense)
	}
}

func TestGeneratePeriodValidationGate(t *testing.T) {
	txs := []*models.Transaction{
		tx("2024-03-01", 500, 200, 0, "valid"),
		tx("2024-03-02", 300, 100, 0, "pending"),
	}

	summary, err := GeneratePeriod(txs, "2024-03-01", "2024-03-02")
	if summary != nil {
		t.Fatalf("expected no partial result, got %+v", summary)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(vErr.Dates, []string{"2024-03-02"}) {
		t.Fatalf("offending dates = %v, expected [2024-03-02]", vErr.Dates)
	}
}

func TestGeneratePeriodDistinctSortedDates(t *testing.T) {
	txs := []*models.Transaction{
		tx("2024-03-05", 1, 1, 0, "issue"),
		tx("2024-03-02", 1, 1, 0, "pending"),
		tx("2024-03-02", 1, 1, 0, "pending"),
	}
	_, err := GeneratePeriod(txs, "2024-03-01", "2024-03-31")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(vErr.Dates, []string{"2024-03-02", "2024-03-05"}) {
		t.Fatalf("dates = %v, expected distinct sorted", vErr.Dates)
	}
}

func TestGeneratePeriodSuccess(t *testing.T) {
	txs := []*models.Transaction{
		tx("2024-03-01", 500, 200, 0, "valid"),
		tx("2024-03-02", 300, 100, 0, "valid"),
	}
	summary, err := GeneratePeriod(txs, "2024-03-01", "2024-03-02")
	if err != nil {
		t.Fatalf("GeneratePeriod error: %v", err)
	}
	if !summary.Totals.Income.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("income = %s, expected 800", summary.Totals.Income)
	}
	if !summary.Markup.Defined {
		t.Fatal("markup should be defined for non-zero expense")
	}
}
