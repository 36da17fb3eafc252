package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

func TestResolveDailyViewDoubleBucketing(t *testing.T) {
	debt := &models.Transaction{
		Date:          "2024-01-01",
		Category:      models.CategoryTrade,
		Income:        decimal.NewFromInt(250),
		Expense:       decimal.NewFromInt(100),
		PaymentStatus: models.PaymentStatusPaid,
		PaymentDate:   "2024-01-05",
	}
	txs := []*models.Transaction{debt}

	created := ResolveDailyView(txs, "2024-01-01")
	if len(created) != 1 || created[0].PresentedAs != PresentedAsCreated {
		t.Fatalf("creation day view = %+v, expected one created entry", created)
	}

	repaid := ResolveDailyView(txs, "2024-01-05")
	if len(repaid) != 1 || repaid[0].PresentedAs != PresentedAsRepayment {
		t.Fatalf("payment day view = %+v, expected one repayment entry", repaid)
	}

	// creation day counts the income, payment day counts the settlement
	// as expense; neither day counts the record twice
	createdTotals := DayCashTotals(created)
	if !createdTotals.Income.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("creation day income = %s, expected 250", createdTotals.Income)
	}
	repaidTotals := DayCashTotals(repaid)
	if !repaidTotals.Expense.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("payment day expense = %s, expected 250", repaidTotals.Expense)
	}
	if !repaidTotals.Income.IsZero() {
		t.Fatalf("repayment leaked into income: %s", repaidTotals.Income)
	}
}

func TestResolveDailyViewUnpaidDebtStaysOnCreationDay(t *testing.T) {
	debt := &models.Transaction{
		Date:          "2024-01-01",
		Income:        decimal.NewFromInt(100),
		PaymentStatus: models.PaymentStatusUnpaid,
		PaymentDate:   "2024-01-05",
	}
	if entries := ResolveDailyView([]*models.Transaction{debt}, "2024-01-05"); entries != nil {
		t.Fatalf("unpaid debt shown as repayment: %+v", entries)
	}
}

func TestResolveDailyViewSameDayPaymentIsCreatedOnly(t *testing.T) {
	sameDay := &models.Transaction{
		Date:          "2024-01-01",
		Income:        decimal.NewFromInt(100),
		PaymentStatus: models.PaymentStatusPaid,
		PaymentDate:   "2024-01-01",
	}
	entries := ResolveDailyView([]*models.Transaction{sameDay}, "2024-01-01")
	if len(entries) != 1 || entries[0].PresentedAs != PresentedAsCreated {
		t.Fatalf("same-day payment double-bucketed: %+v", entries)
	}
}
