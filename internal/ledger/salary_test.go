package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

func TestComputeSalary(t *testing.T) {
	settings := &models.SalarySettings{
		DailyRate:   decimal.NewFromInt(700),
		PercentRate: decimal.NewFromInt(2),
	}
	// 5*700 + 10000*2% + 200 - 50 = 3850
	total := ComputeSalary(settings, 5, decimal.NewFromInt(10000), decimal.NewFromInt(200), decimal.NewFromInt(50))
	if !total.Equal(decimal.NewFromInt(3850)) {
		t.Fatalf("salary = %s, expected 3850", total)
	}
}

func TestComputeSalaryRounding(t *testing.T) {
	settings := &models.SalarySettings{
		DailyRate:   decimal.Zero,
		PercentRate: decimal.RequireFromString("2.5"),
	}
	total := ComputeSalary(settings, 0, decimal.RequireFromString("333.33"), decimal.Zero, decimal.Zero)
	if !total.Equal(decimal.RequireFromString("8.33")) {
		t.Fatalf("salary = %s, expected 8.33", total)
	}
}

// fakePayoutStore simulates the two store calls of the payout workflow.
type fakePayoutStore struct {
	paid       map[int64]bool
	insertErr  error
	revertErr  error
	insertions []*models.Transaction
}

func newFakePayoutStore() *fakePayoutStore {
	return &fakePayoutStore{paid: make(map[int64]bool)}
}

func (f *fakePayoutStore) MarkReportPaid(_ context.Context, id int64) error {
	if f.paid[id] {
		return ErrAlreadyPaid
	}
	f.paid[id] = true
	return nil
}

func (f *fakePayoutStore) RevertReportPaid(_ context.Context, id int64) error {
	if f.revertErr != nil {
		return f.revertErr
	}
	f.paid[id] = false
	return nil
}

func (f *fakePayoutStore) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertions = append(f.insertions, tx)
	return nil
}

func approvedReport() *models.PeriodReport {
	return &models.PeriodReport{
		ID:          7,
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-15",
		TotalSalary: decimal.NewFromInt(3850),
		Status:      models.ReportStatusApproved,
	}
}

func TestExecutePayout(t *testing.T) {
	store := newFakePayoutStore()
	report := approvedReport()

	payout, err := ExecutePayout(context.Background(), store, report)
	if err != nil {
		t.Fatalf("ExecutePayout error: %v", err)
	}
	if !report.IsPaid {
		t.Fatal("report not flagged paid")
	}
	if len(store.insertions) != 1 {
		t.Fatalf("%d ledger inserts, expected 1", len(store.insertions))
	}
	if !payout.Expense.Equal(report.TotalSalary) {
		t.Fatalf("payout expense = %s, expected %s", payout.Expense, report.TotalSalary)
	}
	if payout.Category != models.CategoryTrade || payout.PaymentMethod != "cash" || payout.AdminCheck != models.AdminCheckValid {
		t.Fatalf("payout transaction misshaped: %+v", payout)
	}
}

func TestExecutePayoutAlreadyPaid(t *testing.T) {
	store := newFakePayoutStore()
	report := approvedReport()
	report.IsPaid = true

	if _, err := ExecutePayout(context.Background(), store, report); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
	if len(store.insertions) != 0 {
		t.Fatal("already-paid report must not write anything")
	}
}

func TestExecutePayoutInsertFailureReverts(t *testing.T) {
	store := newFakePayoutStore()
	store.insertErr = errors.New("connection reset")
	report := approvedReport()

	_, err := ExecutePayout(context.Background(), store, report)
	if err == nil {
		t.Fatal("expected error")
	}
	var pErr *PartialPayoutError
	if errors.As(err, &pErr) {
		t.Fatalf("revert succeeded, failure should be clean, got %v", err)
	}
	if store.paid[report.ID] {
		t.Fatal("paid flag not reverted after failed insert")
	}
	if report.IsPaid {
		t.Fatal("in-memory report flagged paid despite failure")
	}
}

func TestExecutePayoutPartialFailure(t *testing.T) {
	store := newFakePayoutStore()
	store.insertErr = errors.New("connection reset")
	store.revertErr = errors.New("connection still down")
	report := approvedReport()

	_, err := ExecutePayout(context.Background(), store, report)
	var pErr *PartialPayoutError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected *PartialPayoutError, got %v", err)
	}
	if pErr.ReportID != report.ID {
		t.Fatalf("partial error on report %d, expected %d", pErr.ReportID, report.ID)
	}
	if report.IsPaid {
		t.Fatal("in-memory report must not be presented as cleanly paid")
	}
}
