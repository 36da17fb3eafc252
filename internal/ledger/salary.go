package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ComputeSalary applies the configured formula:
//
//	workedDays * daily_rate + base * percent_rate/100 + bonus - fine
//
// base is the period's total approved income with cash-drops excluded.
// Result is rounded to 2 decimal places.
func ComputeSalary(settings *models.SalarySettings, workedDays int, base, bonus, fine decimal.Decimal) decimal.Decimal {
	fixed := settings.DailyRate.Mul(decimal.NewFromInt(int64(workedDays)))
	percent := base.Mul(settings.PercentRate).Div(hundred)
	return fixed.Add(percent).Add(bonus).Sub(fine).Round(2)
}

// PayoutStore is the slice of the store the payout workflow needs.
// The report-flag update and the ledger insert are separate store calls;
// MarkReportPaid must refuse a report that is already paid, and
// RevertReportPaid undoes the flag when the insert cannot go through.
type PayoutStore interface {
	MarkReportPaid(ctx context.Context, reportID int64) error
	RevertReportPaid(ctx context.Context, reportID int64) error
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
}

// PayoutTransaction builds the cash-ledger record for a salary payout:
// a pre-approved cash expense of the report's total salary, dated today.
func PayoutTransaction(report *models.PeriodReport, today string) *models.Transaction {
	return &models.Transaction{
		Date:          today,
		Title:         "Salary payout " + report.StartDate + " – " + report.EndDate,
		Category:      models.CategoryTrade,
		Expense:       report.TotalSalary,
		Income:        decimal.Zero,
		Writeoff:      decimal.Zero,
		PaymentMethod: "cash",
		PaymentStatus: models.PaymentStatusPaid,
		AdminCheck:    models.AdminCheckValid,
		AuthorID:      report.AuthorID,
	}
}

// ExecutePayout pays out an approved report's salary.
//
// Sequencing: reject if already paid, flip is_paid, insert the payout
// transaction. If the insert fails the flag is reverted; if the revert
// fails too, the store holds a paid report with no matching cash entry
// and the caller gets a *PartialPayoutError to reconcile by hand.
func ExecutePayout(ctx context.Context, store PayoutStore, report *models.PeriodReport) (*models.Transaction, error) {
	if report.IsPaid {
		return nil, ErrAlreadyPaid
	}
	if err := store.MarkReportPaid(ctx, report.ID); err != nil {
		return nil, err
	}

	payout := PayoutTransaction(report, time.Now().Format("2006-01-02"))
	if err := store.CreateTransaction(ctx, payout); err != nil {
		if revertErr := store.RevertReportPaid(ctx, report.ID); revertErr != nil {
			return nil, &PartialPayoutError{ReportID: report.ID, Step: "ledger insert", Err: err}
		}
		return nil, err
	}

	report.IsPaid = true
	return payout, nil
}
