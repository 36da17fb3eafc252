package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/ledger"
	"github.com/fopmanager/fop-api/internal/models"
)

type ReportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{db: db}
}

const reportColumns = `
	id, memo_no, start_date, end_date, income, expense, writeoff,
	worked_days, bonus, fine, total_salary, note, status, is_paid,
	author_id, created_at, updated_at
`

func scanReport(row pgx.Row) (*models.PeriodReport, error) {
	var rep models.PeriodReport
	var start, end time.Time
	err := row.Scan(
		&rep.ID, &rep.MemoNo, &start, &end, &rep.Income, &rep.Expense, &rep.Writeoff,
		&rep.WorkedDays, &rep.Bonus, &rep.Fine, &rep.TotalSalary, &rep.Note, &rep.Status, &rep.IsPaid,
		&rep.AuthorID, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rep.StartDate = start.Format(dateLayout)
	rep.EndDate = end.Format(dateLayout)
	return &rep, nil
}

// CreatePeriodReport persists a freshly generated report as pending
func (r *ReportRepo) CreatePeriodReport(ctx context.Context, rep *models.PeriodReport) error {
	rep.Status = models.ReportStatusPending
	rep.IsPaid = false

	err := r.db.QueryRow(ctx, `
		INSERT INTO period_reports
			(memo_no, start_date, end_date, income, expense, writeoff,
			 worked_days, bonus, fine, total_salary, note, status, is_paid,
			 author_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`,
		rep.MemoNo, rep.StartDate, rep.EndDate, rep.Income, rep.Expense, rep.Writeoff,
		rep.WorkedDays, rep.Bonus, rep.Fine, rep.TotalSalary, rep.Note, rep.Status, rep.IsPaid,
		rep.AuthorID,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert period report: %w", err)
	}
	return nil
}

// GetPeriodReport fetches one report by id
func (r *ReportRepo) GetPeriodReport(ctx context.Context, id int64) (*models.PeriodReport, error) {
	rep, err := scanReport(r.db.QueryRow(ctx, `
		SELECT `+reportColumns+`
		FROM period_reports
		WHERE id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get period report %d: %w", id, err)
	}
	return rep, nil
}

// ListPeriodReports returns all reports, most recent period first
func (r *ReportRepo) ListPeriodReports(ctx context.Context) ([]*models.PeriodReport, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reportColumns+`
		FROM period_reports
		ORDER BY start_date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.PeriodReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, nil
}

// ApprovePeriodReport moves a pending report to approved exactly once,
// capturing bonus, fine, final salary and the admin's note. Approval is
// terminal; an approved report can't be edited again.
func (r *ReportRepo) ApprovePeriodReport(ctx context.Context, id int64, bonus, fine, totalSalary decimal.Decimal, note string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE period_reports
		SET status=$1, bonus=$2, fine=$3, total_salary=$4, note=$5, updated_at=CURRENT_TIMESTAMP
		WHERE id=$6 AND status=$7
	`, models.ReportStatusApproved, bonus, fine, totalSalary, note, id, models.ReportStatusPending)
	if err != nil {
		return fmt.Errorf("approve period report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %d is not pending", id)
	}
	return nil
}

// MarkReportPaid flips is_paid on an approved report. The is_paid=false
// guard makes a double payout fail before any ledger write.
func (r *ReportRepo) MarkReportPaid(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE period_reports
		SET is_paid=true, updated_at=CURRENT_TIMESTAMP
		WHERE id=$1 AND status=$2 AND is_paid=false
	`, id, models.ReportStatusApproved)
	if err != nil {
		return fmt.Errorf("mark report paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		rep, getErr := r.GetPeriodReport(ctx, id)
		if getErr != nil {
			return getErr
		}
		if rep.IsPaid {
			return ledger.ErrAlreadyPaid
		}
		return fmt.Errorf("report %d is not approved", id)
	}
	return nil
}

// RevertReportPaid undoes MarkReportPaid when the payout's ledger insert failed
func (r *ReportRepo) RevertReportPaid(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE period_reports
		SET is_paid=false, updated_at=CURRENT_TIMESTAMP
		WHERE id=$1
	`, id)
	if err != nil {
		return fmt.Errorf("revert report paid: %w", err)
	}
	return nil
}
