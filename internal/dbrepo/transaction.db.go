package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fopmanager/fop-api/internal/ledger"
	"github.com/fopmanager/fop-api/internal/models"
)

const dateLayout = "2006-01-02"

type TransactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// TransactionFilter narrows transaction listings. Zero values mean "no filter".
type TransactionFilter struct {
	Date         string
	StartDate    string
	EndDate      string
	OfficialOnly bool
	AuthorID     int64
}

const transactionColumns = `
	id, tx_date, title, category, income, expense, writeoff, full_value,
	payment_method, payment_status, payment_date, payer, admin_check,
	is_official, author_id, created_at, updated_at
`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var txDate time.Time
	var paymentDate *time.Time
	err := row.Scan(
		&t.ID, &txDate, &t.Title, &t.Category, &t.Income, &t.Expense, &t.Writeoff, &t.FullValue,
		&t.PaymentMethod, &t.PaymentStatus, &paymentDate, &t.Payer, &t.AdminCheck,
		&t.IsOfficial, &t.AuthorID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Date = txDate.Format(dateLayout)
	if paymentDate != nil {
		t.PaymentDate = paymentDate.Format(dateLayout)
	}
	return &t, nil
}

func paymentDateArg(t *models.Transaction) interface{} {
	if t.PaymentDate == "" {
		return nil
	}
	return t.PaymentDate
}

// CreateTransaction inserts a new ledger record and fills in its id
func (r *TransactionRepo) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	ledger.NormalizeAmounts(t)
	if t.Category == "" {
		t.Category = models.CategoryTrade
	}
	if t.PaymentStatus == "" {
		t.PaymentStatus = models.PaymentStatusPaid
	}
	if t.AdminCheck == "" {
		t.AdminCheck = models.AdminCheckPending
	}
	// the payment method heuristic fixes the flag at insert time
	t.IsOfficial = ledger.Classify(t).IsOfficial

	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions
			(tx_date, title, category, income, expense, writeoff, full_value,
			 payment_method, payment_status, payment_date, payer, admin_check,
			 is_official, author_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`,
		t.Date, t.Title, t.Category, t.Income, t.Expense, t.Writeoff, t.FullValue,
		t.PaymentMethod, t.PaymentStatus, paymentDateArg(t), t.Payer, t.AdminCheck,
		t.IsOfficial, t.AuthorID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetTransaction fetches one record by id
func (r *TransactionRepo) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// ListTransactions returns records matching the filter, most recent first
func (r *TransactionRepo) ListTransactions(ctx context.Context, f TransactionFilter) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE 1=1
	`
	args := []interface{}{}
	argID := 1
	if f.Date != "" {
		query += ` AND tx_date=$` + strconv.Itoa(argID)
		args = append(args, f.Date)
		argID++
	}
	if f.StartDate != "" && f.EndDate != "" {
		query += ` AND tx_date BETWEEN $` + strconv.Itoa(argID) + ` AND $` + strconv.Itoa(argID+1)
		args = append(args, f.StartDate, f.EndDate)
		argID += 2
	}
	if f.OfficialOnly {
		query += ` AND is_official=true`
	}
	if f.AuthorID > 0 {
		query += ` AND author_id=$` + strconv.Itoa(argID)
		args = append(args, f.AuthorID)
		argID++
	}

	query += ` ORDER BY tx_date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// ListTransactionsInRange returns the records whose recording day or
// payment day falls inside [start, end]. The payment-day overlap is what
// lets the daily view show debt settlements.
func (r *TransactionRepo) ListTransactionsInRange(ctx context.Context, start, end string) ([]*models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE tx_date BETWEEN $1 AND $2
		   OR (payment_date IS NOT NULL AND payment_date BETWEEN $1 AND $2)
		ORDER BY tx_date ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// UpdateTransaction overwrites an existing record and keeps an audit
// trail of the old and new values in the same database transaction.
func (r *TransactionRepo) UpdateTransaction(ctx context.Context, t *models.Transaction, actorID int64) error {
	old, err := r.GetTransaction(ctx, t.ID)
	if err != nil {
		return err
	}

	ledger.NormalizeAmounts(t)
	t.IsOfficial = ledger.Classify(t).IsOfficial

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET tx_date=$1, title=$2, category=$3, income=$4, expense=$5, writeoff=$6,
		    full_value=$7, payment_method=$8, payment_status=$9, payment_date=$10,
		    payer=$11, is_official=$12, updated_at=CURRENT_TIMESTAMP
		WHERE id=$13
	`,
		t.Date, t.Title, t.Category, t.Income, t.Expense, t.Writeoff,
		t.FullValue, t.PaymentMethod, t.PaymentStatus, paymentDateArg(t),
		t.Payer, t.IsOfficial, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}

	if err := insertAuditTx(ctx, tx, "transaction", t.ID, "update", actorID, old, t); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateAdminCheck sets the confirmation state (valid/issue/pending)
func (r *TransactionRepo) UpdateAdminCheck(ctx context.Context, id int64, status string, actorID int64) error {
	old, err := r.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET admin_check=$1, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update admin check: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}

	change := map[string]string{"admin_check": status}
	oldChange := map[string]string{"admin_check": old.AdminCheck}
	if err := insertAuditTx(ctx, tx, "transaction", id, "admin_check", actorID, oldChange, change); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RepayDebt settles an unpaid transaction in place: same record, new
// payment status, payment day and payer. Never inserts a duplicate.
func (r *TransactionRepo) RepayDebt(ctx context.Context, id int64, paymentDate, payer string, actorID int64) (*models.Transaction, error) {
	old, err := r.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if old.PaymentStatus == models.PaymentStatusPaid {
		return nil, fmt.Errorf("transaction %d is already paid", id)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET payment_status=$1, payment_date=$2, payer=$3, updated_at=CURRENT_TIMESTAMP
		WHERE id=$4 AND payment_status=$5
	`, models.PaymentStatusPaid, paymentDate, payer, id, models.PaymentStatusUnpaid)
	if err != nil {
		return nil, fmt.Errorf("repay debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("transaction %d is already paid", id)
	}

	updated := *old
	updated.PaymentStatus = models.PaymentStatusPaid
	updated.PaymentDate = paymentDate
	updated.Payer = payer
	if err := insertAuditTx(ctx, tx, "transaction", id, "repay", actorID, old, &updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction removes a record, preserving its last state in the audit log
func (r *TransactionRepo) DeleteTransaction(ctx context.Context, id int64, actorID int64) error {
	old, err := r.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}

	if err := insertAuditTx(ctx, tx, "transaction", id, "delete", actorID, old, nil); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
