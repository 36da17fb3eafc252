package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	APPName    = "FOP Manager"
	APPVersion = "1.0"
)

// Transaction categories
const (
	CategoryTrade    = "trade"
	CategoryCashDrop = "cash_drop"
)

// Payment status of a transaction
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Admin confirmation states gating period reports
const (
	AdminCheckPending = "pending"
	AdminCheckValid   = "valid"
	AdminCheckIssue   = "issue"
)

// Period report lifecycle
const (
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JWT holds the token claims passed around after authentication
type JWT struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	ExpiresAt int64     `json:"exp"`
	IssuedAt  int64     `json:"iat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
	Refresh   time.Duration
}

type DBConfig struct {
	DSN    string
	DEVDSN string
}

type Config struct {
	Port int
	Env  string
	JWT  JWTConfig
	DB   DBConfig
}

// User is a seller or admin account
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`   //admin //seller
	Status    string    `json:"status"` //active //inactive
	Email     string    `json:"email"`  //username
	Password  string    `json:"-"`      // don't expose
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is a single ledger record. Dates travel as YYYY-MM-DD strings
// at the API boundary; the repo layer converts to/from SQL date columns.
// One record may carry income, expense and writeoff at the same time
// (a sale has both income and cost of goods).
type Transaction struct {
	ID            int64               `json:"id"`
	Date          string              `json:"date" validate:"required,datetime=2006-01-02"`
	Title         string              `json:"title"`
	Category      string              `json:"category" validate:"omitempty,oneof=trade cash_drop"`
	Income        decimal.Decimal     `json:"income"`
	Expense       decimal.Decimal     `json:"expense"`
	Writeoff      decimal.Decimal     `json:"writeoff"`
	FullValue     decimal.NullDecimal `json:"full_value"` // pre-discount price of promo sales
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status" validate:"omitempty,oneof=paid unpaid"`
	PaymentDate   string              `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Payer         string              `json:"payer,omitempty"`
	AdminCheck    string              `json:"admin_check" validate:"omitempty,oneof=pending valid issue"`
	IsOfficial    bool                `json:"is_official"`
	AuthorID      int64               `json:"author_id"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// UnmarshalJSON decodes a transaction payload with lenient amounts:
// numbers, numeric strings, malformed strings and nulls all land as
// decimals, with garbage and negatives coerced to zero. Ledger
// arithmetic never sees a broken amount.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		Income    json.RawMessage `json:"income"`
		Expense   json.RawMessage `json:"expense"`
		Writeoff  json.RawMessage `json:"writeoff"`
		FullValue json.RawMessage `json:"full_value"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.Income = coerceAmount(aux.Income)
	t.Expense = coerceAmount(aux.Expense)
	t.Writeoff = coerceAmount(aux.Writeoff)
	if isJSONNull(aux.FullValue) {
		t.FullValue = decimal.NullDecimal{}
	} else {
		t.FullValue = decimal.NewNullDecimal(coerceAmount(aux.FullValue))
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func coerceAmount(raw json.RawMessage) decimal.Decimal {
	if isJSONNull(raw) {
		return decimal.Zero
	}
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return decimal.Zero
		}
		s = unquoted
	}
	return ParseAmount(s)
}

// ParseAmount coerces a free-form amount string to a decimal. Malformed
// and negative values become zero; ledger amounts are never negative.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// PeriodReport is an aggregated summary over a date range, subject to admin
// approval and a one-time salary payout.
type PeriodReport struct {
	ID          int64           `json:"id"`
	MemoNo      string          `json:"memo_no"`
	StartDate   string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Writeoff    decimal.Decimal `json:"writeoff"`
	WorkedDays  int             `json:"worked_days" validate:"gte=0"`
	Bonus       decimal.Decimal `json:"bonus"`
	Fine        decimal.Decimal `json:"fine"`
	TotalSalary decimal.Decimal `json:"total_salary"`
	Note        string          `json:"note"`
	Status      string          `json:"status"` //pending //approved
	IsPaid      bool            `json:"is_paid"`
	AuthorID    int64           `json:"author_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SalarySettings is a singleton row: a fixed rate per worked day plus a
// percentage of the period's approved income.
type SalarySettings struct {
	DailyRate   decimal.Decimal `json:"daily_rate"`
	PercentRate decimal.Decimal `json:"percent_rate"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AuditLog keeps old/new snapshots of mutated or deleted records
type AuditLog struct {
	ID        int64     `json:"id"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	Action    string    `json:"action"`
	ActorID   int64     `json:"actor_id"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
