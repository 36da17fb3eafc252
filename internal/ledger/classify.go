package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

// Keyword sets for the payment method heuristics. Matching is a
// case-insensitive substring check and must stay total: an empty or
// garbage method simply matches nothing.
var (
	officialKeywords = []string{"bank", "банк", "card", "термінал"}
	promoKeywords    = []string{"bonus", "promo", "дія"}
)

// Classification is the financial role of a single transaction.
type Classification struct {
	IsDebt     bool `json:"is_debt"`
	IsCashDrop bool `json:"is_cash_drop"`
	IsOfficial bool `json:"is_official"`
	IsPromo    bool `json:"is_promo"`
}

// Classify derives the classification from the transaction's current
// fields only. It never fails, whatever the record looks like.
func Classify(tx *models.Transaction) Classification {
	method := strings.ToLower(tx.PaymentMethod)
	return Classification{
		IsDebt:     tx.PaymentStatus == models.PaymentStatusUnpaid,
		IsCashDrop: tx.Category == models.CategoryCashDrop,
		IsOfficial: tx.IsOfficial || containsAny(method, officialKeywords),
		IsPromo:    containsAny(method, promoKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// NormalizeAmounts clamps negative amounts on a record to zero in place.
// JSON payloads are already coerced by the models boundary; this guards
// records built in code.
func NormalizeAmounts(tx *models.Transaction) {
	if tx.Income.IsNegative() {
		tx.Income = decimal.Zero
	}
	if tx.Expense.IsNegative() {
		tx.Expense = decimal.Zero
	}
	if tx.Writeoff.IsNegative() {
		tx.Writeoff = decimal.Zero
	}
	if tx.FullValue.Valid && tx.FullValue.Decimal.IsNegative() {
		tx.FullValue = decimal.NullDecimal{}
	}
}
