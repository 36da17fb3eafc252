package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

// Markup bands used by the front end to colour totals.
const (
	BandStrong   = "strong"
	BandPositive = "positive"
	BandNeutral  = "neutral"
	BandLoss     = "loss"
)

var bandStrongMin = decimal.NewFromInt(30)

// Markup is profit expressed as a percentage of expense. When expense
// is zero there is nothing to relate profit to, so the markup is
// undefined rather than 0%.
type Markup struct {
	Defined bool            `json:"defined"`
	Percent decimal.Decimal `json:"percent"`
	Display string          `json:"display"`
	Band    string          `json:"band"`
}

// ComputeMarkup derives the margin percentage from totals:
// (income - writeoff - expense) / expense * 100, rounded to 2 places.
func ComputeMarkup(income, expense, writeoff decimal.Decimal) Markup {
	if expense.LessThanOrEqual(decimal.Zero) {
		return Markup{Display: "—"}
	}
	profit := income.Sub(writeoff).Sub(expense)
	percent := profit.Div(expense).Mul(decimal.NewFromInt(100)).Round(2)

	var band string
	switch {
	case percent.GreaterThanOrEqual(bandStrongMin):
		band = BandStrong
	case percent.IsPositive():
		band = BandPositive
	case percent.IsZero():
		band = BandNeutral
	default:
		band = BandLoss
	}
	return Markup{
		Defined: true,
		Percent: percent,
		Display: percent.StringFixed(2) + "%",
		Band:    band,
	}
}

// TransactionMarkup computes the margin of a single record. Promotional
// sales are discounted, so the true cost base is the nominal full_value
// when the record carries one; the discounted expense otherwise.
func TransactionMarkup(tx *models.Transaction) Markup {
	expense := tx.Expense
	if Classify(tx).IsPromo && tx.FullValue.Valid && tx.FullValue.Decimal.IsPositive() {
		expense = tx.FullValue.Decimal
	}
	return ComputeMarkup(tx.Income, expense, tx.Writeoff)
}
