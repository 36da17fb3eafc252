package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		tx       models.Transaction
		expected Classification
	}{
		{
			name:     "unpaid trade sale is a debt",
			tx:       models.Transaction{Category: "trade", PaymentStatus: "unpaid", PaymentMethod: "cash"},
			expected: Classification{IsDebt: true},
		},
		{
			name:     "cash drop",
			tx:       models.Transaction{Category: "cash_drop", PaymentStatus: "paid"},
			expected: Classification{IsCashDrop: true},
		},
		{
			name:     "bank keyword marks official",
			tx:       models.Transaction{PaymentStatus: "paid", PaymentMethod: "Bank transfer"},
			expected: Classification{IsOfficial: true},
		},
		{
			name:     "ukrainian terminal keyword marks official",
			tx:       models.Transaction{PaymentStatus: "paid", PaymentMethod: "Термінал ПриватБанк"},
			expected: Classification{IsOfficial: true},
		},
		{
			name:     "explicit flag wins over method",
			tx:       models.Transaction{PaymentStatus: "paid", PaymentMethod: "cash", IsOfficial: true},
			expected: Classification{IsOfficial: true},
		},
		{
			// "картка" does not contain the Latin keyword "card", so the
			// method is promo-only unless a bank/terminal keyword appears
			name:     "promo method",
			tx:       models.Transaction{PaymentStatus: "paid", PaymentMethod: "Дія картка"},
			expected: Classification{IsPromo: true},
		},
		{
			name:     "promo through a terminal is also official",
			tx:       models.Transaction{PaymentStatus: "paid", PaymentMethod: "Дія, термінал"},
			expected: Classification{IsOfficial: true, IsPromo: true},
		},
		{
			name:     "bonus method",
			tx:       models.Transaction{PaymentStatus: "paid", PaymentMethod: "bonus"},
			expected: Classification{IsPromo: true},
		},
		{
			name:     "empty method never panics",
			tx:       models.Transaction{},
			expected: Classification{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(&tc.tx)
			if got != tc.expected {
				t.Fatalf("Classify() = %+v, expected %+v", got, tc.expected)
			}
			// classification is a pure function of current fields
			if again := Classify(&tc.tx); again != got {
				t.Fatalf("Classify() not stable: %+v then %+v", got, again)
			}
		})
	}
}

func TestNormalizeAmounts(t *testing.T) {
	tx := models.Transaction{
		Income:   decimal.NewFromInt(-10),
		Expense:  decimal.NewFromInt(20),
		Writeoff: decimal.NewFromInt(-1),
	}
	NormalizeAmounts(&tx)
	if !tx.Income.IsZero() || !tx.Writeoff.IsZero() {
		t.Fatalf("negative amounts not clamped: %+v", tx)
	}
	if !tx.Expense.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("valid expense changed: %s", tx.Expense)
	}
}
