package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/models"
)

func TestComputeMarkup(t *testing.T) {
	cases := []struct {
		name     string
		income   int64
		expense  int64
		writeoff int64
		defined  bool
		percent  string
		band     string
	}{
		{"zero expense is undefined", 100, 0, 0, false, "", ""},
		{"strong margin", 150, 100, 0, true, "50", BandStrong},
		{"positive margin", 120, 100, 0, true, "20", BandPositive},
		{"neutral margin", 100, 100, 0, true, "0", BandNeutral},
		{"loss", 80, 100, 0, true, "-20", BandLoss},
		{"writeoff reduces profit", 150, 100, 30, true, "20", BandPositive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ComputeMarkup(decimal.NewFromInt(tc.income), decimal.NewFromInt(tc.expense), decimal.NewFromInt(tc.writeoff))
			if m.Defined != tc.defined {
				t.Fatalf("Defined = %v, expected %v", m.Defined, tc.defined)
			}
			if !tc.defined {
				if m.Display != "—" {
					t.Fatalf("undefined markup displays %q, expected em dash", m.Display)
				}
				return
			}
			if !m.Percent.Equal(decimal.RequireFromString(tc.percent)) {
				t.Fatalf("Percent = %s, expected %s", m.Percent, tc.percent)
			}
			if m.Band != tc.band {
				t.Fatalf("Band = %q, expected %q", m.Band, tc.band)
			}
		})
	}
}

func TestTransactionMarkupPromoUsesFullValue(t *testing.T) {
	promo := &models.Transaction{
		Income:        decimal.NewFromInt(120),
		Expense:       decimal.NewFromInt(60), // discounted cost
		PaymentMethod: "promo",
		FullValue:     decimal.NewNullDecimal(decimal.NewFromInt(100)),
	}
	m := TransactionMarkup(promo)
	if !m.Percent.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("promo markup = %s, expected 20 (against full_value)", m.Percent)
	}

	promo.FullValue = decimal.NullDecimal{}
	m = TransactionMarkup(promo)
	if !m.Percent.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("promo markup without full_value = %s, expected 100 (against expense)", m.Percent)
	}
}
