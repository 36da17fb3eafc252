package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"120.50", "120.5"},
		{" 99 ", "99"},
		{"abc", "0"},
		{"", "0"},
		{"-5", "0"},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got.String() != tc.expected {
			t.Fatalf("ParseAmount(%q) = %s, expected %s", tc.in, got, tc.expected)
		}
	}
}

func TestTransactionUnmarshalCoercesAmounts(t *testing.T) {
	cases := []struct {
		name      string
		payload   string
		income    string
		expense   string
		writeoff  string
		fullValue string // "" means NullDecimal must be invalid
	}{
		{
			name:    "plain numbers pass through",
			payload: `{"income": 120.5, "expense": 30, "writeoff": 0}`,
			income:  "120.5", expense: "30", writeoff: "0",
		},
		{
			name:    "numeric strings are accepted",
			payload: `{"income": "99", "expense": " 10.25 ", "writeoff": "0"}`,
			income:  "99", expense: "10.25", writeoff: "0",
		},
		{
			name:    "garbage strings become zero",
			payload: `{"income": "abc", "expense": "", "writeoff": "-"}`,
			income:  "0", expense: "0", writeoff: "0",
		},
		{
			name:    "negative amounts are clamped",
			payload: `{"income": -500, "expense": "-3", "writeoff": -1}`,
			income:  "0", expense: "0", writeoff: "0",
		},
		{
			name:    "absent amounts default to zero",
			payload: `{"title": "bread"}`,
			income:  "0", expense: "0", writeoff: "0",
		},
		{
			name:    "null full_value stays null",
			payload: `{"income": 1, "expense": 1, "writeoff": 0, "full_value": null}`,
			income:  "1", expense: "1", writeoff: "0",
		},
		{
			name:    "full_value string is coerced",
			payload: `{"income": 1, "expense": 1, "writeoff": 0, "full_value": "42.10"}`,
			income:  "1", expense: "1", writeoff: "0", fullValue: "42.1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tx Transaction
			if err := json.Unmarshal([]byte(tc.payload), &tx); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tx.Income.String() != tc.income {
				t.Errorf("income = %s, expected %s", tx.Income, tc.income)
			}
			if tx.Expense.String() != tc.expense {
				t.Errorf("expense = %s, expected %s", tx.Expense, tc.expense)
			}
			if tx.Writeoff.String() != tc.writeoff {
				t.Errorf("writeoff = %s, expected %s", tx.Writeoff, tc.writeoff)
			}
			if tc.fullValue == "" {
				if tx.FullValue.Valid {
					t.Errorf("full_value = %s, expected null", tx.FullValue.Decimal)
				}
			} else if !tx.FullValue.Valid || tx.FullValue.Decimal.String() != tc.fullValue {
				t.Errorf("full_value = %+v, expected %s", tx.FullValue, tc.fullValue)
			}
		})
	}
}

func TestTransactionUnmarshalKeepsOtherFields(t *testing.T) {
	payload := `{"title": "flour", "category": "trade", "income": "15", "payment_method": "bank card"}`
	var tx Transaction
	if err := json.Unmarshal([]byte(payload), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tx.Title != "flour" || tx.Category != "trade" || tx.PaymentMethod != "bank card" {
		t.Fatalf("non-amount fields lost: %+v", tx)
	}
	if !tx.Income.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("income = %s, expected 15", tx.Income)
	}
}
