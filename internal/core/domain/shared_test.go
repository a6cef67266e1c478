package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"object id hex", "aabbccddee112233aabbccdd", true},
		{"uuid", "5f0c6f0e-8d7e-4d8b-9b7e-0a4f7b1d2c3e", true},
		{"empty string", "", false},
		{"contains space", "aabb ccdd", false},
		{"contains slash", "aabb/ccdd", false},
		{"too long", string(make([]byte, 65)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateID(tt.id); got != tt.want {
				t.Errorf("ValidateID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestNewAmountFromDecimal(t *testing.T) {
	tests := []struct {
		value string
		want  Amount
	}{
		{"15", 1500},
		{"12.34", 1234},
		{"0.005", 1},
		{"0.004", 0},
		{"-0.005", -1},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := NewAmountFromDecimal(decimal.RequireFromString(tt.value)); got != tt.want {
				t.Errorf("NewAmountFromDecimal(%s) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestAmount_Decimal(t *testing.T) {
	tests := map[Amount]string{
		NewAmountFromValue(450):  "450",
		NewAmountFromCents(1234): "12.34",
		Amount(5):                "0.05",
		Amount(-250):             "-2.5",
	}
	for amount, want := range tests {
		if got := amount.Decimal().String(); got != want {
			t.Errorf("Amount(%d).Decimal() = %s, want %s", amount, got, want)
		}
	}
}

// A sale of 30 units at price 15 and cost 10.
func TestAmount_SaleArithmetic(t *testing.T) {
	price := NewAmountFromValue(15)
	cost := NewAmountFromValue(10)

	total := price.Multiply(30)
	if total != 45000 {
		t.Fatalf("expected total 45000, got %d", total)
	}
	profit := price.Sub(cost).Multiply(30)
	if profit != 15000 {
		t.Fatalf("expected profit 15000, got %d", profit)
	}
	if got := total.Sub(cost.Multiply(30)); got != profit {
		t.Fatalf("expected revenue minus cost to equal profit, got %d", got)
	}
	if loss := cost.Sub(price); loss != -500 {
		t.Fatalf("expected a negative margin when selling below cost, got %d", loss)
	}
	if got := total.Add(profit); got != 60000 {
		t.Fatalf("expected 60000, got %d", got)
	}
}

func TestAmount_Ptr(t *testing.T) {
	a := NewAmountFromCents(99)
	p := a.Ptr()
	*p = 1
	if a != 99 {
		t.Fatalf("expected Ptr to copy, original changed to %d", a)
	}
}

func TestAmount_MultiplyChecked(t *testing.T) {
	tests := []struct {
		name   string
		a      Amount
		n      int
		want   Amount
		wantOK bool
	}{
		{"fits", NewAmountFromValue(15), 30, 45000, true},
		{"zero quantity", MaxPrice, 0, 0, true},
		{"negative profit fits", -500, 3, -1500, true},
		{"max price by a million", MaxPrice, 1_000_000, MaxPrice * 1_000_000, true},
		{"overflows int64", NewAmountFromValue(90_000_000_000_000), 1_000_000, 0, false},
		{"negative overflow", -NewAmountFromValue(90_000_000_000_000), 1_000_000, 0, false},
		{"negative quantity", 100, -1, 0, false},
		{"min int64", Amount(math.MinInt64), 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.MultiplyChecked(tt.n)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("(%d).MultiplyChecked(%d) = %d, %v, want %d, %v", tt.a, tt.n, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProduct_CanTotal(t *testing.T) {
	product := NewProduct("Aceite", ProductDetails{}, NewAmountFromValue(10), NewAmountFromValue(90_000_000_000_000), 1_000_000)

	if !product.CanTotal(1) {
		t.Fatal("expected a single unit to fit")
	}
	if product.CanTotal(1_000_000) {
		t.Fatal("expected a million units to overflow the total")
	}
}
