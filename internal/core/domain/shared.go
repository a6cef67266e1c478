package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type ID string

const maxIDLength = 64

// ValidateID only checks the shape every store accepts; each store applies
// its own format rules on top (ObjectID hex, UUID).
func ValidateID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return !strings.ContainsAny(id, " \t\r\n/")
}

// Amount is a money value in cents.
type Amount int

const (
	// MaxPrice caps unit prices at 10,000,000,000.00.
	MaxPrice Amount = 1_000_000_000_000
	// MaxStockQuantity is the largest stock or sale quantity every store
	// can hold (a 32-bit column in postgres).
	MaxStockQuantity = math.MaxInt32
)

func NewAmountFromCents(cents int) Amount {
	return Amount(cents)
}

func NewAmountFromValue(value int) Amount {
	return Amount(value * 100)
}

// NewAmountFromDecimal rounds half away from zero to whole cents.
func NewAmountFromDecimal(value decimal.Decimal) Amount {
	return Amount(value.Shift(2).Round(0).IntPart())
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Sub(b Amount) Amount {
	return a - b
}

func (a Amount) Multiply(b int) Amount {
	return a * Amount(b)
}

// MultiplyChecked reports false when a*n does not fit in an Amount or n is
// negative.
func (a Amount) MultiplyChecked(n int) (Amount, bool) {
	if n < 0 {
		return 0, false
	}
	if n == 0 || a == 0 {
		return 0, true
	}
	magnitude := int64(a)
	if magnitude < 0 {
		if magnitude == math.MinInt64 {
			return 0, false
		}
		magnitude = -magnitude
	}
	if magnitude > math.MaxInt64/int64(n) {
		return 0, false
	}
	return a * Amount(n), true
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) Ptr() *Amount {
	return &a
}

type Event interface {
	GetName() string
	GetEntityName() string
}
