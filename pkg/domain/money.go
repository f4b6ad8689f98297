// Package domain contains the financial entities and the transaction query
// engine: filtering, sorting and aggregation over in-memory collections.
package domain

import "fmt"

// Money is a monetary amount in milliunits, 1/1000 of the major currency
// unit. Integer representation avoids floating-point drift in sums; $1.23 is
// 1230 milliunits. Negative amounts are expenses, positive amounts income.
type Money struct {
	milliunits int64
}

// FromMilliunits creates a Money value from milliunits.
func FromMilliunits(milliunits int64) Money {
	return Money{milliunits: milliunits}
}

// Milliunits returns the amount in milliunits.
func (m Money) Milliunits() int64 {
	return m.milliunits
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{milliunits: m.milliunits + other.milliunits}
}

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m.milliunits < 0 {
		return Money{milliunits: -m.milliunits}
	}
	return m
}

// IsNegative reports whether the amount is an expense.
func (m Money) IsNegative() bool {
	return m.milliunits < 0
}

// IsPositive reports whether the amount is income. Zero is neither.
func (m Money) IsPositive() bool {
	return m.milliunits > 0
}

// Units returns the amount in major currency units.
func (m Money) Units() float64 {
	return float64(m.milliunits) / 1000.0
}

func (m Money) String() string {
	return fmt.Sprintf("%.3f", m.Units())
}
