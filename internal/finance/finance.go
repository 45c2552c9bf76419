// internal/finance/finance.go
package finance

import (
    "errors"
    "fmt"
    "math"
)

// ErrInvalidRate is returned when the annual rate is negative.
var ErrInvalidRate = errors.New("interest rate must not be negative")

// roundTo2Decimals rounds a float64 to currency precision
func roundTo2Decimals(value float64) float64 {
    return math.Round(value*100) / 100
}

// ApprovedLimit computes the credit ceiling granted at registration:
// 36 x monthly salary, rounded to the nearest multiple of 100,000.
// Halves round away from zero (math.Round), not banker's rounding.
func ApprovedLimit(monthlySalary float64) float64 {
    rawLimit := 36 * monthlySalary
    return math.Round(rawLimit/100000) * 100000
}

// EMI computes the equated monthly installment for an amortizing loan,
// rounded to 2 decimals. annualRate is a percentage, e.g. 12.5.
// A zero rate degenerates to straight-line principal/tenure; a negative
// rate is rejected so the formula can never produce NaN or Inf.
func EMI(principal, annualRate float64, tenureMonths int) (float64, error) {
    if principal <= 0 {
        return 0, fmt.Errorf("principal must be positive, got %.2f", principal)
    }
    if tenureMonths <= 0 {
        return 0, fmt.Errorf("tenure must be positive, got %d", tenureMonths)
    }
    if annualRate < 0 {
        return 0, ErrInvalidRate
    }

    if annualRate == 0 {
        return roundTo2Decimals(principal / float64(tenureMonths)), nil
    }

    r := annualRate / (12 * 100)
    n := float64(tenureMonths)
    factor := math.Pow(1+r, n)
    emi := principal * r * factor / (factor - 1)
    return roundTo2Decimals(emi), nil
}
