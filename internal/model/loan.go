// internal/model/loan.go
package model

import "time"

type Loan struct {
    LoanID             int       `db:"loan_id" json:"loan_id"`
    CustomerID         int       `db:"customer_id" json:"customer_id"`
    LoanAmount         float64   `db:"loan_amount" json:"loan_amount"`
    InterestRate       float64   `db:"interest_rate" json:"interest_rate"` // corrected rate actually applied
    Tenure             int       `db:"tenure" json:"tenure"`               // months
    MonthlyInstallment float64   `db:"monthly_installment" json:"monthly_installment"`
    EMIsPaidOnTime     int       `db:"emis_paid_on_time" json:"emis_paid_on_time"`
    StartDate          time.Time `db:"start_date" json:"start_date"`
    EndDate            time.Time `db:"end_date" json:"end_date"`
    IsActive           bool      `db:"is_active" json:"is_active"`
}

// LoanWithRepayments is the per-customer loan view. repayments_left is a
// placeholder that always mirrors tenure; payment tracking does not
// decrement it yet.
type LoanWithRepayments struct {
    Loan
    RepaymentsLeft int `json:"repayments_left"`
}
