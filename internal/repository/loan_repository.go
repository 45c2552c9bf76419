package repository

import (
	"database/sql"

	"github.com/creditdesk/creditflow-backend/internal/model"
)

type LoanRepositoryInterface interface {
	// CreateWithDebtUpdate inserts the loan and updates the owning
	// customer's current_debt inside one transaction.
	CreateWithDebtUpdate(l *model.Loan, customerID int, newDebt float64) error
	GetByID(id int) (*model.Loan, error)
	ListByCustomer(customerID int) ([]model.Loan, error)
}

type LoanRepository struct {
	DB *sql.DB
}

// CreateWithDebtUpdate persists an approved loan and the debt increase as
// one unit. A failure after the insert rolls the insert back, so a loan
// can never exist without its debt update.
func (r *LoanRepository) CreateWithDebtUpdate(l *model.Loan, customerID int, newDebt float64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
        INSERT INTO loans (customer_id, loan_amount, interest_rate, tenure, monthly_installment, emis_paid_on_time, start_date, end_date, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING loan_id
    `
	err = tx.QueryRow(insert,
		l.CustomerID, l.LoanAmount, l.InterestRate, l.Tenure,
		l.MonthlyInstallment, l.EMIsPaidOnTime, l.StartDate, l.EndDate, l.IsActive,
	).Scan(&l.LoanID)
	if err != nil {
		return err
	}

	update := `UPDATE customers SET current_debt=$1 WHERE customer_id=$2`
	if _, err := tx.Exec(update, newDebt, customerID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID fetches a loan by ID
func (r *LoanRepository) GetByID(id int) (*model.Loan, error) {
	query := `
        SELECT loan_id, customer_id, loan_amount, interest_rate, tenure, monthly_installment, emis_paid_on_time, start_date, end_date, is_active
        FROM loans
        WHERE loan_id=$1
    `
	var l model.Loan
	err := r.DB.QueryRow(query, id).Scan(
		&l.LoanID, &l.CustomerID, &l.LoanAmount, &l.InterestRate, &l.Tenure,
		&l.MonthlyInstallment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate, &l.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// ListByCustomer fetches every loan a customer has ever held. Order is
// irrelevant to scoring.
func (r *LoanRepository) ListByCustomer(customerID int) ([]model.Loan, error) {
	query := `
        SELECT loan_id, customer_id, loan_amount, interest_rate, tenure, monthly_installment, emis_paid_on_time, start_date, end_date, is_active
        FROM loans
        WHERE customer_id=$1
    `
	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []model.Loan{}
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(
			&l.LoanID, &l.CustomerID, &l.LoanAmount, &l.InterestRate, &l.Tenure,
			&l.MonthlyInstallment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate, &l.IsActive,
		); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, nil
}

var _ LoanRepositoryInterface = (*LoanRepository)(nil)
