package repository

import (
	"database/sql"

	"github.com/creditdesk/creditflow-backend/internal/model"
)

// CustomerRepositoryInterface defines methods used by services
type CustomerRepositoryInterface interface {
	Create(c *model.Customer) error
	GetByID(id int) (*model.Customer, error)
	ListAll() ([]model.Customer, error)
	UpdateDebt(id int, newDebt float64) error
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// Create inserts a new customer and fills in the assigned customer_id.
// The phone_number column carries a unique constraint; a duplicate phone
// surfaces as the driver's constraint error.
func (r *CustomerRepository) Create(c *model.Customer) error {
	query := `
        INSERT INTO customers (first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING customer_id
    `
	return r.DB.QueryRow(query, c.FirstName, c.LastName, c.PhoneNumber, c.Age, c.MonthlySalary, c.ApprovedLimit, c.CurrentDebt).Scan(&c.CustomerID)
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
	query := `
        SELECT customer_id, first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt
        FROM customers
        WHERE customer_id = $1
    `
	row := r.DB.QueryRow(query, id)

	var c model.Customer
	if err := row.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.PhoneNumber, &c.Age, &c.MonthlySalary, &c.ApprovedLimit, &c.CurrentDebt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches all registered customers
func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	query := `
        SELECT customer_id, first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt
        FROM customers
        ORDER BY customer_id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.PhoneNumber, &c.Age, &c.MonthlySalary, &c.ApprovedLimit, &c.CurrentDebt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// UpdateDebt overwrites a customer's current_debt
func (r *CustomerRepository) UpdateDebt(id int, newDebt float64) error {
	query := `UPDATE customers SET current_debt=$1 WHERE customer_id=$2`
	_, err := r.DB.Exec(query, newDebt, id)
	return err
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
