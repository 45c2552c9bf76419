// internal/model/customer.go
package model

type Customer struct {
    CustomerID    int     `db:"customer_id" json:"customer_id"`
    FirstName     string  `db:"first_name" json:"first_name"`
    LastName      string  `db:"last_name" json:"last_name"`
    PhoneNumber   string  `db:"phone_number" json:"phone_number"`
    Age           int     `db:"age" json:"age"`
    MonthlySalary float64 `db:"monthly_salary" json:"monthly_salary"`
    ApprovedLimit float64 `db:"approved_limit" json:"approved_limit"`
    CurrentDebt   float64 `db:"current_debt" json:"current_debt"`
}
