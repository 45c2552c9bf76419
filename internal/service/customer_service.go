package service

import (
	"github.com/creditdesk/creditflow-backend/internal/finance"
	"github.com/creditdesk/creditflow-backend/internal/model"
	"github.com/creditdesk/creditflow-backend/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
}

// RegisterCustomer creates a customer with a derived approved limit.
// The limit is computed exactly once here and never recomputed.
func (s *CustomerService) RegisterCustomer(firstName, lastName, phoneNumber string, age int, monthlySalary float64) (*model.Customer, error) {
	c := &model.Customer{
		FirstName:     firstName,
		LastName:      lastName,
		PhoneNumber:   phoneNumber,
		Age:           age,
		MonthlySalary: monthlySalary,
		ApprovedLimit: finance.ApprovedLimit(monthlySalary),
		CurrentDebt:   0,
	}

	if err := s.CustomerRepo.Create(c); err != nil {
		return nil, err
	}

	return c, nil
}

// ListCustomers fetches all registered customers
func (s *CustomerService) ListCustomers() ([]model.Customer, error) {
	return s.CustomerRepo.ListAll()
}
