// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
    CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
    return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id int) error {
    return &ErrCustomerNotFound{CustomerID: id}
}

// ErrLoanNotFound is a sentinel error
type ErrLoanNotFound struct {
    LoanID int
}

func (e *ErrLoanNotFound) Error() string {
    return fmt.Sprintf("loan with ID %d not found", e.LoanID)
}

func NewLoanNotFound(id int) error {
    return &ErrLoanNotFound{LoanID: id}
}

// ErrValidation reports the first offending field of a rejected payload.
type ErrValidation struct {
    Field  string
    Reason string
}

func (e *ErrValidation) Error() string {
    return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
    return &ErrValidation{Field: field, Reason: reason}
}
