// internal/handler/customer_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/creditdesk/creditflow-backend/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CustomerHandler holds the dependencies for customer-related HTTP handlers
type CustomerHandler struct {
	Service *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler with the given service
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: svc}
}

// RegisterCustomerHandler handles customer registration
func (h *CustomerHandler) RegisterCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName     string  `json:"first_name" validate:"required"`
		LastName      string  `json:"last_name" validate:"required"`
		PhoneNumber   string  `json:"phone_number" validate:"required,min=10"`
		Age           int     `json:"age" validate:"required,gte=18,lte=100"`
		MonthlySalary float64 `json:"monthly_salary" validate:"gte=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(payload); err != nil {
		field := ""
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			field = errs[0].Field()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Validation failed",
			"field":   field,
		})
		return
	}

	customer, err := h.Service.RegisterCustomer(payload.FirstName, payload.LastName, payload.PhoneNumber, payload.Age, payload.MonthlySalary)
	if err != nil {
		// duplicate phone lands here as a constraint violation
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Internal Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

// ListCustomersHandler returns all registered customers
func (h *CustomerHandler) ListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.ListCustomers()
	if err != nil {
		http.Error(w, "failed to fetch customers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}
