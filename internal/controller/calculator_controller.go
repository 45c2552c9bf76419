// internal/controller/calculator_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/creditdesk/creditflow-backend/internal/service"
)

type CalculatorController struct {
    CalculatorService *service.CalculatorService
}

func (c *CalculatorController) Calculate(w http.ResponseWriter, r *http.Request) {
    var body struct {
        LoanAmount   float64 `json:"loan_amount" validate:"required,gt=0"`
        InterestRate float64 `json:"interest_rate" validate:"gte=0"`
        Tenure       int     `json:"tenure" validate:"required,gt=0"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "Invalid input")
        return
    }
    if err := validate.Struct(body); err != nil {
        writeValidationError(w, err)
        return
    }

    result, err := c.CalculatorService.Calculate(body.LoanAmount, body.InterestRate, body.Tenure)
    if err != nil {
        writeError(w, http.StatusBadRequest, err.Error())
        return
    }

    writeJSON(w, http.StatusOK, result)
}
