// internal/service/template_service.go
package service

import (
    "fmt"
    "strings"

    "github.com/creditdesk/creditflow-backend/internal/model"
)

const confirmationTemplate = "Hi {first_name} {last_name}, your loan #{loan_id} of {loan_amount} is approved at {interest_rate}%. Monthly installment: {monthly_installment} over {tenure} months."

func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        if v == "" {
            v = "<unknown>"
        }
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

// ConfirmationMessage renders the notice delivered after a loan is approved.
func ConfirmationMessage(loan *model.Loan, customer *model.Customer) string {
    return RenderTemplate(confirmationTemplate, map[string]string{
        "first_name":          customer.FirstName,
        "last_name":           customer.LastName,
        "loan_id":             fmt.Sprintf("%d", loan.LoanID),
        "loan_amount":         fmt.Sprintf("%.2f", loan.LoanAmount),
        "interest_rate":       fmt.Sprintf("%.2f", loan.InterestRate),
        "monthly_installment": fmt.Sprintf("%.2f", loan.MonthlyInstallment),
        "tenure":              fmt.Sprintf("%d", loan.Tenure),
    })
}
