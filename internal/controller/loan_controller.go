// internal/controller/loan_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"
    "github.com/streadway/amqp"

    appErrors "github.com/creditdesk/creditflow-backend/internal/errors"
    "github.com/creditdesk/creditflow-backend/internal/service"
)

type LoanController struct {
    LoanService *service.LoanService
    AmqpURL     string
}

// loanRequest covers both check-eligibility and create-loan, which share
// an input shape.
type loanRequest struct {
    CustomerID   int     `json:"customer_id" validate:"required"`
    LoanAmount   float64 `json:"loan_amount" validate:"required,gt=0"`
    InterestRate float64 `json:"interest_rate" validate:"required,gt=0"`
    Tenure       int     `json:"tenure" validate:"required,gt=0"`
}

func (c *LoanController) CheckEligibility(w http.ResponseWriter, r *http.Request) {
    var body loanRequest
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "Invalid input")
        return
    }
    if err := validate.Struct(body); err != nil {
        writeValidationError(w, err)
        return
    }

    decision, err := c.LoanService.CheckEligibility(body.CustomerID, body.LoanAmount, body.InterestRate, body.Tenure)
    if err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            writeError(w, http.StatusNotFound, "Customer not found")
            return
        }
        writeError(w, http.StatusInternalServerError, "Server error")
        return
    }

    writeJSON(w, http.StatusOK, decision)
}

func (c *LoanController) CreateLoan(w http.ResponseWriter, r *http.Request) {
    var body loanRequest
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "Invalid input")
        return
    }
    if err := validate.Struct(body); err != nil {
        writeValidationError(w, err)
        return
    }

    result, err := c.LoanService.CreateLoan(body.CustomerID, body.LoanAmount, body.InterestRate, body.Tenure)
    if err != nil {
        var notFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &notFound) {
            writeError(w, http.StatusNotFound, "Customer not found")
            return
        }
        writeError(w, http.StatusInternalServerError, "Server error")
        return
    }

    // Non-approval is still a completed creation request.
    if result.LoanApproved {
        c.publishLoanNotification(result.LoanID)
    }

    writeJSON(w, http.StatusCreated, result)
}

// publishLoanNotification hands the confirmation job to RabbitMQ. The
// loan is already committed, so a broker outage only costs the notice.
func (c *LoanController) publishLoanNotification(loanID int) {
    if c.AmqpURL == "" {
        return
    }

    conn, err := amqp.Dial(c.AmqpURL)
    if err != nil {
        log.Println("Failed to connect to queue:", err)
        return
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        log.Println("Failed to open queue channel:", err)
        return
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        "loan_notifications",
        true,
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        log.Println("Failed to declare queue:", err)
        return
    }

    payload, _ := json.Marshal(map[string]int{"loan_id": loanID})
    err = ch.Publish(
        "",
        q.Name,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Body:        payload,
        },
    )
    if err != nil {
        log.Println("Failed to publish loan notification:", err)
    }
}

func (c *LoanController) GetLoan(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "loan_id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        writeError(w, http.StatusBadRequest, "invalid loan id")
        return
    }

    details, err := c.LoanService.GetLoanDetails(id)
    if err != nil {
        var loanNotFound *appErrors.ErrLoanNotFound
        if errors.As(err, &loanNotFound) {
            writeError(w, http.StatusNotFound, "Loan not found")
            return
        }
        var customerNotFound *appErrors.ErrCustomerNotFound
        if errors.As(err, &customerNotFound) {
            writeError(w, http.StatusNotFound, "Customer not found for this loan")
            return
        }
        writeError(w, http.StatusInternalServerError, "Server error")
        return
    }

    writeJSON(w, http.StatusOK, details)
}

func (c *LoanController) ListCustomerLoans(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "customer_id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        writeError(w, http.StatusBadRequest, "invalid customer id")
        return
    }

    loans, err := c.LoanService.ListCustomerLoans(id)
    if err != nil {
        writeError(w, http.StatusInternalServerError, "Server error")
        return
    }

    writeJSON(w, http.StatusOK, loans)
}
