package service

import (
	"log"
	"time"

	appErrors "github.com/creditdesk/creditflow-backend/internal/errors"
	"github.com/creditdesk/creditflow-backend/internal/finance"
	"github.com/creditdesk/creditflow-backend/internal/model"
	"github.com/creditdesk/creditflow-backend/internal/queue"
	"github.com/creditdesk/creditflow-backend/internal/repository"
)

type LoanService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	LoanRepo     repository.LoanRepositoryInterface
	Queue        queue.Queue
}

// EligibilityDecision is the outcome of one underwriting evaluation.
// interest_rate carries the requested rate, corrected_interest_rate the
// rate actually used for the installment.
type EligibilityDecision struct {
	CustomerID            int     `json:"customer_id"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interest_rate"`
	CorrectedInterestRate float64 `json:"corrected_interest_rate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    float64 `json:"monthly_installment"`
}

// LoanCreationResult is returned for both outcomes of a create-loan
// request. Non-approval is a completed result, not an error: loan_id is
// zero and the installment is zeroed out.
type LoanCreationResult struct {
	LoanID             int     `json:"loan_id"`
	CustomerID         int     `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Message            string  `json:"message"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

// LoanDetails is the single-loan view with the owning customer embedded.
type LoanDetails struct {
	LoanID             int            `json:"loan_id"`
	Customer           model.Customer `json:"customer"`
	LoanAmount         float64        `json:"loan_amount"`
	InterestRate       float64        `json:"interest_rate"`
	MonthlyInstallment float64        `json:"monthly_installment"`
	Tenure             int            `json:"tenure"`
}

// CreditScore derives a [0,100] repayment-reliability heuristic from the
// customer's loan history. A customer whose active exposure already
// exceeds their approved limit scores 0 regardless of history.
func (s *LoanService) CreditScore(customerID int, approvedLimit float64) (int, error) {
	loans, err := s.LoanRepo.ListByCustomer(customerID)
	if err != nil {
		return 0, err
	}

	currentExposure := 0.0
	totalPaidOnTime := 0
	for _, l := range loans {
		if l.IsActive {
			currentExposure += l.LoanAmount
		}
		totalPaidOnTime += l.EMIsPaidOnTime
	}

	if currentExposure > approvedLimit {
		return 0, nil
	}

	score := 50 + 2*totalPaidOnTime + 5*len(loans)
	if score > 100 {
		score = 100
	}
	return score, nil
}

// evaluate is the one underwriting decision path. Both CheckEligibility
// and CreateLoan go through it, so preview and creation cannot disagree.
func (s *LoanService) evaluate(customer *model.Customer, amount, rate float64, tenure int) (*EligibilityDecision, error) {
	score, err := s.CreditScore(customer.CustomerID, customer.ApprovedLimit)
	if err != nil {
		return nil, err
	}

	approved := false
	correctedRate := rate

	// Tiered rate floor: strong scores keep the requested rate, middle
	// tiers require at least 12% / 16%, weak scores are rejected outright.
	switch {
	case score > 50:
		approved = true
	case score > 30:
		if rate >= 12 {
			approved = true
		} else {
			correctedRate = 12
		}
	case score > 10:
		if rate >= 16 {
			approved = true
		} else {
			correctedRate = 16
		}
	}

	// One EMI evaluation per candidate rate; the rescue branch below
	// reuses it instead of recomputing with identical arguments.
	emi, err := finance.EMI(amount, correctedRate, tenure)
	if err != nil {
		return nil, err
	}

	affordable := emi <= 0.5*customer.MonthlySalary
	if !affordable {
		approved = false
	}

	// Rescue: a request rejected only for undershooting the rate floor is
	// still approvable at the corrected rate when its installment fits.
	if !approved && score > 10 && correctedRate > rate && affordable {
		approved = true
	}

	return &EligibilityDecision{
		CustomerID:            customer.CustomerID,
		Approval:              approved,
		InterestRate:          rate,
		CorrectedInterestRate: correctedRate,
		Tenure:                tenure,
		MonthlyInstallment:    emi,
	}, nil
}

// CheckEligibility previews the underwriting decision without side effects.
func (s *LoanService) CheckEligibility(customerID int, amount, rate float64, tenure int) (*EligibilityDecision, error) {
	customer, err := s.CustomerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewCustomerNotFound(customerID)
	}

	return s.evaluate(customer, amount, rate, tenure)
}

// CreateLoan re-runs the eligibility decision server-side (a previously
// previewed decision is never trusted) and, when approved, persists the
// loan and the debt increase as one transaction.
func (s *LoanService) CreateLoan(customerID int, amount, rate float64, tenure int) (*LoanCreationResult, error) {
	customer, err := s.CustomerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewCustomerNotFound(customerID)
	}

	decision, err := s.evaluate(customer, amount, rate, tenure)
	if err != nil {
		return nil, err
	}

	if !decision.Approval {
		return &LoanCreationResult{
			LoanID:             0,
			CustomerID:         customerID,
			LoanApproved:       false,
			Message:            "Loan not approved based on eligibility criteria",
			MonthlyInstallment: 0,
		}, nil
	}

	startDate := time.Now()
	endDate := startDate.AddDate(0, tenure, 0)

	loan := &model.Loan{
		CustomerID:         customerID,
		LoanAmount:         amount,
		InterestRate:       decision.CorrectedInterestRate,
		Tenure:             tenure,
		MonthlyInstallment: decision.MonthlyInstallment,
		EMIsPaidOnTime:     0,
		StartDate:          startDate,
		EndDate:            endDate,
		IsActive:           true,
	}

	// Debt tracks principal only, matching the exposure used for scoring.
	newDebt := customer.CurrentDebt + amount

	if err := s.LoanRepo.CreateWithDebtUpdate(loan, customerID, newDebt); err != nil {
		return nil, err
	}

	if s.Queue != nil {
		if err := s.Queue.Publish("loan_created", loan.LoanID); err != nil {
			log.Println("⚠️ failed to enqueue loan confirmation:", err)
		}
	}

	return &LoanCreationResult{
		LoanID:             loan.LoanID,
		CustomerID:         customerID,
		LoanApproved:       true,
		Message:            "Loan approved",
		MonthlyInstallment: decision.MonthlyInstallment,
	}, nil
}

// GetLoanDetails fetches a loan plus its owning customer
func (s *LoanService) GetLoanDetails(loanID int) (*LoanDetails, error) {
	loan, err := s.LoanRepo.GetByID(loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, appErrors.NewLoanNotFound(loanID)
	}

	customer, err := s.CustomerRepo.GetByID(loan.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewCustomerNotFound(loan.CustomerID)
	}

	return &LoanDetails{
		LoanID:             loan.LoanID,
		Customer:           *customer,
		LoanAmount:         loan.LoanAmount,
		InterestRate:       loan.InterestRate,
		MonthlyInstallment: loan.MonthlyInstallment,
		Tenure:             loan.Tenure,
	}, nil
}

// ListCustomerLoans returns a customer's loans with the repayments_left
// placeholder (always the full tenure; nothing decrements it yet).
func (s *LoanService) ListCustomerLoans(customerID int) ([]model.LoanWithRepayments, error) {
	loans, err := s.LoanRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.LoanWithRepayments, len(loans))
	for i, l := range loans {
		result[i] = model.LoanWithRepayments{
			Loan:           l,
			RepaymentsLeft: l.Tenure,
		}
	}
	return result, nil
}
