package service

import (
	"log"

	"github.com/creditdesk/creditflow-backend/internal/model"
)

// LoanReader defines the lookups the notification worker needs
type LoanReader interface {
	GetByID(id int) (*model.Loan, error)
}

type CustomerReader interface {
	GetByID(id int) (*model.Customer, error)
}

// Worker delivers loan confirmation notices for queued loan IDs
type Worker struct {
	LoanRepo     LoanReader
	CustomerRepo CustomerReader
	JobChan      <-chan int
	SendFunc     func(msg string) bool
}

// Constructor
func NewWorker(loanRepo LoanReader, customerRepo CustomerReader, jobChan <-chan int, sendFunc func(msg string) bool) *Worker {
	return &Worker{
		LoanRepo:     loanRepo,
		CustomerRepo: customerRepo,
		JobChan:      jobChan,
		SendFunc:     sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for loanID := range w.JobChan {
		loan, err := w.LoanRepo.GetByID(loanID)
		if err != nil {
			log.Println("Failed to get loan:", err)
			continue
		}
		if loan == nil {
			log.Println("Loan not found:", loanID)
			continue
		}

		customer, err := w.CustomerRepo.GetByID(loan.CustomerID)
		if err != nil || customer == nil {
			log.Println("Failed to get customer for loan:", loanID)
			continue
		}

		msg := ConfirmationMessage(loan, customer)
		if ok := w.SendFunc(msg); !ok {
			log.Println("Failed to deliver confirmation for loan:", loanID)
		}
	}
}
