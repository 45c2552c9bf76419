package queue

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/creditdesk/creditflow-backend/internal/repository"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			log.Printf("Job processed successfully: %+v\n", job.Payload)
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartLoanCreatedSubscriber wires the confirmation notice for freshly
// approved loans. The payload is the new loan's ID.
func StartLoanCreatedSubscriber(q Queue, loanRepo repository.LoanRepositoryInterface, customerRepo repository.CustomerRepositoryInterface) {
	go func() {
		err := q.Subscribe("loan_created", func(payload any) error {
			loanID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil // bad payload, retrying won't help
			}

			log.Println("📩 Processing loan confirmation for loan ID:", loanID)

			loan, err := loanRepo.GetByID(loanID)
			if err != nil {
				log.Println("⚠️ Failed to fetch loan:", err)
				return err
			}
			if loan == nil {
				log.Println("⚠️ Loan not found for ID:", loanID)
				return nil // no retry
			}

			customer, err := customerRepo.GetByID(loan.CustomerID)
			if err != nil {
				log.Println("⚠️ Failed to fetch customer:", err)
				return err
			}
			if customer == nil {
				log.Println("⚠️ Customer not found for loan:", loanID)
				return nil
			}

			notice := fmt.Sprintf(
				"Hi %s, your loan #%d of %.2f at %.2f%% is approved. Monthly installment: %.2f over %d months.",
				customer.FirstName, loan.LoanID, loan.LoanAmount, loan.InterestRate, loan.MonthlyInstallment, loan.Tenure,
			)

			if err := MockSender(notice); err != nil {
				log.Println("⚠️ Failed to send confirmation:", err)
				return err // triggers retry in queue
			}

			log.Println("✅ Confirmation sent for loan:", loanID)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for loan_created:", err)
		}
	}()
}

//////////////////////////
// Example Mock Sender  //
//////////////////////////

// MockSender simulates sending messages with 90% success
func MockSender(payload any) error {
	r := rand.Float64()
	if r < 0.9 {
		return nil // success
	}
	return fmt.Errorf("mock sending failed")
}
