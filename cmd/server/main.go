// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/creditdesk/creditflow-backend/internal/cache"
	"github.com/creditdesk/creditflow-backend/internal/controller"
	"github.com/creditdesk/creditflow-backend/internal/db"
	"github.com/creditdesk/creditflow-backend/internal/handler"
	"github.com/creditdesk/creditflow-backend/internal/queue"
	"github.com/creditdesk/creditflow-backend/internal/repository"
	"github.com/creditdesk/creditflow-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()
	q := queue.NewInMemoryQueue()

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	loanRepo := &repository.LoanRepository{DB: db.DB}
	queue.StartLoanCreatedSubscriber(q, loanRepo, customerRepo)

	var calcCache cache.CacheRepository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		calcCache = cache.NewRedisCache(addr)
		log.Println("Using redis calculator cache at", addr)
	} else {
		calcCache = cache.NewInMemoryCache()
		log.Println("REDIS_ADDR not set, using in-memory calculator cache")
	}

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
	}

	loanService := &service.LoanService{
		CustomerRepo: customerRepo,
		LoanRepo:     loanRepo,
		Queue:        q,
	}

	calculatorService := &service.CalculatorService{
		Cache: calcCache,
	}

	loanController := &controller.LoanController{
		LoanService: loanService,
		AmqpURL:     os.Getenv("AMQP_URL"),
	}

	calculatorController := &controller.CalculatorController{
		CalculatorService: calculatorService,
	}

	customerHandler := handler.NewCustomerHandler(customerService)

	r := chi.NewRouter()

	// Customer routes
	r.Post("/api/register", customerHandler.RegisterCustomerHandler)
	r.Get("/api/customers", customerHandler.ListCustomersHandler)

	// Loan routes
	r.Post("/api/check-eligibility", loanController.CheckEligibility)
	r.Post("/api/create-loan", loanController.CreateLoan)
	r.Get("/api/view-loan/{loan_id}", loanController.GetLoan)
	r.Get("/api/view-loans/{customer_id}", loanController.ListCustomerLoans)

	// Calculator
	r.Post("/api/calculate-loan", calculatorController.Calculate)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
