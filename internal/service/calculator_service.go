package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/creditdesk/creditflow-backend/internal/cache"
	"github.com/creditdesk/creditflow-backend/internal/finance"
)

// CalculationResult summarizes ad-hoc loan terms: installment, total
// repayment and total interest over the full tenure.
type CalculationResult struct {
	MonthlyInstallment float64 `json:"monthly_installment"`
	TotalPayment       float64 `json:"total_payment"`
	TotalInterest      float64 `json:"total_interest"`
}

type CalculatorService struct {
	Cache cache.CacheRepository
}

// Calculate computes the loan summary for the given terms. Results are
// pure in the inputs, so they are cached under an (amount, rate, tenure)
// key; a cache failure degrades to recomputation.
func (s *CalculatorService) Calculate(amount, rate float64, tenure int) (*CalculationResult, error) {
	key := fmt.Sprintf("loan_calc:%.2f:%.2f:%d", amount, rate, tenure)

	if s.Cache != nil {
		if raw, ok := s.Cache.Get(key); ok {
			var cached CalculationResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	emi, err := finance.EMI(amount, rate, tenure)
	if err != nil {
		return nil, err
	}

	total := math.Round(emi*float64(tenure)*100) / 100
	interest := math.Round((total-amount)*100) / 100

	result := &CalculationResult{
		MonthlyInstallment: emi,
		TotalPayment:       total,
		TotalInterest:      interest,
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.Cache.Set(key, string(raw)); err != nil {
				log.Printf("Warning: failed to cache loan calculation: %v", err)
			}
		}
	}

	return result, nil
}
