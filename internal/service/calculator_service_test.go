package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/creditflow-backend/internal/cache"
	"github.com/creditdesk/creditflow-backend/internal/service"
)

type countingCache struct {
	*cache.InMemoryCache
	sets int
}

func (c *countingCache) Set(key, value string) error {
	c.sets++
	return c.InMemoryCache.Set(key, value)
}

func TestCalculateLoanSummary(t *testing.T) {
	svc := &service.CalculatorService{Cache: cache.NewInMemoryCache()}

	result, err := svc.Calculate(10000, 12, 12)
	require.NoError(t, err)
	assert.InDelta(t, 888.49, result.MonthlyInstallment, 0.005)
	assert.InDelta(t, 888.49*12, result.TotalPayment, 0.01)
	assert.InDelta(t, result.TotalPayment-10000, result.TotalInterest, 0.01)
}

func TestCalculateUsesCacheOnRepeat(t *testing.T) {
	cc := &countingCache{InMemoryCache: cache.NewInMemoryCache()}
	svc := &service.CalculatorService{Cache: cc}

	first, err := svc.Calculate(250000, 14, 36)
	require.NoError(t, err)
	second, err := svc.Calculate(250000, 14, 36)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cc.sets, "second call should be served from cache")
}

func TestCalculateRejectsBadTerms(t *testing.T) {
	svc := &service.CalculatorService{Cache: cache.NewInMemoryCache()}

	_, err := svc.Calculate(0, 12, 12)
	assert.Error(t, err)

	_, err = svc.Calculate(10000, -3, 12)
	assert.Error(t, err)
}

func TestCalculateWorksWithoutCache(t *testing.T) {
	svc := &service.CalculatorService{}

	result, err := svc.Calculate(10000, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, result.MonthlyInstallment)
	assert.Equal(t, 0.0, result.TotalInterest)
}
