package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditdesk/creditflow-backend/internal/service"
)

func TestRegisterCustomerDerivesApprovedLimit(t *testing.T) {
	customers := newFakeCustomerRepo()
	svc := &service.CustomerService{CustomerRepo: customers}

	c, err := svc.RegisterCustomer("Asha", "Patel", "0712345678", 34, 50000)
	require.NoError(t, err)
	assert.NotZero(t, c.CustomerID)
	assert.Equal(t, 1800000.0, c.ApprovedLimit)
	assert.Equal(t, 0.0, c.CurrentDebt)
}

func TestRegisterCustomerLimitRoundsToNearest100k(t *testing.T) {
	customers := newFakeCustomerRepo()
	svc := &service.CustomerService{CustomerRepo: customers}

	// 36 * 20000 = 720,000 -> 700,000
	c, err := svc.RegisterCustomer("Ben", "Otieno", "0798765432", 28, 20000)
	require.NoError(t, err)
	assert.Equal(t, 700000.0, c.ApprovedLimit)
}

func TestListCustomers(t *testing.T) {
	customers := newFakeCustomerRepo()
	svc := &service.CustomerService{CustomerRepo: customers}

	_, err := svc.RegisterCustomer("Asha", "Patel", "0712345678", 34, 50000)
	require.NoError(t, err)
	_, err = svc.RegisterCustomer("Ben", "Otieno", "0798765432", 28, 20000)
	require.NoError(t, err)

	list, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
