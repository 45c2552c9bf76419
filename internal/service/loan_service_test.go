package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/creditdesk/creditflow-backend/internal/errors"
	"github.com/creditdesk/creditflow-backend/internal/model"
	"github.com/creditdesk/creditflow-backend/internal/service"
)

// --- In-memory fakes ---

type fakeCustomerRepo struct {
	customers map[int]*model.Customer
	nextID    int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int]*model.Customer{}, nextID: 1}
}

func (f *fakeCustomerRepo) Create(c *model.Customer) error {
	c.CustomerID = f.nextID
	f.nextID++
	cp := *c
	f.customers[c.CustomerID] = &cp
	return nil
}

func (f *fakeCustomerRepo) GetByID(id int) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) ListAll() ([]model.Customer, error) {
	out := []model.Customer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) UpdateDebt(id int, newDebt float64) error {
	c, ok := f.customers[id]
	if !ok {
		return errors.New("no such customer")
	}
	c.CurrentDebt = newDebt
	return nil
}

type fakeLoanRepo struct {
	customers  *fakeCustomerRepo
	loans      map[int]*model.Loan
	nextID     int
	failCreate bool
}

func newFakeLoanRepo(customers *fakeCustomerRepo) *fakeLoanRepo {
	return &fakeLoanRepo{customers: customers, loans: map[int]*model.Loan{}, nextID: 1}
}

func (f *fakeLoanRepo) CreateWithDebtUpdate(l *model.Loan, customerID int, newDebt float64) error {
	if f.failCreate {
		// transactional: neither write happens
		return errors.New("storage down")
	}
	l.LoanID = f.nextID
	f.nextID++
	cp := *l
	f.loans[l.LoanID] = &cp
	return f.customers.UpdateDebt(customerID, newDebt)
}

func (f *fakeLoanRepo) GetByID(id int) (*model.Loan, error) {
	l, ok := f.loans[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLoanRepo) ListByCustomer(customerID int) ([]model.Loan, error) {
	out := []model.Loan{}
	for _, l := range f.loans {
		if l.CustomerID == customerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) addLoan(l model.Loan) {
	l.LoanID = f.nextID
	f.nextID++
	f.loans[l.LoanID] = &l
}

func newLoanService() (*service.LoanService, *fakeCustomerRepo, *fakeLoanRepo) {
	customers := newFakeCustomerRepo()
	loans := newFakeLoanRepo(customers)
	return &service.LoanService{CustomerRepo: customers, LoanRepo: loans}, customers, loans
}

func addCustomer(repo *fakeCustomerRepo, salary, limit, debt float64) *model.Customer {
	c := &model.Customer{
		FirstName:     "Asha",
		LastName:      "Patel",
		PhoneNumber:   "0712345678",
		Age:           34,
		MonthlySalary: salary,
		ApprovedLimit: limit,
		CurrentDebt:   debt,
	}
	repo.Create(c)
	return c
}

// --- Credit scoring ---

func TestCreditScoreNewCustomerIsBase(t *testing.T) {
	svc, customers, _ := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	score, err := svc.CreditScore(c.CustomerID, c.ApprovedLimit)
	require.NoError(t, err)
	assert.Equal(t, 50, score)
}

func TestCreditScoreRewardsHistory(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 100000, EMIsPaidOnTime: 10, IsActive: false})
	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 50000, EMIsPaidOnTime: 4, IsActive: true})

	// 50 + 2*(10+4) + 5*2 = 88
	score, err := svc.CreditScore(c.CustomerID, c.ApprovedLimit)
	require.NoError(t, err)
	assert.Equal(t, 88, score)
}

func TestCreditScoreCappedAt100(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	for i := 0; i < 10; i++ {
		loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 1000, EMIsPaidOnTime: 12, IsActive: false})
	}

	score, err := svc.CreditScore(c.CustomerID, c.ApprovedLimit)
	require.NoError(t, err)
	assert.Equal(t, 100, score)
}

func TestCreditScoreZeroWhenOverExposed(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 20000, 700000, 0)

	// active principal above the approved limit zeroes the score even
	// with a long on-time history
	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 800000, EMIsPaidOnTime: 24, IsActive: true})

	score, err := svc.CreditScore(c.CustomerID, c.ApprovedLimit)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

// --- Eligibility decision ---

func TestCheckEligibilityCustomerNotFound(t *testing.T) {
	svc, _, _ := newLoanService()

	_, err := svc.CheckEligibility(99, 10000, 12, 12)
	var notFound *appErrors.ErrCustomerNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 99, notFound.CustomerID)
}

func TestCheckEligibilityMidTierApprovesAtRequestedRate(t *testing.T) {
	svc, customers, _ := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	// score 50: 12% requested meets the tier floor, no correction
	dec, err := svc.CheckEligibility(c.CustomerID, 100000, 12, 24)
	require.NoError(t, err)
	assert.True(t, dec.Approval)
	assert.Equal(t, 12.0, dec.InterestRate)
	assert.Equal(t, 12.0, dec.CorrectedInterestRate)
	assert.Greater(t, dec.MonthlyInstallment, 0.0)
}

func TestCheckEligibilityRescueAtCorrectedRate(t *testing.T) {
	svc, customers, _ := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	// score 50, 10% is below the 12% floor; the corrected-rate EMI still
	// fits half the salary, so the decision flips to approved at 12%
	dec, err := svc.CheckEligibility(c.CustomerID, 100000, 10, 24)
	require.NoError(t, err)
	assert.True(t, dec.Approval)
	assert.Equal(t, 10.0, dec.InterestRate)
	assert.Equal(t, 12.0, dec.CorrectedInterestRate)
}

func TestCheckEligibilityStrongScoreKeepsRequestedRate(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)
	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 50000, EMIsPaidOnTime: 12, IsActive: false})

	// score 50+24+5=79: approved unconditionally, even below 12%
	dec, err := svc.CheckEligibility(c.CustomerID, 100000, 8, 24)
	require.NoError(t, err)
	assert.True(t, dec.Approval)
	assert.Equal(t, 8.0, dec.CorrectedInterestRate)
}

func TestCheckEligibilityAffordabilityOverride(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 20000, 700000, 0)
	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 10000, EMIsPaidOnTime: 24, IsActive: false})

	// strong score, but the installment dwarfs half of a 20,000 salary
	dec, err := svc.CheckEligibility(c.CustomerID, 500000, 12, 12)
	require.NoError(t, err)
	assert.False(t, dec.Approval)
	assert.Greater(t, dec.MonthlyInstallment, 10000.0)
}

func TestCheckEligibilityRescueStillUnaffordable(t *testing.T) {
	svc, customers, _ := newLoanService()
	c := addCustomer(customers, 20000, 700000, 0)

	// score 50, rate corrected upward to 12%, but the corrected EMI is
	// even larger, so the rescue cannot fire
	dec, err := svc.CheckEligibility(c.CustomerID, 600000, 10, 12)
	require.NoError(t, err)
	assert.False(t, dec.Approval)
	assert.Equal(t, 12.0, dec.CorrectedInterestRate)
}

func TestCheckEligibilityOverExposedRejectedWithoutCorrection(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 700000, 0)
	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 900000, EMIsPaidOnTime: 36, IsActive: true})

	// score forced to 0: rejected, and the rate is left untouched
	dec, err := svc.CheckEligibility(c.CustomerID, 10000, 5, 12)
	require.NoError(t, err)
	assert.False(t, dec.Approval)
	assert.Equal(t, 5.0, dec.CorrectedInterestRate)
}

func TestCheckEligibilityIsIdempotent(t *testing.T) {
	svc, customers, _ := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	first, err := svc.CheckEligibility(c.CustomerID, 100000, 10, 24)
	require.NoError(t, err)
	second, err := svc.CheckEligibility(c.CustomerID, 100000, 10, 24)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// --- Loan lifecycle ---

func TestCreateLoanApprovedPersistsLoanAndDebt(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 5000)

	result, err := svc.CreateLoan(c.CustomerID, 100000, 12, 24)
	require.NoError(t, err)
	require.True(t, result.LoanApproved)
	assert.NotZero(t, result.LoanID)
	assert.Equal(t, "Loan approved", result.Message)

	stored, err := loans.GetByID(result.LoanID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 0, stored.EMIsPaidOnTime)
	assert.Equal(t, 12.0, stored.InterestRate)
	assert.Equal(t, result.MonthlyInstallment, stored.MonthlyInstallment)
	assert.Equal(t, stored.StartDate.AddDate(0, 24, 0), stored.EndDate)
	assert.WithinDuration(t, time.Now(), stored.StartDate, 5*time.Second)

	// debt grows by the principal only
	updated, err := customers.GetByID(c.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, 105000.0, updated.CurrentDebt)
}

func TestCreateLoanPersistsCorrectedRate(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	result, err := svc.CreateLoan(c.CustomerID, 100000, 10, 24)
	require.NoError(t, err)
	require.True(t, result.LoanApproved)

	stored, _ := loans.GetByID(result.LoanID)
	assert.Equal(t, 12.0, stored.InterestRate, "rescued loans carry the corrected rate, not the requested one")
}

func TestCreateLoanRejectionIsNotAnError(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 20000, 700000, 0)

	result, err := svc.CreateLoan(c.CustomerID, 500000, 12, 12)
	require.NoError(t, err)
	assert.False(t, result.LoanApproved)
	assert.Zero(t, result.LoanID)
	assert.Zero(t, result.MonthlyInstallment)
	assert.Equal(t, "Loan not approved based on eligibility criteria", result.Message)

	// nothing persisted, debt untouched
	assert.Empty(t, loans.loans)
	updated, _ := customers.GetByID(c.CustomerID)
	assert.Equal(t, 0.0, updated.CurrentDebt)
}

func TestCreateLoanStorageFailureLeavesStateClean(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)
	loans.failCreate = true

	_, err := svc.CreateLoan(c.CustomerID, 100000, 12, 24)
	require.Error(t, err)

	assert.Empty(t, loans.loans)
	updated, _ := customers.GetByID(c.CustomerID)
	assert.Equal(t, 0.0, updated.CurrentDebt)
}

func TestCreateLoanCustomerNotFound(t *testing.T) {
	svc, _, _ := newLoanService()

	_, err := svc.CreateLoan(404, 100000, 12, 24)
	var notFound *appErrors.ErrCustomerNotFound
	assert.ErrorAs(t, err, &notFound)
}

// --- Loan views ---

func TestGetLoanDetails(t *testing.T) {
	svc, customers, _ := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)

	created, err := svc.CreateLoan(c.CustomerID, 100000, 12, 24)
	require.NoError(t, err)

	details, err := svc.GetLoanDetails(created.LoanID)
	require.NoError(t, err)
	assert.Equal(t, created.LoanID, details.LoanID)
	assert.Equal(t, c.CustomerID, details.Customer.CustomerID)
	assert.Equal(t, 100000.0, details.LoanAmount)
	assert.Equal(t, 24, details.Tenure)
}

func TestGetLoanDetailsNotFound(t *testing.T) {
	svc, _, _ := newLoanService()

	_, err := svc.GetLoanDetails(42)
	var notFound *appErrors.ErrLoanNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestListCustomerLoansReportsRepaymentsLeft(t *testing.T) {
	svc, customers, loans := newLoanService()
	c := addCustomer(customers, 50000, 1800000, 0)
	loans.addLoan(model.Loan{CustomerID: c.CustomerID, LoanAmount: 60000, Tenure: 18, IsActive: true})

	list, err := svc.ListCustomerLoans(c.CustomerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 18, list[0].RepaymentsLeft)
}
