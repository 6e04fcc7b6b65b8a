package services_test

import (
	"context"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListTransactions(ctx context.Context, from, to time.Time, accountID *string) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, from, to, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockReportingRepository) CumulativeTotals(ctx context.Context, from, before time.Time, accountID *string) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, from, before, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) CashBalanceBefore(ctx context.Context, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) AccountBalanceBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockReportingRepository) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockReportingRepository) FindClosing(ctx context.Context, scope string, periodEnd time.Time) (*domain.PeriodClosing, error) {
	args := m.Called(ctx, scope, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodClosing), args.Error(1)
}

func (m *MockReportingRepository) SaveClosing(ctx context.Context, closing domain.PeriodClosing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

func (m *MockReportingRepository) ListFees(ctx context.Context, query domain.FeeDueQuery) ([]domain.FeeRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeRecord), args.Error(1)
}

// --- Mock AttendanceRepository ---
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindPerson(ctx context.Context, personType domain.PersonType, personID string) (*domain.Person, error) {
	args := m.Called(ctx, personType, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockAttendanceRepository) ListRoster(ctx context.Context, personType domain.PersonType, filter domain.RosterFilter) ([]domain.Person, error) {
	args := m.Called(ctx, personType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Person), args.Error(1)
}

func (m *MockAttendanceRepository) ListPunches(ctx context.Context, personType domain.PersonType, personIDs []string, from, to time.Time) ([]domain.AttendancePunch, error) {
	args := m.Called(ctx, personType, personIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendancePunch), args.Error(1)
}

func (m *MockAttendanceRepository) UpsertPunch(ctx context.Context, punch domain.AttendancePunch) error {
	args := m.Called(ctx, punch)
	return args.Error(0)
}

func (m *MockAttendanceRepository) MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string, at time.Time) error {
	args := m.Called(ctx, personType, personIDs, date, status, userID, at)
	return args.Error(0)
}

func (m *MockAttendanceRepository) FindRule(ctx context.Context, personType domain.PersonType) (*domain.AttendanceRule, error) {
	args := m.Called(ctx, personType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceRule), args.Error(1)
}

func (m *MockAttendanceRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

// --- Mock ProvidentFundRepository ---
type MockProvidentFundRepository struct {
	mock.Mock
}

func (m *MockProvidentFundRepository) ListByTeacher(ctx context.Context, teacherID string) ([]domain.ProvidentFundTransaction, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProvidentFundTransaction), args.Error(1)
}

func (m *MockProvidentFundRepository) SaveTransaction(ctx context.Context, txn domain.ProvidentFundTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// SaveChecked runs check against the entries given as the first return value,
// the ledger as the repository would read it under the teacher lock.
func (m *MockProvidentFundRepository) SaveChecked(ctx context.Context, txn domain.ProvidentFundTransaction, check portsrepo.LedgerCheck) error {
	args := m.Called(ctx, txn)
	if entries, ok := args.Get(0).([]domain.ProvidentFundTransaction); ok {
		if err := check(entries); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
