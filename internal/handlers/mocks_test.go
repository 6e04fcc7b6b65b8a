package handlers_test

import (
	"context"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed token for the given subject.
func generateTestToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    "smp-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, period domain.ReportPeriod) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) IncomeExpenditure(ctx context.Context, period domain.ReportPeriod) (*domain.IncomeExpenditureReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeExpenditureReport), args.Error(1)
}

func (m *MockReportingService) ReceiptPayment(ctx context.Context, period domain.ReportPeriod) (*domain.ReceiptPaymentReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptPaymentReport), args.Error(1)
}

func (m *MockReportingService) BankReport(ctx context.Context, period domain.ReportPeriod) (*domain.BankReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankReport), args.Error(1)
}

func (m *MockReportingService) FeeDueReport(ctx context.Context, query domain.FeeDueQuery) (*domain.FeeDueReport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeDueReport), args.Error(1)
}

func (m *MockReportingService) ClosePeriod(ctx context.Context, scope string, periodEnd time.Time, userID string) (*domain.PeriodClosing, error) {
	args := m.Called(ctx, scope, periodEnd, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodClosing), args.Error(1)
}

func (m *MockReportingService) ClosingScopes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AttendanceService ---
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) DailyRegister(ctx context.Context, personType domain.PersonType, date time.Time, filter domain.RosterFilter) (*domain.DailyRegister, error) {
	args := m.Called(ctx, personType, date, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyRegister), args.Error(1)
}

func (m *MockAttendanceService) MonthlyCalendar(ctx context.Context, personType domain.PersonType, personID string, month time.Time) (*domain.MonthlyCalendar, error) {
	args := m.Called(ctx, personType, personID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyCalendar), args.Error(1)
}

func (m *MockAttendanceService) RecordPunch(ctx context.Context, punch domain.AttendancePunch, userID string) (*domain.AttendanceRow, error) {
	args := m.Called(ctx, punch, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceRow), args.Error(1)
}

func (m *MockAttendanceService) MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string) (int, error) {
	args := m.Called(ctx, personType, personIDs, date, status, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.AttendanceService = (*MockAttendanceService)(nil)

// --- Mock ProvidentFundService ---
type MockProvidentFundService struct {
	mock.Mock
}

func (m *MockProvidentFundService) Ledger(ctx context.Context, teacherID string) (*domain.ProvidentFundLedger, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProvidentFundLedger), args.Error(1)
}

func (m *MockProvidentFundService) Balance(ctx context.Context, teacherID string) (decimal.Decimal, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProvidentFundService) RecordOpening(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	args := m.Called(ctx, teacherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProvidentFundTransaction), args.Error(1)
}

func (m *MockProvidentFundService) RecordContribution(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	args := m.Called(ctx, teacherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProvidentFundTransaction), args.Error(1)
}

func (m *MockProvidentFundService) RecordWithdrawal(ctx context.Context, teacherID string, req dto.PFWithdrawalRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	args := m.Called(ctx, teacherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProvidentFundTransaction), args.Error(1)
}

var _ portssvc.ProvidentFundService = (*MockProvidentFundService)(nil)
