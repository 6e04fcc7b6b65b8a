package services

import (
	"context"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
)

// FinancialStatementSvc defines the period statements built by the report aggregator
type FinancialStatementSvc interface {
	// BalanceSheet generates Fund & Liabilities against Property & Assets as of period end
	BalanceSheet(ctx context.Context, period domain.ReportPeriod) (*domain.BalanceSheetReport, error)

	// IncomeExpenditure generates the accrual-basis statement for the period
	IncomeExpenditure(ctx context.Context, period domain.ReportPeriod) (*domain.IncomeExpenditureReport, error)

	// ReceiptPayment generates the cash-basis statement for the period
	ReceiptPayment(ctx context.Context, period domain.ReportPeriod) (*domain.ReceiptPaymentReport, error)

	// BankReport lists the movements of the period's account with a running balance
	BankReport(ctx context.Context, period domain.ReportPeriod) (*domain.BankReport, error)
}

// FeeReportSvc defines fee-due reporting
type FeeReportSvc interface {
	// FeeDueReport groups a month's fee records by organization, class or student
	FeeDueReport(ctx context.Context, query domain.FeeDueQuery) (*domain.FeeDueReport, error)
}

// PeriodClosingSvc defines maintenance of closing-balance checkpoints
type PeriodClosingSvc interface {
	// ClosePeriod stores the closing balance of the month ending on periodEnd for a scope
	ClosePeriod(ctx context.Context, scope string, periodEnd time.Time, userID string) (*domain.PeriodClosing, error)

	// ClosingScopes lists every scope that can be closed
	ClosingScopes(ctx context.Context) ([]string, error)
}

// ReportingService combines all reporting operations
type ReportingService interface {
	FinancialStatementSvc
	FeeReportSvc
	PeriodClosingSvc
}
