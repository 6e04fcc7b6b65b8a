package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo        portsrepo.ReportingRepository
	fiscalYearStartMonth int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithFiscalYearStartMonth sets the month (1-12) cumulative figures restart from.
func WithFiscalYearStartMonth(month int) ReportingServiceOption {
	return func(s *reportingService) {
		s.fiscalYearStartMonth = month
	}
}

// WithReportingClock overrides the clock used to stamp checkpoints.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo:        repo,
		fiscalYearStartMonth: 1,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func periodAttrs(period domain.ReportPeriod) []any {
	attrs := []any{
		slog.String("from", period.Start.Format(domain.DateLayout)),
		slog.String("to", period.End.Format(domain.DateLayout)),
	}
	if period.HasAccount() {
		attrs = append(attrs, slog.String("account_id", *period.AccountID))
	}
	return attrs
}

// checkAccount makes sure an account-filtered period references an existing account.
func (s *reportingService) checkAccount(ctx context.Context, period domain.ReportPeriod) (*domain.Account, error) {
	if !period.HasAccount() {
		return nil, nil
	}
	account, err := s.reportingRepo.FindAccountByID(ctx, *period.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, *period.AccountID)
		}
		s.LogError(ctx, err, "Failed to look up report account", periodAttrs(period)...)
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	return account, nil
}

// cumulativeBaseline loads the running totals from `from` up to the day before the period.
func (s *reportingService) cumulativeBaseline(ctx context.Context, period domain.ReportPeriod, from time.Time) (domain.Baseline, error) {
	totals, err := s.reportingRepo.CumulativeTotals(ctx, from, period.Start, period.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cumulative totals", periodAttrs(period)...)
		return domain.Baseline{}, fmt.Errorf("failed to load cumulative totals: %w", err)
	}
	return domain.Baseline{OpeningBalance: decimal.Zero, Cumulative: totals}, nil
}

// priorClosing returns the stored checkpoint of the scope for the day before the
// period, or nil when none was stored.
func (s *reportingService) priorClosing(ctx context.Context, scope string, period domain.ReportPeriod) (*decimal.Decimal, error) {
	closing, err := s.reportingRepo.FindClosing(ctx, scope, period.DayBefore())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to load prior closing", slog.String("scope", scope))
		return nil, fmt.Errorf("failed to load prior closing: %w", err)
	}
	balance := closing.ClosingBalance
	return &balance, nil
}

func (s *reportingService) aggregate(ctx context.Context, period domain.ReportPeriod, baseline domain.Baseline) (*domain.Aggregation, error) {
	txns, err := s.reportingRepo.ListTransactions(ctx, period.Start, period.End, period.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", periodAttrs(period)...)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	agg, err := accounting.Aggregate(txns, period, baseline)
	if err != nil {
		return nil, err
	}
	if agg.OutOfPeriod > 0 {
		s.LogWarn(ctx, "Transactions outside the report period were ignored",
			append(periodAttrs(period), slog.Int("count", agg.OutOfPeriod))...)
	}
	return agg, nil
}

func (s *reportingService) logWarnings(ctx context.Context, report string, warnings []domain.Warning) {
	for _, w := range warnings {
		s.LogWarn(ctx, "Report data inconsistency",
			slog.String("report", report),
			slog.String("code", string(w.Code)),
			slog.String("message", w.Message))
	}
}

// BalanceSheet generates a balance sheet report as of the period end. Fund,
// liability and asset heads are stock figures, so their cumulative amounts run
// over the whole history rather than the fiscal year.
func (s *reportingService) BalanceSheet(ctx context.Context, period domain.ReportPeriod) (*domain.BalanceSheetReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.checkAccount(ctx, period); err != nil {
		return nil, err
	}

	baseline, err := s.cumulativeBaseline(ctx, period, time.Time{})
	if err != nil {
		return nil, err
	}
	agg, err := s.aggregate(ctx, period, baseline)
	if err != nil {
		return nil, err
	}

	report := accounting.BuildBalanceSheet(agg)
	s.logWarnings(ctx, "balance-sheet", report.Warnings)
	s.LogInfo(ctx, "Balance sheet report generated successfully",
		append(periodAttrs(period), slog.Int("row_count", len(agg.Rows)))...)
	return report, nil
}

// IncomeExpenditure generates the accrual-basis statement for the period
func (s *reportingService) IncomeExpenditure(ctx context.Context, period domain.ReportPeriod) (*domain.IncomeExpenditureReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.checkAccount(ctx, period); err != nil {
		return nil, err
	}

	baseline, err := s.cumulativeBaseline(ctx, period, domain.FiscalYearStart(period.Start, s.fiscalYearStartMonth))
	if err != nil {
		return nil, err
	}
	agg, err := s.aggregate(ctx, period, baseline)
	if err != nil {
		return nil, err
	}

	report := accounting.BuildIncomeExpenditure(agg)
	s.logWarnings(ctx, "income-expenditure", report.Warnings)
	s.LogInfo(ctx, "Income and expenditure report generated successfully",
		append(periodAttrs(period), slog.Int("row_count", len(agg.Rows)))...)
	return report, nil
}

// ReceiptPayment generates the cash-basis statement for the period
func (s *reportingService) ReceiptPayment(ctx context.Context, period domain.ReportPeriod) (*domain.ReceiptPaymentReport, error) {
	agg, err := s.receiptPaymentAggregation(ctx, period)
	if err != nil {
		return nil, err
	}

	report := accounting.BuildReceiptPayment(agg)
	s.logWarnings(ctx, "receipt-payment", report.Warnings)
	s.LogInfo(ctx, "Receipt and payment report generated successfully",
		append(periodAttrs(period), slog.String("closing_balance", report.ClosingBalance.StringFixed(2)))...)
	return report, nil
}

func (s *reportingService) receiptPaymentAggregation(ctx context.Context, period domain.ReportPeriod) (*domain.Aggregation, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.checkAccount(ctx, period); err != nil {
		return nil, err
	}

	baseline, err := s.cumulativeBaseline(ctx, period, domain.FiscalYearStart(period.Start, s.fiscalYearStartMonth))
	if err != nil {
		return nil, err
	}
	if period.HasAccount() {
		baseline.OpeningBalance, err = s.reportingRepo.AccountBalanceBefore(ctx, *period.AccountID, period.Start)
	} else {
		baseline.OpeningBalance, err = s.reportingRepo.CashBalanceBefore(ctx, period.Start)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", periodAttrs(period)...)
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	// Checkpoints are kept for the whole school only.
	if !period.HasAccount() {
		if baseline.PriorClosingBalance, err = s.priorClosing(ctx, domain.ScopeReceiptPayment, period); err != nil {
			return nil, err
		}
	}
	return s.aggregate(ctx, period, baseline)
}

// BankReport lists the movements of the period's account with a running balance
func (s *reportingService) BankReport(ctx context.Context, period domain.ReportPeriod) (*domain.BankReport, error) {
	account, agg, err := s.bankAggregation(ctx, period)
	if err != nil {
		return nil, err
	}

	report := accounting.BuildBankReport(agg, *account)
	s.logWarnings(ctx, "bank", report.Warnings)
	s.LogInfo(ctx, "Bank report generated successfully",
		append(periodAttrs(period), slog.Int("line_count", len(report.Lines)))...)
	return report, nil
}

func (s *reportingService) bankAggregation(ctx context.Context, period domain.ReportPeriod) (*domain.Account, *domain.Aggregation, error) {
	if err := period.Validate(); err != nil {
		return nil, nil, err
	}
	if !period.HasAccount() {
		return nil, nil, fmt.Errorf("%w: accountID is required for the bank report", apperrors.ErrValidation)
	}
	account, err := s.checkAccount(ctx, period)
	if err != nil {
		return nil, nil, err
	}
	if account.Kind != domain.AccountBank {
		return nil, nil, fmt.Errorf("%w: account %s is not a bank account", apperrors.ErrValidation, account.AccountID)
	}

	baseline := domain.Baseline{}
	baseline.OpeningBalance, err = s.reportingRepo.AccountBalanceBefore(ctx, account.AccountID, period.Start)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute bank opening balance", periodAttrs(period)...)
		return nil, nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	if baseline.PriorClosingBalance, err = s.priorClosing(ctx, domain.BankScope(account.AccountID), period); err != nil {
		return nil, nil, err
	}

	agg, err := s.aggregate(ctx, period, baseline)
	if err != nil {
		return nil, nil, err
	}
	return account, agg, nil
}

// FeeDueReport groups a month's fee records by organization, class or student
func (s *reportingService) FeeDueReport(ctx context.Context, query domain.FeeDueQuery) (*domain.FeeDueReport, error) {
	if !query.ReportType.Valid() {
		return nil, fmt.Errorf("%w: unknown fee report type %q", apperrors.ErrValidation, query.ReportType)
	}
	if query.Month < 1 || query.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}

	records, err := s.reportingRepo.ListFees(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee records",
			slog.Int("month", query.Month),
			slog.Int("year", query.Year))
		return nil, fmt.Errorf("failed to list fee records: %w", err)
	}

	groups, warnings, err := accounting.GroupFeeDues(records, query.ReportType)
	if err != nil {
		return nil, err
	}

	report := &domain.FeeDueReport{
		ReportType:  query.ReportType,
		Month:       query.Month,
		Year:        query.Year,
		Groups:      groups,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
		DueAmount:   decimal.Zero,
		Warnings:    warnings,
	}
	for _, g := range groups {
		report.TotalAmount = report.TotalAmount.Add(g.TotalAmount)
		report.PaidAmount = report.PaidAmount.Add(g.PaidAmount)
		report.DueAmount = report.DueAmount.Add(g.DueAmount)
	}

	s.logWarnings(ctx, "fee-due", report.Warnings)
	s.LogInfo(ctx, "Fee due report generated successfully",
		slog.String("report_type", string(query.ReportType)),
		slog.Int("month", query.Month),
		slog.Int("year", query.Year),
		slog.Int("group_count", len(groups)))
	return report, nil
}

// ClosePeriod stores the closing balance of the month ending on periodEnd. Running
// it again for the same scope and month replaces the earlier checkpoint.
func (s *reportingService) ClosePeriod(ctx context.Context, scope string, periodEnd time.Time, userID string) (*domain.PeriodClosing, error) {
	period := domain.MonthPeriod(periodEnd)
	if !domain.TruncateDate(periodEnd).Equal(period.End) {
		return nil, fmt.Errorf("%w: periodEnd %s is not the last day of a month",
			apperrors.ErrValidation, periodEnd.Format(domain.DateLayout))
	}

	var balance decimal.Decimal
	switch accountID, isBank := domain.BankAccountFromScope(scope); {
	case scope == domain.ScopeReceiptPayment:
		agg, err := s.receiptPaymentAggregation(ctx, period)
		if err != nil {
			return nil, err
		}
		balance = accounting.ClosingBalance(agg)
	case isBank:
		period.AccountID = &accountID
		_, agg, err := s.bankAggregation(ctx, period)
		if err != nil {
			return nil, err
		}
		balance = accounting.BankClosingBalance(agg)
	default:
		return nil, fmt.Errorf("%w: unknown closing scope %q", apperrors.ErrValidation, scope)
	}

	closing := domain.PeriodClosing{
		ClosingID:      uuid.NewString(),
		Scope:          scope,
		PeriodEnd:      period.End,
		ClosingBalance: domain.RoundMoney(balance),
		CreatedAt:      s.now(),
		CreatedBy:      userID,
	}
	if err := s.reportingRepo.SaveClosing(ctx, closing); err != nil {
		s.LogError(ctx, err, "Failed to save period closing",
			slog.String("scope", scope),
			slog.String("period_end", period.End.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to save period closing: %w", err)
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("scope", scope),
		slog.String("period_end", period.End.Format(domain.DateLayout)),
		slog.String("closing_balance", closing.ClosingBalance.StringFixed(2)))
	return &closing, nil
}

// ClosingScopes lists the school-wide cash scope followed by one scope per bank account
func (s *reportingService) ClosingScopes(ctx context.Context) ([]string, error) {
	accounts, err := s.reportingRepo.ListBankAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	scopes := make([]string, 0, len(accounts)+1)
	scopes = append(scopes, domain.ScopeReceiptPayment)
	for _, a := range accounts {
		scopes = append(scopes, domain.BankScope(a.AccountID))
	}
	return scopes, nil
}
