package dto

import (
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Export formats accepted by the report endpoints.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ReportQuery holds the query parameters shared by the period reports.
type ReportQuery struct {
	FromDate  string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate    string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	AccountID string `form:"accountID"`
	Format    string `form:"format" binding:"omitempty,oneof=json xlsx"`
}

// FeeDueQueryParams holds the query parameters of the fee-due report.
type FeeDueQueryParams struct {
	ReportType string `form:"reportType" binding:"required,oneof=organization class student"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=2000,max=2100"`
	ClassID    string `form:"classID"`
	StudentID  string `form:"studentID"`
	Format     string `form:"format" binding:"omitempty,oneof=json xlsx"`
}

// ToDomain converts the query parameters into a domain query.
func (q FeeDueQueryParams) ToDomain() domain.FeeDueQuery {
	query := domain.FeeDueQuery{
		ReportType: domain.FeeReportType(q.ReportType),
		Month:      q.Month,
		Year:       q.Year,
	}
	if q.ClassID != "" {
		query.ClassID = &q.ClassID
	}
	if q.StudentID != "" {
		query.StudentID = &q.StudentID
	}
	return query
}

// ClosePeriodRequest asks for a closing-balance checkpoint.
type ClosePeriodRequest struct {
	Scope     string `json:"scope" binding:"required"`
	PeriodEnd string `json:"periodEnd" binding:"required,datetime=2006-01-02"`
}

// PeriodResponse is the date window of a report.
type PeriodResponse struct {
	FromDate  string  `json:"fromDate"`
	ToDate    string  `json:"toDate"`
	AccountID *string `json:"accountID,omitempty"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	Period             PeriodResponse         `json:"period"`
	FundAndLiabilities domain.ReportSide      `json:"fundAndLiabilities"`
	PropertyAndAssets  domain.ReportSide      `json:"propertyAndAssets"`
	BalanceDifference  decimal.Decimal        `json:"balanceDifference"`
	Unclassified       []domain.CategoryTotal `json:"unclassified"`
	Warnings           []domain.Warning       `json:"warnings"`
}

// IncomeExpenditureResponse represents the income and expenditure report response
type IncomeExpenditureResponse struct {
	Period            PeriodResponse         `json:"period"`
	Income            domain.ReportSide      `json:"income"`
	Expenditure       domain.ReportSide      `json:"expenditure"`
	MonthSurplus      decimal.Decimal        `json:"monthSurplus"`
	CumulativeSurplus decimal.Decimal        `json:"cumulativeSurplus"`
	Unclassified      []domain.CategoryTotal `json:"unclassified"`
	Warnings          []domain.Warning       `json:"warnings"`
}

// ReceiptPaymentResponse represents the receipt and payment report response
type ReceiptPaymentResponse struct {
	Period         PeriodResponse         `json:"period"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	Receipts       domain.ReportSide      `json:"receipts"`
	Payments       domain.ReportSide      `json:"payments"`
	ClosingBalance decimal.Decimal        `json:"closingBalance"`
	Unclassified   []domain.CategoryTotal `json:"unclassified"`
	Warnings       []domain.Warning       `json:"warnings"`
}

// BankLedgerLineResponse is one bank movement.
type BankLedgerLineResponse struct {
	Date           string          `json:"date"`
	TransactionID  string          `json:"transactionID"`
	Label          string          `json:"label"`
	Description    string          `json:"description"`
	Deposit        decimal.Decimal `json:"deposit"`
	Withdrawal     decimal.Decimal `json:"withdrawal"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// BankReportResponse represents the bank report response
type BankReportResponse struct {
	Period          PeriodResponse           `json:"period"`
	AccountID       string                   `json:"accountID"`
	AccountName     string                   `json:"accountName"`
	BankName        string                   `json:"bankName,omitempty"`
	AccountNumber   string                   `json:"accountNumber,omitempty"`
	OpeningBalance  decimal.Decimal          `json:"openingBalance"`
	Lines           []BankLedgerLineResponse `json:"lines"`
	TotalDeposit    decimal.Decimal          `json:"totalDeposit"`
	TotalWithdrawal decimal.Decimal          `json:"totalWithdrawal"`
	ClosingBalance  decimal.Decimal          `json:"closingBalance"`
	Warnings        []domain.Warning         `json:"warnings"`
}

// FeeDueResponse represents the fee-due report response
type FeeDueResponse struct {
	ReportType string               `json:"reportType"`
	Month      int                  `json:"month"`
	Year       int                  `json:"year"`
	Groups     []domain.FeeDueGroup `json:"groups"`
	Summary    struct {
		TotalAmount decimal.Decimal `json:"totalAmount"`
		PaidAmount  decimal.Decimal `json:"paidAmount"`
		DueAmount   decimal.Decimal `json:"dueAmount"`
	} `json:"summary"`
	Warnings []domain.Warning `json:"warnings"`
}

// PeriodClosingResponse represents a stored checkpoint.
type PeriodClosingResponse struct {
	ClosingID      string          `json:"closingID"`
	Scope          string          `json:"scope"`
	PeriodEnd      string          `json:"periodEnd"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	CreatedBy      string          `json:"createdBy"`
}

// ToPeriodResponse converts a domain period.
func ToPeriodResponse(p domain.ReportPeriod) PeriodResponse {
	return PeriodResponse{
		FromDate:  p.Start.Format(domain.DateLayout),
		ToDate:    p.End.Format(domain.DateLayout),
		AccountID: p.AccountID,
	}
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		Period:             ToPeriodResponse(report.Period),
		FundAndLiabilities: report.FundAndLiabilities,
		PropertyAndAssets:  report.PropertyAndAssets,
		BalanceDifference:  report.BalanceDifference,
		Unclassified:       report.Unclassified,
		Warnings:           report.Warnings,
	}
}

// ToIncomeExpenditureResponse converts a domain income and expenditure report to a DTO response
func ToIncomeExpenditureResponse(report *domain.IncomeExpenditureReport) IncomeExpenditureResponse {
	return IncomeExpenditureResponse{
		Period:            ToPeriodResponse(report.Period),
		Income:            report.Income,
		Expenditure:       report.Expenditure,
		MonthSurplus:      report.MonthSurplus,
		CumulativeSurplus: report.CumulativeSurplus,
		Unclassified:      report.Unclassified,
		Warnings:          report.Warnings,
	}
}

// ToReceiptPaymentResponse converts a domain receipt and payment report to a DTO response
func ToReceiptPaymentResponse(report *domain.ReceiptPaymentReport) ReceiptPaymentResponse {
	return ReceiptPaymentResponse{
		Period:         ToPeriodResponse(report.Period),
		OpeningBalance: report.OpeningBalance,
		Receipts:       report.Receipts,
		Payments:       report.Payments,
		ClosingBalance: report.ClosingBalance,
		Unclassified:   report.Unclassified,
		Warnings:       report.Warnings,
	}
}

// ToBankReportResponse converts a domain bank report to a DTO response
func ToBankReportResponse(report *domain.BankReport) BankReportResponse {
	response := BankReportResponse{
		Period:          ToPeriodResponse(report.Period),
		AccountID:       report.Account.AccountID,
		AccountName:     report.Account.Name,
		BankName:        report.Account.BankName,
		AccountNumber:   report.Account.AccountNumber,
		OpeningBalance:  report.OpeningBalance,
		Lines:           make([]BankLedgerLineResponse, len(report.Lines)),
		TotalDeposit:    report.TotalDeposit,
		TotalWithdrawal: report.TotalWithdrawal,
		ClosingBalance:  report.ClosingBalance,
		Warnings:        report.Warnings,
	}
	for i, line := range report.Lines {
		response.Lines[i] = BankLedgerLineResponse{
			Date:           line.Date.Format(domain.DateLayout),
			TransactionID:  line.TransactionID,
			Label:          line.Label,
			Description:    line.Description,
			Deposit:        line.Deposit,
			Withdrawal:     line.Withdrawal,
			RunningBalance: line.RunningBalance,
		}
	}
	return response
}

// ToFeeDueResponse converts a domain fee-due report to a DTO response
func ToFeeDueResponse(report *domain.FeeDueReport) FeeDueResponse {
	response := FeeDueResponse{
		ReportType: string(report.ReportType),
		Month:      report.Month,
		Year:       report.Year,
		Groups:     report.Groups,
		Warnings:   report.Warnings,
	}
	response.Summary.TotalAmount = report.TotalAmount
	response.Summary.PaidAmount = report.PaidAmount
	response.Summary.DueAmount = report.DueAmount
	return response
}

// ToPeriodClosingResponse converts a checkpoint to a DTO response
func ToPeriodClosingResponse(c *domain.PeriodClosing) PeriodClosingResponse {
	return PeriodClosingResponse{
		ClosingID:      c.ClosingID,
		Scope:          c.Scope,
		PeriodEnd:      c.PeriodEnd.Format(domain.DateLayout),
		ClosingBalance: c.ClosingBalance,
		CreatedBy:      c.CreatedBy,
	}
}
