package dto

import (
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PFContributionRequest is used for both the opening entry and monthly contributions.
type PFContributionRequest struct {
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
	EmployerContribution decimal.Decimal `json:"employerContribution"`
	Date                 string          `json:"date" binding:"required,datetime=2006-01-02"`
	Notes                string          `json:"notes"`
}

// PFWithdrawalRequest records money paid out of a teacher's fund.
type PFWithdrawalRequest struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Notes       string          `json:"notes"`
}

// PFTransactionResponse is one ledger entry.
type PFTransactionResponse struct {
	TransactionID        string           `json:"transactionID"`
	Type                 string           `json:"type"`
	EmployeeContribution decimal.Decimal  `json:"employeeContribution"`
	EmployerContribution decimal.Decimal  `json:"employerContribution"`
	TotalAmount          decimal.Decimal  `json:"totalAmount"`
	Date                 string           `json:"date"`
	Notes                string           `json:"notes,omitempty"`
	Balance              *decimal.Decimal `json:"balance,omitempty"`
}

// PFLedgerResponse is a teacher's full PF history.
type PFLedgerResponse struct {
	TeacherID      string                  `json:"teacherID"`
	TeacherName    string                  `json:"teacherName"`
	Lines          []PFTransactionResponse `json:"lines"`
	TotalEmployee  decimal.Decimal         `json:"totalEmployee"`
	TotalEmployer  decimal.Decimal         `json:"totalEmployer"`
	TotalWithdrawn decimal.Decimal         `json:"totalWithdrawn"`
	Balance        decimal.Decimal         `json:"balance"`
	Warnings       []domain.Warning        `json:"warnings"`
}

// ToPFTransactionResponse converts a single ledger entry.
func ToPFTransactionResponse(t domain.ProvidentFundTransaction) PFTransactionResponse {
	return PFTransactionResponse{
		TransactionID:        t.TransactionID,
		Type:                 string(t.Type),
		EmployeeContribution: t.EmployeeContribution,
		EmployerContribution: t.EmployerContribution,
		TotalAmount:          t.TotalAmount,
		Date:                 t.Date.Format(domain.DateLayout),
		Notes:                t.Notes,
	}
}

// ToPFLedgerResponse converts a domain ledger.
func ToPFLedgerResponse(l *domain.ProvidentFundLedger) PFLedgerResponse {
	resp := PFLedgerResponse{
		TeacherID:      l.TeacherID,
		TeacherName:    l.TeacherName,
		Lines:          make([]PFTransactionResponse, len(l.Lines)),
		TotalEmployee:  l.TotalEmployee,
		TotalEmployer:  l.TotalEmployer,
		TotalWithdrawn: l.TotalWithdrawn,
		Balance:        l.Balance,
		Warnings:       l.Warnings,
	}
	for i, line := range l.Lines {
		r := ToPFTransactionResponse(line.ProvidentFundTransaction)
		balance := line.Balance
		r.Balance = &balance
		resp.Lines[i] = r
	}
	return resp
}

// PFBalanceResponse is a teacher's recomputed balance.
type PFBalanceResponse struct {
	TeacherID string          `json:"teacherID"`
	Balance   decimal.Decimal `json:"balance"`
}
