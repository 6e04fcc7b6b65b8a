package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PFTransactionType is the kind of provident-fund ledger entry.
type PFTransactionType string

const (
	PFOpening      PFTransactionType = "opening"
	PFContribution PFTransactionType = "contribution"
	PFWithdrawal   PFTransactionType = "withdrawal"
)

// ProvidentFundTransaction is an append-only PF ledger entry of a teacher.
type ProvidentFundTransaction struct {
	TransactionID        string            `json:"transactionID"`
	TeacherID            string            `json:"teacherID"`
	Type                 PFTransactionType `json:"type"`
	EmployeeContribution decimal.Decimal   `json:"employeeContribution"`
	EmployerContribution decimal.Decimal   `json:"employerContribution"`
	TotalAmount          decimal.Decimal   `json:"totalAmount"`
	Date                 time.Time         `json:"date"`
	Notes                string            `json:"notes,omitempty"`
	AuditFields
}

// Effect is the signed change this entry makes to the balance.
// Withdrawals use TotalAmount, falling back to the two components when it is zero.
func (t ProvidentFundTransaction) Effect() decimal.Decimal {
	contributed := t.EmployeeContribution.Add(t.EmployerContribution)
	switch t.Type {
	case PFOpening, PFContribution:
		return contributed
	case PFWithdrawal:
		if t.TotalAmount.IsZero() {
			return contributed.Neg()
		}
		return t.TotalAmount.Neg()
	default:
		return decimal.Zero
	}
}

// PFLedgerLine is one entry with the balance after it.
type PFLedgerLine struct {
	ProvidentFundTransaction
	Balance decimal.Decimal `json:"balance"`
}

// ProvidentFundLedger is a teacher's full PF history. Balance is always recomputed.
type ProvidentFundLedger struct {
	TeacherID      string          `json:"teacherID"`
	TeacherName    string          `json:"teacherName"`
	Lines          []PFLedgerLine  `json:"lines"`
	TotalEmployee  decimal.Decimal `json:"totalEmployee"`
	TotalEmployer  decimal.Decimal `json:"totalEmployer"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	Balance        decimal.Decimal `json:"balance"`
	Warnings       []Warning       `json:"warnings"`
}
