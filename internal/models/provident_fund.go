package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProvidentFundTransaction is a row of the provident_fund_transactions table.
type ProvidentFundTransaction struct {
	TransactionID        string          `db:"transaction_id"`
	TeacherID            string          `db:"teacher_id"`
	TransactionType      string          `db:"transaction_type"`
	EmployeeContribution decimal.Decimal `db:"employee_contribution"`
	EmployerContribution decimal.Decimal `db:"employer_contribution"`
	TotalAmount          decimal.Decimal `db:"total_amount"`
	TransactionDate      time.Time       `db:"transaction_date"`
	Notes                *string         `db:"notes"`
	AuditFields
}
