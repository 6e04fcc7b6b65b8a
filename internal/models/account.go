package models

import "github.com/shopspring/decimal"

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	AccountKind    string          `db:"account_kind"` // bank | cash
	BankName       *string         `db:"bank_name"`
	AccountNumber  *string         `db:"account_number"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
