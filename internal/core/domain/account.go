package domain

import "github.com/shopspring/decimal"

// AccountKind distinguishes cash-in-hand from bank accounts.
type AccountKind string

const (
	AccountBank AccountKind = "bank"
	AccountCash AccountKind = "cash"
)

// Account is a cash or bank account that transactions can be filtered by.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	Kind           AccountKind     `json:"kind"`
	BankName       string          `json:"bankName,omitempty"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
