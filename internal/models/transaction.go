package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the financial_transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	Amount          decimal.Decimal `db:"amount"`
	AccountID       string          `db:"account_id"`
	Category        string          `db:"category"`
	Head            *string         `db:"head"`
	Description     *string         `db:"description"`
	Direction       string          `db:"direction"` // debit | credit
}

// PeriodClosing is a row of the period_closings table.
type PeriodClosing struct {
	ClosingID      string          `db:"closing_id"`
	Scope          string          `db:"scope"`
	PeriodEnd      time.Time       `db:"period_end"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
