package repositories

import (
	"context"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations over posted financial records
type TransactionReader interface {
	// ListTransactions returns the records dated within [from, to], optionally limited to
	// one account, in source insertion order.
	ListTransactions(ctx context.Context, from, to time.Time, accountID *string) ([]domain.TransactionRecord, error)

	// CumulativeTotals sums signed amounts per (kind, head) for records dated within
	// [from, before). These are the cumulative baselines of a report.
	CumulativeTotals(ctx context.Context, from, before time.Time, accountID *string) ([]domain.CategoryTotal, error)

	// CashBalanceBefore returns the school-wide cash-basis balance (opening balances of
	// every active account plus receipts minus payments) dated before the given date.
	CashBalanceBefore(ctx context.Context, before time.Time) (decimal.Decimal, error)

	// AccountBalanceBefore returns the opening balance of the account plus the cash
	// movement (receipts minus payments) of its records dated before the given date.
	AccountBalanceBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error)
}

// AccountReader defines read operations for cash and bank accounts
type AccountReader interface {
	// FindAccountByID returns ErrNotFound when no such account exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListBankAccounts returns every active bank account.
	ListBankAccounts(ctx context.Context) ([]domain.Account, error)
}

// PeriodClosingStore defines access to the closing-balance checkpoints
type PeriodClosingStore interface {
	// FindClosing returns the checkpoint for the scope whose period ends on periodEnd,
	// or ErrNotFound.
	FindClosing(ctx context.Context, scope string, periodEnd time.Time) (*domain.PeriodClosing, error)

	// SaveClosing inserts or replaces the checkpoint of (scope, periodEnd).
	SaveClosing(ctx context.Context, closing domain.PeriodClosing) error
}

// FeeReader defines read operations for fee records
type FeeReader interface {
	// ListFees returns the month's fee records ordered by class, student and insertion.
	ListFees(ctx context.Context, query domain.FeeDueQuery) ([]domain.FeeRecord, error)
}

// ReportingRepository combines everything the report services read
type ReportingRepository interface {
	TransactionReader
	AccountReader
	PeriodClosingStore
	FeeReader
}
