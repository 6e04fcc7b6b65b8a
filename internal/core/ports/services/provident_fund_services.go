package services

import (
	"context"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/shopspring/decimal"
)

// ProvidentFundService defines PF ledger operations. Balances are always
// recomputed from the full ledger.
type ProvidentFundService interface {
	// Ledger returns every entry of the teacher with running balances
	Ledger(ctx context.Context, teacherID string) (*domain.ProvidentFundLedger, error)

	// Balance returns the teacher's current balance
	Balance(ctx context.Context, teacherID string) (decimal.Decimal, error)

	// RecordOpening appends the teacher's single opening entry
	RecordOpening(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error)

	// RecordContribution appends a monthly contribution
	RecordContribution(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error)

	// RecordWithdrawal appends a withdrawal not exceeding the current balance
	RecordWithdrawal(ctx context.Context, teacherID string, req dto.PFWithdrawalRequest, userID string) (*domain.ProvidentFundTransaction, error)
}
