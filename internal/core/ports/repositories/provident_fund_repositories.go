package repositories

import (
	"context"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
)

// LedgerCheck inspects a teacher's entries before a checked append and returns
// an error to refuse it.
type LedgerCheck func(entries []domain.ProvidentFundTransaction) error

// ProvidentFundRepository defines access to the append-only PF ledger
type ProvidentFundRepository interface {
	// ListByTeacher returns every entry of the teacher ordered by date and insertion.
	ListByTeacher(ctx context.Context, teacherID string) ([]domain.ProvidentFundTransaction, error)

	// SaveTransaction appends an entry. A second opening entry for the same teacher
	// fails with ErrDuplicate.
	SaveTransaction(ctx context.Context, txn domain.ProvidentFundTransaction) error

	// SaveChecked appends txn only if check accepts the teacher's entries. Checked
	// appends for the same teacher run one at a time, so check always sees every
	// entry committed before it. An unknown teacher fails with ErrNotFound.
	SaveChecked(ctx context.Context, txn domain.ProvidentFundTransaction, check LedgerCheck) error
}
