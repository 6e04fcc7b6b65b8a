package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type providentFundRepository struct {
	BaseRepository
}

func newProvidentFundRepository(db *pgxpool.Pool) portsrepo.ProvidentFundRepository {
	return &providentFundRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// pfQuerier is the part of pgxpool.Pool and pgx.Tx the ledger queries need.
type pfQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var (
	_ pfQuerier = (*pgxpool.Pool)(nil)
	_ pfQuerier = pgx.Tx(nil)
)

const pfListSQL = `
	SELECT transaction_id, teacher_id, transaction_type, employee_contribution, employer_contribution,
		total_amount, transaction_date, notes, created_at, created_by, last_updated_at, last_updated_by
	FROM provident_fund_transactions
	WHERE teacher_id = $1
	ORDER BY transaction_date, seq
`

const pfInsertSQL = `
	INSERT INTO provident_fund_transactions
		(transaction_id, teacher_id, transaction_type, employee_contribution, employer_contribution,
		total_amount, transaction_date, notes, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// pfLockTeacherSQL serialises checked appends per teacher for the life of the transaction.
const pfLockTeacherSQL = `SELECT teacher_id FROM teachers WHERE teacher_id = $1 FOR UPDATE`

// ListByTeacher returns every entry of the teacher ordered by date and insertion.
func (r *providentFundRepository) ListByTeacher(ctx context.Context, teacherID string) ([]domain.ProvidentFundTransaction, error) {
	return listPFEntries(ctx, r.Pool, teacherID)
}

// SaveTransaction appends an entry. The partial unique index on opening entries
// turns a second opening into ErrDuplicate.
func (r *providentFundRepository) SaveTransaction(ctx context.Context, txn domain.ProvidentFundTransaction) error {
	return insertPFEntry(ctx, r.Pool, txn)
}

// SaveChecked locks the teacher row, reads the ledger inside the same
// transaction and appends txn only if check passes. A concurrent checked append
// for the teacher waits on the lock and then sees this entry.
func (r *providentFundRepository) SaveChecked(ctx context.Context, txn domain.ProvidentFundTransaction, check portsrepo.LedgerCheck) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	var locked string
	if err := tx.QueryRow(ctx, pfLockTeacherSQL, txn.TeacherID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: teacher %s", apperrors.ErrNotFound, txn.TeacherID)
		}
		return fmt.Errorf("error locking teacher %s: %w", txn.TeacherID, err)
	}

	entries, err := listPFEntries(ctx, tx, txn.TeacherID)
	if err != nil {
		return err
	}
	if err := check(entries); err != nil {
		return err
	}
	if err := insertPFEntry(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func listPFEntries(ctx context.Context, q pfQuerier, teacherID string) ([]domain.ProvidentFundTransaction, error) {
	rows, err := q.Query(ctx, pfListSQL, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error querying provident fund entries: %w", err)
	}
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ProvidentFundTransaction])
	if err != nil {
		return nil, fmt.Errorf("error scanning provident fund entries: %w", err)
	}

	result := make([]domain.ProvidentFundTransaction, len(txns))
	for i, t := range txns {
		result[i] = mapping.ToDomainPFTransaction(t)
	}
	return result, nil
}

func insertPFEntry(ctx context.Context, q pfQuerier, txn domain.ProvidentFundTransaction) error {
	m := mapping.ToModelPFTransaction(txn)
	_, err := q.Exec(ctx, pfInsertSQL,
		m.TransactionID, m.TeacherID, m.TransactionType, m.EmployeeContribution, m.EmployerContribution,
		m.TotalAmount, m.TransactionDate, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: teacher %s already has an opening entry", apperrors.ErrDuplicate, m.TeacherID)
		}
		return fmt.Errorf("failed to save provident fund entry %s: %w", m.TransactionID, err)
	}
	return nil
}
