package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// signedAmountSQL mirrors TransactionRecord.SignedAmount: positive in the
// category's normal direction, negative for reversals.
const signedAmountSQL = `
	CASE WHEN (t.category IN ('fund', 'liability', 'income', 'receipt')) = (t.direction = 'credit')
		THEN t.amount ELSE -t.amount END`

// cashMovementSQL mirrors TransactionRecord.CashMovement: receipts add their
// signed amount, payments subtract it and other categories count zero.
const cashMovementSQL = `
	CASE t.category
		WHEN 'receipt' THEN ` + signedAmountSQL + `
		WHEN 'payment' THEN -(` + signedAmountSQL + `)
		ELSE 0 END`

const cashBalanceBeforeSQL = `
	SELECT
		(SELECT COALESCE(SUM(opening_balance), 0) FROM accounts WHERE is_active)
		+ COALESCE(SUM(` + cashMovementSQL + `), 0)
	FROM financial_transactions t
	WHERE t.transaction_date < $1
`

const accountBalanceBeforeSQL = `
	SELECT a.opening_balance + COALESCE((
		SELECT SUM(` + cashMovementSQL + `)
		FROM financial_transactions t
		WHERE t.account_id = a.account_id AND t.transaction_date < $2
	), 0)
	FROM accounts a
	WHERE a.account_id = $1
`

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ListTransactions returns the records dated within [from, to] in insertion order.
func (r *reportingRepository) ListTransactions(ctx context.Context, from, to time.Time, accountID *string) ([]domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, transaction_date, amount, account_id, category, head, description, direction
		FROM financial_transactions
		WHERE transaction_date BETWEEN $1 AND $2
			AND ($3::text IS NULL OR account_id = $3)
		ORDER BY seq
	`

	rows, err := r.Pool.Query(ctx, query, from, to, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("error scanning transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

// CumulativeTotals sums signed amounts per (category, head) dated within [from, before).
func (r *reportingRepository) CumulativeTotals(ctx context.Context, from, before time.Time, accountID *string) ([]domain.CategoryTotal, error) {
	query := `
		SELECT
			t.category,
			COALESCE(NULLIF(t.head, ''), 'Other') AS label,
			SUM(` + signedAmountSQL + `) AS cumulative,
			COUNT(*) AS txn_count
		FROM financial_transactions t
		WHERE t.transaction_date >= $1
			AND t.transaction_date < $2
			AND ($3::text IS NULL OR t.account_id = $3)
		GROUP BY t.category, COALESCE(NULLIF(t.head, ''), 'Other')
		ORDER BY MIN(t.seq)
	`

	rows, err := r.Pool.Query(ctx, query, from, before, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying cumulative totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var (
			category string
			count    int64
			row      domain.CategoryTotal
		)
		if err := rows.Scan(&category, &row.Label, &row.CumulativeAmount, &count); err != nil {
			return nil, fmt.Errorf("error scanning cumulative total: %w", err)
		}
		row.Kind = domain.TransactionKind(category)
		row.MonthAmount = decimal.Zero
		row.TransactionCount = int(count)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cumulative totals: %w", err)
	}
	return result, nil
}

// CashBalanceBefore returns opening balances of every active account plus the
// cash movement of every record dated before the given date.
func (r *reportingRepository) CashBalanceBefore(ctx context.Context, before time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, cashBalanceBeforeSQL, before).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("error computing cash balance: %w", err)
	}
	return balance, nil
}

// AccountBalanceBefore returns the account's opening balance plus the cash
// movement of its records dated before the given date.
func (r *reportingRepository) AccountBalanceBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, accountBalanceBeforeSQL, accountID, before).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return decimal.Zero, fmt.Errorf("error computing account balance: %w", err)
	}
	return balance, nil
}

const accountColumns = `account_id, name, account_kind, bank_name, account_number, opening_balance, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

// FindAccountByID returns ErrNotFound when no such account exists.
func (r *reportingRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying account %s: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("error scanning account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListBankAccounts returns every active bank account by name.
func (r *reportingRepository) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_kind = 'bank' AND is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying bank accounts: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("error scanning bank accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// FindClosing returns the checkpoint of (scope, periodEnd), or ErrNotFound.
func (r *reportingRepository) FindClosing(ctx context.Context, scope string, periodEnd time.Time) (*domain.PeriodClosing, error) {
	query := `
		SELECT closing_id, scope, period_end, closing_balance, created_at, created_by
		FROM period_closings
		WHERE scope = $1 AND period_end = $2
	`
	rows, err := r.Pool.Query(ctx, query, scope, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("error querying period closing: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PeriodClosing])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no closing for %s on %s", apperrors.ErrNotFound, scope, periodEnd.Format(domain.DateLayout))
		}
		return nil, fmt.Errorf("error scanning period closing: %w", err)
	}
	closing := mapping.ToDomainPeriodClosing(m)
	return &closing, nil
}

// SaveClosing inserts or replaces the checkpoint of (scope, periodEnd).
func (r *reportingRepository) SaveClosing(ctx context.Context, closing domain.PeriodClosing) error {
	m := mapping.ToModelPeriodClosing(closing)
	query := `
		INSERT INTO period_closings (closing_id, scope, period_end, closing_balance, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (scope, period_end) DO UPDATE
		SET closing_balance = EXCLUDED.closing_balance,
			created_at = EXCLUDED.created_at,
			created_by = EXCLUDED.created_by
	`
	if _, err := r.Pool.Exec(ctx, query, m.ClosingID, m.Scope, m.PeriodEnd, m.ClosingBalance, m.CreatedAt, m.CreatedBy); err != nil {
		return fmt.Errorf("failed to save period closing %s/%s: %w", m.Scope, m.PeriodEnd.Format(domain.DateLayout), err)
	}
	return nil
}

// ListFees returns the month's fee records ordered by class, student and insertion.
func (r *reportingRepository) ListFees(ctx context.Context, query domain.FeeDueQuery) ([]domain.FeeRecord, error) {
	sql := `
		SELECT
			f.fee_id,
			s.student_id,
			s.name AS student_name,
			c.class_id,
			c.name AS class_name,
			f.fee_type,
			f.month,
			f.year,
			f.total_amount,
			f.paid_amount
		FROM fees f
		JOIN students s ON s.student_id = f.student_id
		JOIN classes c ON c.class_id = s.class_id
		WHERE f.month = $1 AND f.year = $2
			AND ($3::text IS NULL OR c.class_id = $3)
			AND ($4::text IS NULL OR s.student_id = $4)
		ORDER BY c.name, s.name, f.seq
	`
	rows, err := r.Pool.Query(ctx, sql, query.Month, query.Year, query.ClassID, query.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error querying fees: %w", err)
	}
	fees, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Fee])
	if err != nil {
		return nil, fmt.Errorf("error scanning fees: %w", err)
	}

	records := make([]domain.FeeRecord, len(fees))
	for i, f := range fees {
		records[i] = mapping.ToDomainFee(f)
	}
	return records, nil
}
