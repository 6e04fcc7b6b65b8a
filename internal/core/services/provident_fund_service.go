package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type providentFundService struct {
	BaseService
	pfRepo     portsrepo.ProvidentFundRepository
	rosterRepo portsrepo.RosterReader
}

// NewProvidentFundService creates a new provident fund service
func NewProvidentFundService(pfRepo portsrepo.ProvidentFundRepository, rosterRepo portsrepo.RosterReader) portssvc.ProvidentFundService {
	return &providentFundService{
		pfRepo:     pfRepo,
		rosterRepo: rosterRepo,
	}
}

var _ portssvc.ProvidentFundService = (*providentFundService)(nil)

func (s *providentFundService) teacher(ctx context.Context, teacherID string) (*domain.Person, error) {
	teacher, err := s.rosterRepo.FindPerson(ctx, domain.PersonTeacher, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: teacher %s", apperrors.ErrUnknownPerson, teacherID)
		}
		s.LogError(ctx, err, "Failed to look up teacher", slog.String("teacher_id", teacherID))
		return nil, fmt.Errorf("failed to look up teacher: %w", err)
	}
	return teacher, nil
}

func (s *providentFundService) entries(ctx context.Context, teacherID string) ([]domain.ProvidentFundTransaction, error) {
	txns, err := s.pfRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list provident fund entries", slog.String("teacher_id", teacherID))
		return nil, fmt.Errorf("failed to list provident fund entries: %w", err)
	}
	return txns, nil
}

// Ledger returns every entry of the teacher with running balances
func (s *providentFundService) Ledger(ctx context.Context, teacherID string) (*domain.ProvidentFundLedger, error) {
	teacher, err := s.teacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	txns, err := s.entries(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	ledger := accounting.BuildProvidentFundLedger(*teacher, txns)
	for _, w := range ledger.Warnings {
		s.LogWarn(ctx, "Provident fund data inconsistency",
			slog.String("teacher_id", teacherID),
			slog.String("code", string(w.Code)))
	}
	return ledger, nil
}

// Balance returns the teacher's current balance
func (s *providentFundService) Balance(ctx context.Context, teacherID string) (decimal.Decimal, error) {
	if _, err := s.teacher(ctx, teacherID); err != nil {
		return decimal.Zero, err
	}
	txns, err := s.entries(ctx, teacherID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.ProvidentFundBalance(txns), nil
}

func parseEntryDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, value)
	}
	return date, nil
}

func (s *providentFundService) contribution(ctx context.Context, teacherID string, kind domain.PFTransactionType, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	if req.EmployeeContribution.IsNegative() || req.EmployerContribution.IsNegative() {
		return nil, fmt.Errorf("%w: contributions cannot be negative", apperrors.ErrValidation)
	}
	total := req.EmployeeContribution.Add(req.EmployerContribution)
	if kind == domain.PFContribution && !total.IsPositive() {
		return nil, fmt.Errorf("%w: contribution must be greater than zero", apperrors.ErrValidation)
	}
	date, err := parseEntryDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.teacher(ctx, teacherID); err != nil {
		return nil, err
	}

	if kind == domain.PFOpening {
		txns, err := s.entries(ctx, teacherID)
		if err != nil {
			return nil, err
		}
		for _, t := range txns {
			if t.Type == domain.PFOpening {
				return nil, fmt.Errorf("%w: teacher %s already has an opening entry", apperrors.ErrDuplicate, teacherID)
			}
		}
	}

	txn := s.newEntry(teacherID, kind, date, req.Notes, userID)
	txn.EmployeeContribution = domain.RoundMoney(req.EmployeeContribution)
	txn.EmployerContribution = domain.RoundMoney(req.EmployerContribution)
	txn.TotalAmount = txn.EmployeeContribution.Add(txn.EmployerContribution)
	return s.save(ctx, txn)
}

func (s *providentFundService) newEntry(teacherID string, kind domain.PFTransactionType, date time.Time, notes, userID string) domain.ProvidentFundTransaction {
	now := s.now()
	return domain.ProvidentFundTransaction{
		TransactionID:        uuid.NewString(),
		TeacherID:            teacherID,
		Type:                 kind,
		EmployeeContribution: decimal.Zero,
		EmployerContribution: decimal.Zero,
		TotalAmount:          decimal.Zero,
		Date:                 domain.TruncateDate(date),
		Notes:                notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

func (s *providentFundService) save(ctx context.Context, txn domain.ProvidentFundTransaction) (*domain.ProvidentFundTransaction, error) {
	if err := s.pfRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save provident fund entry",
			slog.String("teacher_id", txn.TeacherID),
			slog.String("type", string(txn.Type)))
		return nil, fmt.Errorf("failed to save provident fund entry: %w", err)
	}
	s.LogInfo(ctx, "Provident fund entry recorded",
		slog.String("teacher_id", txn.TeacherID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.TotalAmount.StringFixed(2)))
	return &txn, nil
}

// RecordOpening appends the teacher's single opening entry
func (s *providentFundService) RecordOpening(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	return s.contribution(ctx, teacherID, domain.PFOpening, req, userID)
}

// RecordContribution appends a monthly contribution
func (s *providentFundService) RecordContribution(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	return s.contribution(ctx, teacherID, domain.PFContribution, req, userID)
}

// RecordWithdrawal appends a withdrawal not exceeding the current balance. The
// balance is checked inside the repository's append so two concurrent
// withdrawals cannot both pass against the same balance.
func (s *providentFundService) RecordWithdrawal(ctx context.Context, teacherID string, req dto.PFWithdrawalRequest, userID string) (*domain.ProvidentFundTransaction, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal must be greater than zero", apperrors.ErrValidation)
	}
	date, err := parseEntryDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.teacher(ctx, teacherID); err != nil {
		return nil, err
	}

	txn := s.newEntry(teacherID, domain.PFWithdrawal, date, req.Notes, userID)
	txn.TotalAmount = domain.RoundMoney(req.TotalAmount)
	err = s.pfRepo.SaveChecked(ctx, txn, func(entries []domain.ProvidentFundTransaction) error {
		balance := accounting.ProvidentFundBalance(entries)
		if txn.TotalAmount.GreaterThan(balance) {
			return fmt.Errorf("%w: withdrawal %s exceeds balance %s",
				apperrors.ErrValidation, txn.TotalAmount.StringFixed(2), balance.StringFixed(2))
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrValidation):
		s.LogWarn(ctx, "Provident fund withdrawal refused",
			slog.String("teacher_id", teacherID),
			slog.String("amount", txn.TotalAmount.StringFixed(2)))
		return nil, err
	case errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("%w: teacher %s", apperrors.ErrUnknownPerson, teacherID)
	default:
		s.LogError(ctx, err, "Failed to save provident fund entry",
			slog.String("teacher_id", teacherID),
			slog.String("type", string(txn.Type)))
		return nil, fmt.Errorf("failed to save provident fund entry: %w", err)
	}

	s.LogInfo(ctx, "Provident fund entry recorded",
		slog.String("teacher_id", teacherID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.TotalAmount.StringFixed(2)))
	return &txn, nil
}
