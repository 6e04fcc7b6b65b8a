package mapping

import (
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Name:           m.Name,
		Kind:           domain.AccountKind(m.AccountKind),
		BankName:       deref(m.BankName),
		AccountNumber:  deref(m.AccountNumber),
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToDomainTransaction converts a stored financial transaction into an aggregator record.
func ToDomainTransaction(m models.Transaction) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID: m.TransactionID,
		Date:          domain.TruncateDate(m.TransactionDate),
		Amount:        m.Amount,
		AccountID:     m.AccountID,
		Kind:          domain.TransactionKind(m.Category),
		Head:          deref(m.Head),
		Description:   deref(m.Description),
		Direction:     domain.Direction(m.Direction),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.TransactionRecord {
	ds := make([]domain.TransactionRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelPeriodClosing converts a domain PeriodClosing to a model PeriodClosing
func ToModelPeriodClosing(d domain.PeriodClosing) models.PeriodClosing {
	return models.PeriodClosing{
		ClosingID:      d.ClosingID,
		Scope:          d.Scope,
		PeriodEnd:      d.PeriodEnd,
		ClosingBalance: d.ClosingBalance,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainPeriodClosing converts a model PeriodClosing to a domain PeriodClosing
func ToDomainPeriodClosing(m models.PeriodClosing) domain.PeriodClosing {
	return domain.PeriodClosing{
		ClosingID:      m.ClosingID,
		Scope:          m.Scope,
		PeriodEnd:      domain.TruncateDate(m.PeriodEnd),
		ClosingBalance: m.ClosingBalance,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainFee converts a model Fee and derives its due amount and status.
func ToDomainFee(m models.Fee) domain.FeeRecord {
	f := domain.FeeRecord{
		FeeID:       m.FeeID,
		StudentID:   m.StudentID,
		StudentName: m.StudentName,
		ClassID:     m.ClassID,
		ClassName:   m.ClassName,
		FeeType:     m.FeeType,
		Month:       m.Month,
		Year:        m.Year,
		TotalAmount: m.TotalAmount,
		PaidAmount:  m.PaidAmount,
	}
	f.Derive()
	return f
}
