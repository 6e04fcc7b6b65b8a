package accounting

import (
	"fmt"
	"sort"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProvidentFundBalance replays the ledger: contributions of opening and
// contribution entries minus the totals of withdrawals.
func ProvidentFundBalance(txns []domain.ProvidentFundTransaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		balance = balance.Add(t.Effect())
	}
	return balance
}

// BuildProvidentFundLedger orders the entries by date (stable) and attaches the
// running balance after each one. A negative final balance is reported as a warning.
func BuildProvidentFundLedger(teacher domain.Person, txns []domain.ProvidentFundTransaction) *domain.ProvidentFundLedger {
	ordered := make([]domain.ProvidentFundTransaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	ledger := &domain.ProvidentFundLedger{
		TeacherID:      teacher.PersonID,
		TeacherName:    teacher.Name,
		Lines:          make([]domain.PFLedgerLine, 0, len(ordered)),
		TotalEmployee:  decimal.Zero,
		TotalEmployer:  decimal.Zero,
		TotalWithdrawn: decimal.Zero,
		Balance:        decimal.Zero,
		Warnings:       []domain.Warning{},
	}

	for _, t := range ordered {
		ledger.Balance = ledger.Balance.Add(t.Effect())
		switch t.Type {
		case domain.PFOpening, domain.PFContribution:
			ledger.TotalEmployee = ledger.TotalEmployee.Add(t.EmployeeContribution)
			ledger.TotalEmployer = ledger.TotalEmployer.Add(t.EmployerContribution)
		case domain.PFWithdrawal:
			ledger.TotalWithdrawn = ledger.TotalWithdrawn.Add(t.Effect().Neg())
		}
		ledger.Lines = append(ledger.Lines, domain.PFLedgerLine{ProvidentFundTransaction: t, Balance: ledger.Balance})
	}

	if ledger.Balance.IsNegative() {
		b := ledger.Balance
		ledger.Warnings = append(ledger.Warnings, domain.NewWarning(
			domain.WarningNegativePFBalance,
			fmt.Sprintf("provident fund balance is negative (%s)", b.StringFixed(2)),
			&b,
		))
	}
	return ledger
}
