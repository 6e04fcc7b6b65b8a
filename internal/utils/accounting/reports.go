package accounting

import (
	"fmt"
	"sort"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildBalanceSheet splits an aggregation into Fund & Liabilities and Property &
// Assets. Totals use cumulative amounts since a balance sheet is as of period end.
// A non-zero difference is reported as a warning, the totals are left as they are.
func BuildBalanceSheet(agg *domain.Aggregation) *domain.BalanceSheetReport {
	report := &domain.BalanceSheetReport{
		Period:             agg.Period,
		FundAndLiabilities: side("Fund and Liabilities", agg.RowsOf(domain.KindFund, domain.KindLiability)),
		PropertyAndAssets:  side("Property and Assets", agg.RowsOf(domain.KindAsset)),
		Warnings:           []domain.Warning{},
	}
	report.BalanceDifference = report.FundAndLiabilities.CumulativeTotal.Sub(report.PropertyAndAssets.CumulativeTotal)
	if !report.BalanceDifference.IsZero() {
		diff := report.BalanceDifference
		report.Warnings = append(report.Warnings, domain.NewWarning(
			domain.WarningBalanceMismatch,
			fmt.Sprintf("fund and liabilities differ from property and assets by %s", diff.StringFixed(2)),
			&diff,
		))
	}
	report.Unclassified, report.Warnings = unclassified(agg, report.Warnings)
	return report
}

// BuildIncomeExpenditure builds the accrual-basis statement. The two sides are
// returned independently sized; padding is left to the renderer.
func BuildIncomeExpenditure(agg *domain.Aggregation) *domain.IncomeExpenditureReport {
	report := &domain.IncomeExpenditureReport{
		Period:      agg.Period,
		Income:      side("Income", agg.RowsOf(domain.KindIncome)),
		Expenditure: side("Expenditure", agg.RowsOf(domain.KindExpenditure)),
		Warnings:    []domain.Warning{},
	}
	report.MonthSurplus = report.Income.MonthTotal.Sub(report.Expenditure.MonthTotal)
	report.CumulativeSurplus = report.Income.CumulativeTotal.Sub(report.Expenditure.CumulativeTotal)
	report.Unclassified, report.Warnings = unclassified(agg, report.Warnings)
	return report
}

// BuildReceiptPayment builds the cash-basis statement. The opening balance comes
// from the baseline; when the stored prior closing differs from it a warning is
// attached and both figures are kept.
func BuildReceiptPayment(agg *domain.Aggregation) *domain.ReceiptPaymentReport {
	report := &domain.ReceiptPaymentReport{
		Period:         agg.Period,
		OpeningBalance: agg.Baseline.OpeningBalance,
		Receipts:       side("Receipts", agg.RowsOf(domain.KindReceipt)),
		Payments:       side("Payments", agg.RowsOf(domain.KindPayment)),
		Warnings:       []domain.Warning{},
	}
	report.ClosingBalance = report.OpeningBalance.Add(report.Receipts.MonthTotal).Sub(report.Payments.MonthTotal)
	if w, ok := openingMismatch(agg.Baseline); ok {
		report.Warnings = append(report.Warnings, w)
	}
	report.Unclassified, report.Warnings = unclassified(agg, report.Warnings)
	return report
}

// BuildBankReport lists every in-period receipt and payment on the account with a
// running balance. Lines are ordered by date; records on the same date keep source
// order. A line's movement is the record's CashMovement, so a credit receipt is a
// deposit here exactly as it is a receipt in BuildReceiptPayment. A reversal shows
// as a negative deposit or withdrawal. Records of other kinds are left out and
// reported in one warning.
func BuildBankReport(agg *domain.Aggregation, account domain.Account) *domain.BankReport {
	txns := make([]domain.TransactionRecord, 0, len(agg.Transactions))
	skipped, skippedAmount := 0, decimal.Zero
	for _, t := range agg.Transactions {
		if !t.IsCashMovement() {
			skipped++
			skippedAmount = skippedAmount.Add(t.Amount)
			continue
		}
		txns = append(txns, t)
	}
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})

	report := &domain.BankReport{
		Period:          agg.Period,
		Account:         account,
		OpeningBalance:  agg.Baseline.OpeningBalance,
		Lines:           make([]domain.BankLedgerLine, 0, len(txns)),
		TotalDeposit:    decimal.Zero,
		TotalWithdrawal: decimal.Zero,
		Warnings:        []domain.Warning{},
	}

	balance := report.OpeningBalance
	for _, t := range txns {
		_, label := t.GroupKey()
		line := domain.BankLedgerLine{
			Date:          t.Date,
			TransactionID: t.TransactionID,
			Label:         label,
			Description:   t.Description,
			Deposit:       decimal.Zero,
			Withdrawal:    decimal.Zero,
		}
		movement := t.CashMovement()
		if t.Kind == domain.KindReceipt {
			line.Deposit = movement
			report.TotalDeposit = report.TotalDeposit.Add(movement)
		} else {
			line.Withdrawal = movement.Neg()
			report.TotalWithdrawal = report.TotalWithdrawal.Add(line.Withdrawal)
		}
		balance = balance.Add(movement)
		line.RunningBalance = balance
		report.Lines = append(report.Lines, line)
	}
	report.ClosingBalance = balance

	if w, ok := openingMismatch(agg.Baseline); ok {
		report.Warnings = append(report.Warnings, w)
	}
	if skipped > 0 {
		report.Warnings = append(report.Warnings, domain.NewWarning(
			domain.WarningUnclassifiedEntries,
			fmt.Sprintf("%d transactions on the account are neither receipts nor payments and are not listed", skipped),
			&skippedAmount,
		))
	}
	return report
}

// ClosingBalance is opening plus net cash movement of the aggregation, the
// figure stored as the next period's prior closing.
func ClosingBalance(agg *domain.Aggregation) decimal.Decimal {
	receipts := SumMonth(agg.RowsOf(domain.KindReceipt))
	payments := SumMonth(agg.RowsOf(domain.KindPayment))
	return agg.Baseline.OpeningBalance.Add(receipts).Sub(payments)
}

// BankClosingBalance is opening plus the cash movement of every record.
func BankClosingBalance(agg *domain.Aggregation) decimal.Decimal {
	return agg.Baseline.OpeningBalance.Add(NetCashMovement(agg.Transactions))
}

// NetCashMovement sums CashMovement over the records. It is how an opening
// balance is rolled forward across periods.
func NetCashMovement(txns []domain.TransactionRecord) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.CashMovement())
	}
	return total
}

func openingMismatch(b domain.Baseline) (domain.Warning, bool) {
	if b.PriorClosingBalance == nil || b.PriorClosingBalance.Equal(b.OpeningBalance) {
		return domain.Warning{}, false
	}
	diff := b.OpeningBalance.Sub(*b.PriorClosingBalance)
	return domain.NewWarning(
		domain.WarningOpeningMismatch,
		fmt.Sprintf("opening balance %s does not match prior closing balance %s",
			b.OpeningBalance.StringFixed(2), b.PriorClosingBalance.StringFixed(2)),
		&diff,
	), true
}
