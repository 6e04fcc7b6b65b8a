package accounting

import (
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

type groupKey struct {
	kind  domain.TransactionKind
	label string
}

// Aggregate groups the in-period transactions by (kind, label) and computes the
// month and cumulative amount of every group.
//
// Rows keep first-appearance order: baseline rows first, then new groups in the
// order their first transaction appears in txns. Transactions outside the period
// are counted in OutOfPeriod and contribute nothing. Every in-period transaction
// lands in exactly one row.
func Aggregate(txns []domain.TransactionRecord, period domain.ReportPeriod, baseline domain.Baseline) (*domain.Aggregation, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	agg := &domain.Aggregation{
		Period:       period,
		Rows:         make([]domain.CategoryTotal, 0, len(baseline.Cumulative)),
		Transactions: make([]domain.TransactionRecord, 0, len(txns)),
		Baseline:     baseline,
	}
	index := make(map[groupKey]int, len(baseline.Cumulative))

	for _, b := range baseline.Cumulative {
		k := groupKey{kind: b.Kind, label: b.Label}
		if !b.Kind.Valid() {
			k = groupKey{kind: domain.KindOther, label: domain.OtherLabel}
		}
		if k.label == "" {
			k.label = domain.OtherLabel
		}
		if i, ok := index[k]; ok {
			agg.Rows[i].CumulativeAmount = agg.Rows[i].CumulativeAmount.Add(b.CumulativeAmount)
			continue
		}
		index[k] = len(agg.Rows)
		agg.Rows = append(agg.Rows, domain.CategoryTotal{
			Kind:             k.kind,
			Label:            k.label,
			MonthAmount:      decimal.Zero,
			CumulativeAmount: b.CumulativeAmount,
		})
	}

	for _, t := range txns {
		if !period.Contains(t.Date) {
			agg.OutOfPeriod++
			continue
		}
		agg.Transactions = append(agg.Transactions, t)

		kind, label := t.GroupKey()
		k := groupKey{kind: kind, label: label}
		i, ok := index[k]
		if !ok {
			i = len(agg.Rows)
			index[k] = i
			agg.Rows = append(agg.Rows, domain.CategoryTotal{
				Kind:             kind,
				Label:            label,
				MonthAmount:      decimal.Zero,
				CumulativeAmount: decimal.Zero,
			})
		}
		amount := t.SignedAmount()
		agg.Rows[i].MonthAmount = agg.Rows[i].MonthAmount.Add(amount)
		agg.Rows[i].CumulativeAmount = agg.Rows[i].CumulativeAmount.Add(amount)
		agg.Rows[i].TransactionCount++
	}

	return agg, nil
}

// SumMonth totals the month amounts of rows.
func SumMonth(rows []domain.CategoryTotal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.MonthAmount)
	}
	return total
}

// SumCumulative totals the cumulative amounts of rows.
func SumCumulative(rows []domain.CategoryTotal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.CumulativeAmount)
	}
	return total
}

func side(title string, rows []domain.CategoryTotal) domain.ReportSide {
	return domain.ReportSide{
		Title:           title,
		Rows:            rows,
		MonthTotal:      SumMonth(rows),
		CumulativeTotal: SumCumulative(rows),
	}
}

func unclassified(agg *domain.Aggregation, warnings []domain.Warning) ([]domain.CategoryTotal, []domain.Warning) {
	rows := agg.RowsOf(domain.KindOther)
	if len(rows) == 0 {
		return rows, warnings
	}
	amount := SumMonth(rows)
	return rows, append(warnings, domain.NewWarning(
		domain.WarningUnclassifiedEntries,
		"some transactions have no recognised category and are listed as Other",
		&amount,
	))
}
