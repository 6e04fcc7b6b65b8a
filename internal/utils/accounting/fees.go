package accounting

import (
	"fmt"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

const organizationKey = "all"

// GroupFeeDues aggregates fee records by the dimension the report type selects.
// Group order is the order each key first appears in records; records are
// re-derived so due and status always follow total and paid.
func GroupFeeDues(records []domain.FeeRecord, reportType domain.FeeReportType) ([]domain.FeeDueGroup, []domain.Warning, error) {
	if !reportType.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown fee report type %q", apperrors.ErrValidation, reportType)
	}

	groups := make([]domain.FeeDueGroup, 0)
	index := make(map[string]int)
	warnings := []domain.Warning{}

	for _, r := range records {
		r.Derive()

		key, label := feeGroupKey(r, reportType)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.FeeDueGroup{
				Key:         key,
				Label:       label,
				TotalAmount: decimal.Zero,
				PaidAmount:  decimal.Zero,
				DueAmount:   decimal.Zero,
			})
		}

		g := &groups[i]
		g.RecordCount++
		g.TotalAmount = g.TotalAmount.Add(r.TotalAmount)
		g.PaidAmount = g.PaidAmount.Add(r.PaidAmount)
		g.DueAmount = g.DueAmount.Add(r.DueAmount)
		switch r.Status {
		case domain.FeePending:
			g.PendingCount++
		case domain.FeePartial:
			g.PartialCount++
		case domain.FeePaid:
			g.PaidCount++
		}

		if r.DueAmount.IsNegative() {
			over := r.DueAmount.Neg()
			warnings = append(warnings, domain.NewWarning(
				domain.WarningOverpaidFee,
				fmt.Sprintf("student %s paid %s more than charged for %s %02d/%d",
					r.StudentID, over.StringFixed(2), r.FeeType, r.Month, r.Year),
				&over,
			))
		}
	}

	return groups, warnings, nil
}

func feeGroupKey(r domain.FeeRecord, reportType domain.FeeReportType) (string, string) {
	switch reportType {
	case domain.FeeReportClass:
		return r.ClassID, firstNonEmpty(r.ClassName, r.ClassID)
	case domain.FeeReportStudent:
		return r.StudentID, firstNonEmpty(r.StudentName, r.StudentID)
	default:
		return organizationKey, "All Students"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
