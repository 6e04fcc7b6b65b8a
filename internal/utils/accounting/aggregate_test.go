package accounting

import (
	"testing"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse(domain.DateLayout, s)
	return d
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func txn(id, date string, kind domain.TransactionKind, head string, amount string, dir domain.Direction) domain.TransactionRecord {
	return domain.TransactionRecord{TransactionID: id, Date: day(date), Amount: dec(amount), Kind: kind, Head: head, Direction: dir}
}

var january = domain.NewReportPeriod(day("2024-01-01"), day("2024-01-31"), nil)

func TestAggregate_GroupsInFirstAppearanceOrder(t *testing.T) {
	txns := []domain.TransactionRecord{
		txn("1", "2024-01-03", domain.KindIncome, "Student Fee", "1000", domain.Credit),
		txn("2", "2024-01-04", domain.KindExpenditure, "Salary", "400", domain.Debit),
		txn("3", "2024-01-05", domain.KindIncome, "Student Fee", "500.50", domain.Credit),
		txn("4", "2024-01-06", domain.KindIncome, "Donation", "200", domain.Credit),
	}

	agg, err := Aggregate(txns, january, domain.Baseline{})

	require.NoError(t, err)
	require.Len(t, agg.Rows, 3)
	assert.Equal(t, "Student Fee", agg.Rows[0].Label)
	assert.Equal(t, "Salary", agg.Rows[1].Label)
	assert.Equal(t, "Donation", agg.Rows[2].Label)
	assert.True(t, dec("1500.50").Equal(agg.Rows[0].MonthAmount))
	assert.Equal(t, 2, agg.Rows[0].TransactionCount)
	assert.Len(t, agg.Transactions, 4)
}

func TestAggregate_CumulativeAddsBaseline(t *testing.T) {
	baseline := domain.Baseline{Cumulative: []domain.CategoryTotal{
		{Kind: domain.KindIncome, Label: "Student Fee", CumulativeAmount: dec("5000")},
		{Kind: domain.KindIncome, Label: "Grant", CumulativeAmount: dec("300")},
	}}
	txns := []domain.TransactionRecord{
		txn("1", "2024-01-03", domain.KindIncome, "Student Fee", "1000", domain.Credit),
	}

	agg, err := Aggregate(txns, january, baseline)

	require.NoError(t, err)
	require.Len(t, agg.Rows, 2)
	assert.True(t, dec("1000").Equal(agg.Rows[0].MonthAmount))
	assert.True(t, dec("6000").Equal(agg.Rows[0].CumulativeAmount))
	// Baseline rows without movement stay visible with a zero month amount.
	assert.True(t, agg.Rows[1].MonthAmount.IsZero())
	assert.True(t, dec("300").Equal(agg.Rows[1].CumulativeAmount))
}

func TestAggregate_OutOfPeriodIsIgnored(t *testing.T) {
	txns := []domain.TransactionRecord{
		txn("1", "2023-12-31", domain.KindIncome, "Student Fee", "999", domain.Credit),
		txn("2", "2024-01-31", domain.KindIncome, "Student Fee", "100", domain.Credit),
		txn("3", "2024-02-01", domain.KindIncome, "Student Fee", "999", domain.Credit),
	}

	agg, err := Aggregate(txns, january, domain.Baseline{})

	require.NoError(t, err)
	assert.Equal(t, 2, agg.OutOfPeriod)
	require.Len(t, agg.Rows, 1)
	assert.True(t, dec("100").Equal(agg.Rows[0].MonthAmount))
}

func TestAggregate_UnlabelledGoesToOther(t *testing.T) {
	txns := []domain.TransactionRecord{
		txn("1", "2024-01-03", "misc", "Whatever", "10", domain.Debit),
		txn("2", "2024-01-03", domain.KindIncome, "", "20", domain.Credit),
	}

	agg, err := Aggregate(txns, january, domain.Baseline{})

	require.NoError(t, err)
	require.Len(t, agg.Rows, 2)
	assert.Equal(t, domain.KindOther, agg.Rows[0].Kind)
	assert.Equal(t, domain.OtherLabel, agg.Rows[0].Label)
	assert.Equal(t, domain.KindIncome, agg.Rows[1].Kind)
	assert.Equal(t, domain.OtherLabel, agg.Rows[1].Label)
}

func TestAggregate_ReversalsNet(t *testing.T) {
	txns := []domain.TransactionRecord{
		txn("1", "2024-01-03", domain.KindIncome, "Student Fee", "1000", domain.Credit),
		txn("2", "2024-01-04", domain.KindIncome, "Student Fee", "250", domain.Debit),
	}

	agg, err := Aggregate(txns, january, domain.Baseline{})

	require.NoError(t, err)
	assert.True(t, dec("750").Equal(agg.Rows[0].MonthAmount))
}

func TestAggregate_EveryTransactionCountedOnce(t *testing.T) {
	txns := []domain.TransactionRecord{
		txn("1", "2024-01-01", domain.KindReceipt, "Fee", "10", domain.Credit),
		txn("2", "2024-01-02", domain.KindPayment, "Rent", "20", domain.Debit),
		txn("3", "2024-01-03", "misc", "", "30", domain.Debit),
		txn("4", "2024-01-04", domain.KindAsset, "Bench", "40", domain.Debit),
	}

	agg, err := Aggregate(txns, january, domain.Baseline{})

	require.NoError(t, err)
	count := 0
	for _, r := range agg.Rows {
		count += r.TransactionCount
	}
	assert.Equal(t, len(txns), count)
}

func TestAggregate_InvalidPeriod(t *testing.T) {
	_, err := Aggregate(nil, domain.NewReportPeriod(day("2024-02-01"), day("2024-01-01"), nil), domain.Baseline{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestAggregate_Empty(t *testing.T) {
	agg, err := Aggregate(nil, january, domain.Baseline{})
	require.NoError(t, err)
	assert.Empty(t, agg.Rows)
	assert.Zero(t, agg.OutOfPeriod)
}
