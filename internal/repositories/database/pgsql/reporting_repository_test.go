package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceBeforeQueries_ShareCashMovement(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{name: "all cash", query: cashBalanceBeforeSQL},
		{name: "single account", query: accountBalanceBeforeSQL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.query, cashMovementSQL)
			assert.NotContains(t, tc.query, "t.direction = 'debit' THEN")
		})
	}
}

func TestCashMovementSQL_CoversReceiptsAndPayments(t *testing.T) {
	assert.Contains(t, cashMovementSQL, "WHEN 'receipt' THEN "+signedAmountSQL)
	assert.Contains(t, cashMovementSQL, "WHEN 'payment' THEN -("+signedAmountSQL+")")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(cashMovementSQL), "ELSE 0 END"))
}
