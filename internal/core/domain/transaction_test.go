package domain_test

import (
	"testing"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_SignedAmount(t *testing.T) {
	tests := []struct {
		name      string
		kind      domain.TransactionKind
		direction domain.Direction
		want      int64
	}{
		{"income credit", domain.KindIncome, domain.Credit, 100},
		{"income debit is a reversal", domain.KindIncome, domain.Debit, -100},
		{"receipt credit", domain.KindReceipt, domain.Credit, 100},
		{"payment debit", domain.KindPayment, domain.Debit, 100},
		{"payment credit is a reversal", domain.KindPayment, domain.Credit, -100},
		{"asset debit", domain.KindAsset, domain.Debit, 100},
		{"liability credit", domain.KindLiability, domain.Credit, 100},
		{"fund debit is a reversal", domain.KindFund, domain.Debit, -100},
		{"unknown kind is debit-normal", domain.TransactionKind("misc"), domain.Debit, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.TransactionRecord{Amount: decimal.NewFromInt(100), Kind: tt.kind, Direction: tt.direction}
			assert.True(t, decimal.NewFromInt(tt.want).Equal(txn.SignedAmount()), "got %s", txn.SignedAmount())
		})
	}
}

func TestTransactionRecord_CashMovement(t *testing.T) {
	tests := []struct {
		name      string
		kind      domain.TransactionKind
		direction domain.Direction
		want      int64
		isCash    bool
	}{
		{"receipt credit is money in", domain.KindReceipt, domain.Credit, 100, true},
		{"receipt debit is a reversal", domain.KindReceipt, domain.Debit, -100, true},
		{"payment debit is money out", domain.KindPayment, domain.Debit, -100, true},
		{"payment credit is a refund", domain.KindPayment, domain.Credit, 100, true},
		{"income does not move cash", domain.KindIncome, domain.Credit, 0, false},
		{"asset does not move cash", domain.KindAsset, domain.Debit, 0, false},
		{"unknown kind does not move cash", domain.TransactionKind("misc"), domain.Debit, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.TransactionRecord{Amount: decimal.NewFromInt(100), Kind: tt.kind, Direction: tt.direction}
			assert.True(t, decimal.NewFromInt(tt.want).Equal(txn.CashMovement()), "got %s", txn.CashMovement())
			assert.Equal(t, tt.isCash, txn.IsCashMovement())
		})
	}
}

func TestTransactionRecord_GroupKey(t *testing.T) {
	tests := []struct {
		name      string
		txn       domain.TransactionRecord
		wantKind  domain.TransactionKind
		wantLabel string
	}{
		{"labelled", domain.TransactionRecord{Kind: domain.KindIncome, Head: "Student Fee"}, domain.KindIncome, "Student Fee"},
		{"empty head", domain.TransactionRecord{Kind: domain.KindIncome}, domain.KindIncome, domain.OtherLabel},
		{"unknown kind", domain.TransactionRecord{Kind: "misc", Head: "Donation"}, domain.KindOther, domain.OtherLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, label := tt.txn.GroupKey()
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}
