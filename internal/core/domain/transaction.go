package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the accounting category of a posted record.
type TransactionKind string

const (
	KindFund        TransactionKind = "fund"
	KindLiability   TransactionKind = "liability"
	KindAsset       TransactionKind = "asset"
	KindIncome      TransactionKind = "income"
	KindExpenditure TransactionKind = "expenditure"
	KindReceipt     TransactionKind = "receipt"
	KindPayment     TransactionKind = "payment"
	KindOther       TransactionKind = "other"
)

// Valid returns true when the kind is one of the posted categories.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindFund, KindLiability, KindAsset, KindIncome, KindExpenditure, KindReceipt, KindPayment:
		return true
	default:
		return false
	}
}

// CreditNormal reports whether a credit increases this kind.
func (k TransactionKind) CreditNormal() bool {
	switch k {
	case KindFund, KindLiability, KindIncome, KindReceipt:
		return true
	default:
		return false
	}
}

// Direction indicates whether a record is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// OtherLabel is the bucket for records without a usable category label.
const OtherLabel = "Other"

// TransactionRecord is an immutable posted financial record read by the aggregator.
type TransactionRecord struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"` // Positive value
	AccountID     string          `json:"accountID"`
	Kind          TransactionKind `json:"kind"`
	Head          string          `json:"head"` // Category label, e.g. "Student Fee"
	Description   string          `json:"description"`
	Direction     Direction       `json:"direction"`
}

// SignedAmount returns the amount with the sign implied by kind and direction:
// positive in the kind's normal direction, negative for reversals.
// Unknown kinds are treated as debit-normal.
func (t TransactionRecord) SignedAmount() decimal.Decimal {
	normal := Debit
	if t.Kind.CreditNormal() {
		normal = Credit
	}
	if t.Direction == normal {
		return t.Amount
	}
	return t.Amount.Neg()
}

// CashMovement is the record's effect on cash or bank holdings: a receipt adds
// its signed amount, a payment subtracts it. Other kinds do not move cash.
// Every cash report reads records through this so their balances agree.
func (t TransactionRecord) CashMovement() decimal.Decimal {
	switch t.Kind {
	case KindReceipt:
		return t.SignedAmount()
	case KindPayment:
		return t.SignedAmount().Neg()
	default:
		return decimal.Zero
	}
}

// IsCashMovement reports whether the record is a receipt or a payment.
func (t TransactionRecord) IsCashMovement() bool {
	return t.Kind == KindReceipt || t.Kind == KindPayment
}

// GroupKey returns the (kind, label) pair used to bucket the record.
func (t TransactionRecord) GroupKey() (TransactionKind, string) {
	if !t.Kind.Valid() {
		return KindOther, OtherLabel
	}
	if t.Head == "" {
		return t.Kind, OtherLabel
	}
	return t.Kind, t.Head
}
