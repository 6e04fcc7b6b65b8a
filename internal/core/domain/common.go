package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// WarningCode classifies a non-fatal data inconsistency attached to a view-model.
type WarningCode string

const (
	WarningBalanceMismatch     WarningCode = "BALANCE_MISMATCH"
	WarningOpeningMismatch     WarningCode = "OPENING_MISMATCH"
	WarningUnclassifiedEntries WarningCode = "UNCLASSIFIED_ENTRIES"
	WarningOverpaidFee         WarningCode = "OVERPAID_FEE"
	WarningNegativePFBalance   WarningCode = "NEGATIVE_PF_BALANCE"
)

// Warning surfaces a DataInconsistency to the caller. It is never returned as an error;
// the figures it describes are left exactly as computed.
type Warning struct {
	Code    WarningCode      `json:"code"`
	Message string           `json:"message"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

// NewWarning builds a warning, optionally carrying the offending amount.
func NewWarning(code WarningCode, message string, amount *decimal.Decimal) Warning {
	return Warning{Code: code, Message: message, Amount: amount}
}

// RoundMoney rounds to the two fraction digits every money value carries.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
