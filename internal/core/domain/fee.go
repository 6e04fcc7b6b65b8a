package domain

import "github.com/shopspring/decimal"

// FeeStatus is derived from the due amount of a fee record.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
)

// FeeRecord is a student's charge for one fee type in one month.
type FeeRecord struct {
	FeeID       string          `json:"feeID"`
	StudentID   string          `json:"studentID"`
	StudentName string          `json:"studentName"`
	ClassID     string          `json:"classID"`
	ClassName   string          `json:"className"`
	FeeType     string          `json:"feeType"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Status      FeeStatus       `json:"status"`
}

// DeriveFeeStatus applies the three-way rule: nothing due is paid, everything due
// is pending, anything in between is partial. An overpaid record (due < 0) is paid.
func DeriveFeeStatus(total, due decimal.Decimal) FeeStatus {
	switch {
	case due.Sign() <= 0:
		return FeePaid
	case due.Equal(total):
		return FeePending
	default:
		return FeePartial
	}
}

// Derive recomputes DueAmount and Status from TotalAmount and PaidAmount.
func (f *FeeRecord) Derive() {
	f.DueAmount = f.TotalAmount.Sub(f.PaidAmount)
	f.Status = DeriveFeeStatus(f.TotalAmount, f.DueAmount)
}

// NewFeeRecord returns a record with its derived fields filled in.
func NewFeeRecord(total, paid decimal.Decimal) FeeRecord {
	f := FeeRecord{TotalAmount: total, PaidAmount: paid}
	f.Derive()
	return f
}

// FeeReportType selects the group-by dimension of the fee-due report.
type FeeReportType string

const (
	FeeReportOrganization FeeReportType = "organization"
	FeeReportClass        FeeReportType = "class"
	FeeReportStudent      FeeReportType = "student"
)

// Valid returns true when the report type is supported.
func (t FeeReportType) Valid() bool {
	switch t {
	case FeeReportOrganization, FeeReportClass, FeeReportStudent:
		return true
	default:
		return false
	}
}

// FeeDueGroup is one row of the fee-due report.
type FeeDueGroup struct {
	Key          string          `json:"key"`
	Label        string          `json:"label"`
	RecordCount  int             `json:"recordCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	DueAmount    decimal.Decimal `json:"dueAmount"`
	PendingCount int             `json:"pendingCount"`
	PartialCount int             `json:"partialCount"`
	PaidCount    int             `json:"paidCount"`
}

// FeeDueQuery scopes the fee-due report.
type FeeDueQuery struct {
	ReportType FeeReportType
	Month      int
	Year       int
	ClassID    *string
	StudentID  *string
}

// FeeDueReport aggregates fee records for a month.
type FeeDueReport struct {
	ReportType  FeeReportType   `json:"reportType"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Groups      []FeeDueGroup   `json:"groups"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Warnings    []Warning       `json:"warnings"`
}
