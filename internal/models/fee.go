package models

import "github.com/shopspring/decimal"

// Fee is a row of the fees table joined with its student and class.
type Fee struct {
	FeeID       string          `db:"fee_id"`
	StudentID   string          `db:"student_id"`
	StudentName string          `db:"student_name"`
	ClassID     string          `db:"class_id"`
	ClassName   string          `db:"class_name"`
	FeeType     string          `db:"fee_type"`
	Month       int             `db:"month"`
	Year        int             `db:"year"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
}
