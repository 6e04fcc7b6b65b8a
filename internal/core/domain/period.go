package domain

import (
	"fmt"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
)

// DateLayout is the wire format used for calendar dates.
const DateLayout = "2006-01-02"

// ReportPeriod is the aggregation window of a report. Both ends are inclusive calendar dates.
type ReportPeriod struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AccountID *string   `json:"accountID,omitempty"`
}

// NewReportPeriod normalizes both dates to midnight UTC.
func NewReportPeriod(start, end time.Time, accountID *string) ReportPeriod {
	return ReportPeriod{Start: TruncateDate(start), End: TruncateDate(end), AccountID: accountID}
}

// MonthPeriod returns the period covering the whole calendar month of t.
func MonthPeriod(t time.Time) ReportPeriod {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return ReportPeriod{Start: start, End: start.AddDate(0, 1, -1)}
}

// Validate fails with ErrInvalidPeriod when Start is after End.
func (p ReportPeriod) Validate() error {
	if p.Start.After(p.End) {
		return fmt.Errorf("%w: %s > %s", apperrors.ErrInvalidPeriod, p.Start.Format(DateLayout), p.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether date falls within the period, ignoring the clock part.
func (p ReportPeriod) Contains(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// DayBefore is the last date of the preceding period.
func (p ReportPeriod) DayBefore() time.Time {
	return p.Start.AddDate(0, 0, -1)
}

// Label renders the period for report headers.
func (p ReportPeriod) Label() string {
	return p.Start.Format(DateLayout) + " to " + p.End.Format(DateLayout)
}

// HasAccount reports whether the period is filtered to a single account.
func (p ReportPeriod) HasAccount() bool {
	return p.AccountID != nil && *p.AccountID != ""
}

// FiscalYearStart returns the first day of the fiscal year containing date.
// startMonth is 1-12; anything else falls back to January.
func FiscalYearStart(date time.Time, startMonth int) time.Time {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 1
	}
	year := date.Year()
	if int(date.Month()) < startMonth {
		year--
	}
	return time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the clock part, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
