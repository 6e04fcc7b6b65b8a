package services

import (
	"context"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
)

// AttendanceReaderSvc defines the attendance views
type AttendanceReaderSvc interface {
	// DailyRegister resolves the status of every person on the roster for one date
	DailyRegister(ctx context.Context, personType domain.PersonType, date time.Time, filter domain.RosterFilter) (*domain.DailyRegister, error)

	// MonthlyCalendar resolves one person's statuses for every day of the month
	MonthlyCalendar(ctx context.Context, personType domain.PersonType, personID string, month time.Time) (*domain.MonthlyCalendar, error)
}

// AttendanceWriterSvc defines manual attendance entry
type AttendanceWriterSvc interface {
	// RecordPunch creates or replaces a person's punch for the date
	RecordPunch(ctx context.Context, punch domain.AttendancePunch, userID string) (*domain.AttendanceRow, error)

	// MarkAll applies one status to every listed person, all or nothing
	MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string) (int, error)
}

// AttendanceService combines all attendance operations
type AttendanceService interface {
	AttendanceReaderSvc
	AttendanceWriterSvc
}
