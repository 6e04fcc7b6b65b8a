package repositories

import (
	"context"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
)

// RosterReader defines read operations for students and teachers
type RosterReader interface {
	// FindPerson returns ErrNotFound when the person does not exist.
	FindPerson(ctx context.Context, personType domain.PersonType, personID string) (*domain.Person, error)

	// ListRoster returns the roster in roll/name order.
	ListRoster(ctx context.Context, personType domain.PersonType, filter domain.RosterFilter) ([]domain.Person, error)
}

// PunchReader defines read operations for raw attendance punches
type PunchReader interface {
	// ListPunches returns punches dated within [from, to]. A nil personIDs slice
	// means every person of the type.
	ListPunches(ctx context.Context, personType domain.PersonType, personIDs []string, from, to time.Time) ([]domain.AttendancePunch, error)
}

// PunchWriter defines write operations for attendance punches
type PunchWriter interface {
	// UpsertPunch creates the punch or replaces the one for the same person and date.
	UpsertPunch(ctx context.Context, punch domain.AttendancePunch) error

	// MarkAll writes the same manual status for every person in one all-or-nothing
	// unit. If any person is unknown or any write fails nothing is persisted.
	MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string, at time.Time) error
}

// AttendanceSettingsReader defines read operations for attendance configuration
type AttendanceSettingsReader interface {
	// FindRule returns the configured window of the roster, or ErrNotFound.
	FindRule(ctx context.Context, personType domain.PersonType) (*domain.AttendanceRule, error)

	// ListHolidays returns the holidays dated within [from, to].
	ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
}

// AttendanceRepository combines all attendance-related repository interfaces
type AttendanceRepository interface {
	RosterReader
	PunchReader
	PunchWriter
	AttendanceSettingsReader
}
