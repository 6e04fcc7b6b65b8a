package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Person is a row of the students or teachers table.
type Person struct {
	PersonID   string  `db:"person_id"`
	Name       string  `db:"name"`
	ClassID    *string `db:"class_id"`
	SectionID  *string `db:"section_id"`
	RollNumber *string `db:"roll_number"`
}

// AttendancePunch is a row of the attendance_punches table.
type AttendancePunch struct {
	PersonType     string      `db:"person_type"`
	PersonID       string      `db:"person_id"`
	AttendanceDate time.Time   `db:"attendance_date"`
	InTime         pgtype.Time `db:"in_time"`
	OutTime        pgtype.Time `db:"out_time"`
	Source         string      `db:"source"`
	ManualStatus   *string     `db:"manual_status"`
	Remarks        *string     `db:"remarks"`
	UpdatedAt      time.Time   `db:"updated_at"`
	UpdatedBy      *string     `db:"updated_by"`
}

// AttendanceSetting is a row of the attendance_settings table.
type AttendanceSetting struct {
	PersonType  string      `db:"person_type"`
	InTime      pgtype.Time `db:"in_time"`
	LateTime    pgtype.Time `db:"late_time"`
	OutTime     pgtype.Time `db:"out_time"`
	WeekendDays []string    `db:"weekend_days"`
}

// Holiday is a row of the holidays table.
type Holiday struct {
	HolidayDate time.Time `db:"holiday_date"`
	Title       string    `db:"title"`
}
