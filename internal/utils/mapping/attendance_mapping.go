package mapping

import (
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

const microsPerMinute = int64(time.Minute / time.Microsecond)

// ToPgTime converts an optional clock time into a nullable TIME value.
func ToPgTime(c *domain.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * microsPerMinute, Valid: true}
}

// FromPgTime converts a nullable TIME value; seconds are dropped.
func FromPgTime(t pgtype.Time) *domain.ClockTime {
	if !t.Valid {
		return nil
	}
	c := domain.ClockTime(t.Microseconds / microsPerMinute)
	return &c
}

// ToDomainPerson converts a roster row.
func ToDomainPerson(m models.Person, personType domain.PersonType) domain.Person {
	return domain.Person{
		PersonID:   m.PersonID,
		PersonType: personType,
		Name:       m.Name,
		ClassID:    deref(m.ClassID),
		SectionID:  deref(m.SectionID),
		RollNumber: deref(m.RollNumber),
	}
}

// ToModelPunch converts a domain punch to a model punch
func ToModelPunch(d domain.AttendancePunch) models.AttendancePunch {
	m := models.AttendancePunch{
		PersonType:     string(d.PersonType),
		PersonID:       d.PersonID,
		AttendanceDate: domain.TruncateDate(d.Date),
		InTime:         ToPgTime(d.InTime),
		OutTime:        ToPgTime(d.OutTime),
		Source:         string(d.Source),
		Remarks:        nullable(d.Remarks),
		UpdatedAt:      d.UpdatedAt,
		UpdatedBy:      nullable(d.UpdatedBy),
	}
	if d.ManualStatus != nil {
		s := string(*d.ManualStatus)
		m.ManualStatus = &s
	}
	return m
}

// ToDomainPunch converts a model punch to a domain punch
func ToDomainPunch(m models.AttendancePunch) domain.AttendancePunch {
	d := domain.AttendancePunch{
		PersonID:   m.PersonID,
		PersonType: domain.PersonType(m.PersonType),
		Date:       domain.TruncateDate(m.AttendanceDate),
		InTime:     FromPgTime(m.InTime),
		OutTime:    FromPgTime(m.OutTime),
		Source:     domain.PunchSource(m.Source),
		Remarks:    deref(m.Remarks),
		UpdatedAt:  m.UpdatedAt,
		UpdatedBy:  deref(m.UpdatedBy),
	}
	if m.ManualStatus != nil {
		s := domain.AttendanceStatus(*m.ManualStatus)
		d.ManualStatus = &s
	}
	return d
}

// ToDomainRule converts a settings row. Unknown weekday names are skipped.
func ToDomainRule(m models.AttendanceSetting) domain.AttendanceRule {
	weekend := make(map[time.Weekday]bool, len(m.WeekendDays))
	for _, name := range m.WeekendDays {
		if days, err := domain.ParseWeekdays([]string{name}); err == nil {
			for d := range days {
				weekend[d] = true
			}
		}
	}
	rule := domain.AttendanceRule{
		WeekendDays:  weekend,
		HolidayDates: map[string]string{},
	}
	if c := FromPgTime(m.InTime); c != nil {
		rule.InTime = *c
	}
	if c := FromPgTime(m.LateTime); c != nil {
		rule.LateTime = *c
	}
	if c := FromPgTime(m.OutTime); c != nil {
		rule.OutTime = *c
	}
	return rule
}

// ToDomainHoliday converts a holiday row.
func ToDomainHoliday(m models.Holiday) domain.Holiday {
	return domain.Holiday{Date: domain.TruncateDate(m.HolidayDate), Title: m.Title}
}
