// Package attendance derives per-day attendance statuses from raw punches and
// the configured time windows. Everything here is a pure function of its inputs.
package attendance

import (
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
)

// Resolve returns the status of one person on one date. First match wins:
//
//  1. manual excused
//  2. holiday
//  3. weekend
//  4. any other manual status
//  5. no punch: no_record
//  6. punch without in-time: absent
//  7. in-time after late-time: late
//  8. teacher with out-time before the scheduled out-time: half_day
//  9. present
//
// Students are tracked by a single check-in, so rule 8 never applies to them.
func Resolve(punch *domain.AttendancePunch, date time.Time, rule domain.AttendanceRule, personType domain.PersonType) domain.AttendanceStatus {
	manual := manualStatus(punch)
	if manual != nil && *manual == domain.StatusExcused {
		return domain.StatusExcused
	}
	if rule.IsHoliday(date) {
		return domain.StatusHoliday
	}
	if rule.IsWeekend(date) {
		return domain.StatusWeekend
	}
	if manual != nil {
		return *manual
	}
	if punch == nil {
		return domain.StatusNoRecord
	}
	if punch.InTime == nil {
		return domain.StatusAbsent
	}
	if *punch.InTime > rule.LateTime {
		return domain.StatusLate
	}
	if personType == domain.PersonTeacher && punch.OutTime != nil && *punch.OutTime < rule.OutTime {
		return domain.StatusHalfDay
	}
	return domain.StatusPresent
}

func manualStatus(punch *domain.AttendancePunch) *domain.AttendanceStatus {
	if punch == nil || punch.Source != domain.SourceManual || punch.ManualStatus == nil {
		return nil
	}
	if !punch.ManualStatus.IsManual() {
		return nil
	}
	return punch.ManualStatus
}

// WorkingHours is out-time minus in-time. It is undefined (false) when either
// time is missing or when out-time is earlier than in-time on the same date,
// which is treated as a data anomaly rather than a negative duration.
func WorkingHours(punch *domain.AttendancePunch) (time.Duration, bool) {
	if punch == nil || punch.InTime == nil || punch.OutTime == nil {
		return 0, false
	}
	if *punch.OutTime < *punch.InTime {
		return 0, false
	}
	return (*punch.OutTime - *punch.InTime).Duration(), true
}

// LateBy is how far past the late-time the person arrived, if at all.
func LateBy(punch *domain.AttendancePunch, rule domain.AttendanceRule) (time.Duration, bool) {
	if punch == nil || punch.InTime == nil || *punch.InTime <= rule.LateTime {
		return 0, false
	}
	return (*punch.InTime - rule.LateTime).Duration(), true
}

// ResolveRow resolves a punch into a full register row.
func ResolveRow(person domain.Person, punch *domain.AttendancePunch, date time.Time, rule domain.AttendanceRule) domain.AttendanceRow {
	row := domain.AttendanceRow{
		Person: person,
		Date:   domain.TruncateDate(date),
		Status: Resolve(punch, date, rule, person.PersonType),
	}
	if punch != nil {
		row.InTime = punch.InTime
		row.OutTime = punch.OutTime
		row.Remarks = punch.Remarks
	}
	if d, ok := WorkingHours(punch); ok {
		row.WorkingHours = &d
	}
	if row.Status == domain.StatusLate {
		if d, ok := LateBy(punch, rule); ok {
			row.LateBy = &d
		}
	}
	return row
}

// Summarize counts the statuses of a set of rows. No-record days are counted
// on their own and are never reported as absences; they do lower the rate.
func Summarize(rows []domain.AttendanceRow) domain.AttendanceSummary {
	var s domain.AttendanceSummary
	for _, r := range rows {
		switch r.Status {
		case domain.StatusPresent:
			s.Present++
		case domain.StatusLate:
			s.Late++
		case domain.StatusHalfDay:
			s.HalfDay++
		case domain.StatusAbsent:
			s.Absent++
		case domain.StatusExcused:
			s.Excused++
		case domain.StatusNoRecord:
			s.NoRecord++
		case domain.StatusHoliday:
			s.Holiday++
		case domain.StatusWeekend:
			s.Weekend++
		}
	}
	s.WorkingDays = len(rows) - s.Holiday - s.Weekend
	if s.WorkingDays > 0 {
		attended := s.Present + s.Late + s.HalfDay
		s.AttendanceRate = float64(attended) / float64(s.WorkingDays)
	}
	return s
}
