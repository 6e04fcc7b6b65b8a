package domain

import (
	"fmt"
	"strings"
	"time"
)

// PersonType distinguishes the two attendance rosters.
type PersonType string

const (
	PersonStudent PersonType = "student"
	PersonTeacher PersonType = "teacher"
)

// Valid returns true when the person type is supported.
func (p PersonType) Valid() bool {
	return p == PersonStudent || p == PersonTeacher
}

// AttendanceStatus is derived per person per day, never stored on its own.
type AttendanceStatus string

const (
	StatusPresent  AttendanceStatus = "present"
	StatusLate     AttendanceStatus = "late"
	StatusAbsent   AttendanceStatus = "absent"
	StatusExcused  AttendanceStatus = "excused"
	StatusHoliday  AttendanceStatus = "holiday"
	StatusWeekend  AttendanceStatus = "weekend"
	StatusHalfDay  AttendanceStatus = "half_day"
	StatusNoRecord AttendanceStatus = "no_record"
)

// IsManual reports whether the status may be entered by hand.
// Calendar-derived statuses and no_record cannot.
func (s AttendanceStatus) IsManual() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusExcused, StatusHalfDay:
		return true
	default:
		return false
	}
}

// Attended reports whether the status counts as the person being at school.
func (s AttendanceStatus) Attended() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// PunchSource records where a punch came from.
type PunchSource string

const (
	SourceDevice PunchSource = "device"
	SourceManual PunchSource = "manual"
)

// ClockTime is a wall-clock time of day in minutes since midnight.
type ClockTime int

// ParseClock parses "HH:MM" or "HH:MM:SS" (seconds are dropped).
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
}

// MustParseClock is ParseClock for constants; it panics on bad input.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Duration converts the clock value to a duration since midnight.
func (c ClockTime) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

// MarshalText renders the clock as HH:MM.
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses HH:MM.
func (c *ClockTime) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// AttendancePunch is the raw per-person per-day record; at most one exists per
// (person type, person, date).
type AttendancePunch struct {
	PersonID     string            `json:"personID"`
	PersonType   PersonType        `json:"personType"`
	Date         time.Time         `json:"date"`
	InTime       *ClockTime        `json:"inTime,omitempty"`
	OutTime      *ClockTime        `json:"outTime,omitempty"`
	Source       PunchSource       `json:"source"`
	ManualStatus *AttendanceStatus `json:"manualStatus,omitempty"`
	Remarks      string            `json:"remarks,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	UpdatedBy    string            `json:"updatedBy,omitempty"`
}

// AttendanceRule is the configured time window for a roster.
type AttendanceRule struct {
	InTime       ClockTime             `json:"inTime"`
	LateTime     ClockTime             `json:"lateTime"`
	OutTime      ClockTime             `json:"outTime"`
	WeekendDays  map[time.Weekday]bool `json:"-"`
	HolidayDates map[string]string     `json:"-"` // date (YYYY-MM-DD) -> title
}

// IsWeekend reports whether date falls on a configured weekend day.
func (r AttendanceRule) IsWeekend(date time.Time) bool {
	return r.WeekendDays[date.Weekday()]
}

// IsHoliday reports whether date is a configured holiday.
func (r AttendanceRule) IsHoliday(date time.Time) bool {
	_, ok := r.HolidayDates[date.Format(DateLayout)]
	return ok
}

// WithHolidays returns a copy of the rule with the given holidays merged in.
func (r AttendanceRule) WithHolidays(holidays []Holiday) AttendanceRule {
	merged := make(map[string]string, len(r.HolidayDates)+len(holidays))
	for k, v := range r.HolidayDates {
		merged[k] = v
	}
	for _, h := range holidays {
		merged[h.Date.Format(DateLayout)] = h.Title
	}
	r.HolidayDates = merged
	return r
}

// ParseWeekdays parses weekday names ("Friday", "sat") into a set.
func ParseWeekdays(names []string) (map[time.Weekday]bool, error) {
	set := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if n == full || n == full[:3] {
				set[d] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", n)
		}
	}
	return set, nil
}

// Holiday is a calendar date on which no attendance is expected.
type Holiday struct {
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
}

// Person is a roster entry for either a student or a teacher.
type Person struct {
	PersonID   string     `json:"personID"`
	PersonType PersonType `json:"personType"`
	Name       string     `json:"name"`
	ClassID    string     `json:"classID,omitempty"`
	SectionID  string     `json:"sectionID,omitempty"`
	RollNumber string     `json:"rollNumber,omitempty"`
}

// RosterFilter narrows a roster to a class/section.
type RosterFilter struct {
	ClassID   *string
	SectionID *string
}

// AttendanceRow is one person's resolved day.
type AttendanceRow struct {
	Person       Person           `json:"person"`
	Date         time.Time        `json:"date"`
	Status       AttendanceStatus `json:"status"`
	InTime       *ClockTime       `json:"inTime,omitempty"`
	OutTime      *ClockTime       `json:"outTime,omitempty"`
	WorkingHours *time.Duration   `json:"workingHours,omitempty"`
	LateBy       *time.Duration   `json:"lateBy,omitempty"`
	Remarks      string           `json:"remarks,omitempty"`
}

// AttendanceSummary counts statuses. Absent counts confirmed absences only;
// days with no record are counted in NoRecord and never folded into Absent.
type AttendanceSummary struct {
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	HalfDay        int     `json:"halfDay"`
	Absent         int     `json:"absent"`
	Excused        int     `json:"excused"`
	NoRecord       int     `json:"noRecord"`
	Holiday        int     `json:"holiday"`
	Weekend        int     `json:"weekend"`
	WorkingDays    int     `json:"workingDays"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// DailyRegister is the attendance grid for one roster on one date.
type DailyRegister struct {
	PersonType PersonType        `json:"personType"`
	Date       time.Time         `json:"date"`
	Rows       []AttendanceRow   `json:"rows"`
	Summary    AttendanceSummary `json:"summary"`
}

// MonthlyCalendar is one person's month, day by day.
type MonthlyCalendar struct {
	Person  Person            `json:"person"`
	Month   time.Time         `json:"month"`
	Days    []AttendanceRow   `json:"days"`
	Summary AttendanceSummary `json:"summary"`
}
