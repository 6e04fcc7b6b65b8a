package attendance

import (
	"testing"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	schoolDay = time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)  // Sunday
	friday    = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)  // weekend
	victory   = time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC) // holiday, a Monday
)

func rule() domain.AttendanceRule {
	return domain.AttendanceRule{
		InTime:       domain.MustParseClock("08:00"),
		LateTime:     domain.MustParseClock("08:15"),
		OutTime:      domain.MustParseClock("14:00"),
		WeekendDays:  map[time.Weekday]bool{time.Friday: true},
		HolidayDates: map[string]string{"2024-12-16": "Victory Day"},
	}
}

func clock(s string) *domain.ClockTime {
	c := domain.MustParseClock(s)
	return &c
}

func status(s domain.AttendanceStatus) *domain.AttendanceStatus {
	return &s
}

func device(in, out string) *domain.AttendancePunch {
	p := &domain.AttendancePunch{Source: domain.SourceDevice}
	if in != "" {
		p.InTime = clock(in)
	}
	if out != "" {
		p.OutTime = clock(out)
	}
	return p
}

func manual(s domain.AttendanceStatus) *domain.AttendancePunch {
	return &domain.AttendancePunch{Source: domain.SourceManual, ManualStatus: status(s)}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		punch      *domain.AttendancePunch
		date       time.Time
		personType domain.PersonType
		want       domain.AttendanceStatus
	}{
		{"no punch", nil, schoolDay, domain.PersonStudent, domain.StatusNoRecord},
		{"on time", device("07:55", ""), schoolDay, domain.PersonStudent, domain.StatusPresent},
		{"exactly at late time", device("08:15", ""), schoolDay, domain.PersonStudent, domain.StatusPresent},
		{"one minute late", device("08:16", ""), schoolDay, domain.PersonStudent, domain.StatusLate},
		{"punch without in-time", device("", "13:00"), schoolDay, domain.PersonTeacher, domain.StatusAbsent},
		{"teacher leaves early", device("08:00", "12:30"), schoolDay, domain.PersonTeacher, domain.StatusHalfDay},
		{"teacher full day", device("08:00", "14:00"), schoolDay, domain.PersonTeacher, domain.StatusPresent},
		{"student leaving early is still present", device("08:00", "12:30"), schoolDay, domain.PersonStudent, domain.StatusPresent},
		{"late beats half day", device("09:00", "12:00"), schoolDay, domain.PersonTeacher, domain.StatusLate},
		{"weekend with punch", device("08:00", "14:00"), friday, domain.PersonTeacher, domain.StatusWeekend},
		{"weekend without punch", nil, friday, domain.PersonStudent, domain.StatusWeekend},
		{"holiday", device("08:00", ""), victory, domain.PersonStudent, domain.StatusHoliday},
		{"manual absent", manual(domain.StatusAbsent), schoolDay, domain.PersonStudent, domain.StatusAbsent},
		{"manual present overrides missing times", manual(domain.StatusPresent), schoolDay, domain.PersonTeacher, domain.StatusPresent},
		{"manual absent does not override holiday", manual(domain.StatusAbsent), victory, domain.PersonStudent, domain.StatusHoliday},
		{"manual excused overrides holiday", manual(domain.StatusExcused), victory, domain.PersonStudent, domain.StatusExcused},
		{"manual excused overrides weekend", manual(domain.StatusExcused), friday, domain.PersonTeacher, domain.StatusExcused},
		{"device status is ignored", &domain.AttendancePunch{Source: domain.SourceDevice, InTime: clock("07:50"), ManualStatus: status(domain.StatusAbsent)}, schoolDay, domain.PersonStudent, domain.StatusPresent},
		{"stored calendar status is ignored", &domain.AttendancePunch{Source: domain.SourceManual, ManualStatus: status(domain.StatusHoliday)}, schoolDay, domain.PersonStudent, domain.StatusAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.punch, tt.date, rule(), tt.personType))
		})
	}
}

func TestWorkingHours(t *testing.T) {
	tests := []struct {
		name   string
		punch  *domain.AttendancePunch
		want   time.Duration
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"in only", device("08:00", ""), 0, false},
		{"full day", device("08:00", "14:30"), 6*time.Hour + 30*time.Minute, true},
		{"zero length", device("08:00", "08:00"), 0, true},
		{"out before in", device("14:00", "08:00"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WorkingHours(tt.punch)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLateBy(t *testing.T) {
	d, ok := LateBy(device("08:40", ""), rule())
	require.True(t, ok)
	assert.Equal(t, 25*time.Minute, d)

	_, ok = LateBy(device("08:15", ""), rule())
	assert.False(t, ok)

	_, ok = LateBy(nil, rule())
	assert.False(t, ok)
}

func TestResolveRow(t *testing.T) {
	person := domain.Person{PersonID: "t1", PersonType: domain.PersonTeacher, Name: "Karim"}
	punch := device("08:30", "14:10")
	punch.Remarks = "traffic"

	row := ResolveRow(person, punch, schoolDay.Add(10*time.Hour), rule())

	assert.Equal(t, domain.StatusLate, row.Status)
	assert.Equal(t, schoolDay, row.Date)
	assert.Equal(t, "traffic", row.Remarks)
	require.NotNil(t, row.WorkingHours)
	assert.Equal(t, 5*time.Hour+40*time.Minute, *row.WorkingHours)
	require.NotNil(t, row.LateBy)
	assert.Equal(t, 15*time.Minute, *row.LateBy)
}

func TestResolveRow_NoPunch(t *testing.T) {
	row := ResolveRow(domain.Person{PersonID: "s1", PersonType: domain.PersonStudent}, nil, schoolDay, rule())

	assert.Equal(t, domain.StatusNoRecord, row.Status)
	assert.Nil(t, row.InTime)
	assert.Nil(t, row.WorkingHours)
	assert.Nil(t, row.LateBy)
}

func TestSummarize(t *testing.T) {
	statuses := []domain.AttendanceStatus{
		domain.StatusPresent, domain.StatusPresent, domain.StatusLate, domain.StatusHalfDay,
		domain.StatusAbsent, domain.StatusNoRecord, domain.StatusExcused,
		domain.StatusWeekend, domain.StatusHoliday,
	}
	rows := make([]domain.AttendanceRow, len(statuses))
	for i, s := range statuses {
		rows[i] = domain.AttendanceRow{Status: s}
	}

	s := Summarize(rows)

	assert.Equal(t, 2, s.Present)
	assert.Equal(t, 1, s.Absent)
	assert.Equal(t, 1, s.NoRecord)
	assert.Equal(t, 7, s.WorkingDays)
	assert.InDelta(t, 4.0/7.0, s.AttendanceRate, 1e-9)
}

func TestSummarize_NoWorkingDays(t *testing.T) {
	s := Summarize([]domain.AttendanceRow{{Status: domain.StatusWeekend}})
	assert.Zero(t, s.WorkingDays)
	assert.Zero(t, s.AttendanceRate)
}
