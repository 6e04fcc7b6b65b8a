package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() *AttendanceStore {
	s := NewAttendanceStore()
	s.AddPerson(domain.Person{PersonID: "s2", PersonType: domain.PersonStudent, Name: "Bina", ClassID: "c1", RollNumber: "02"})
	s.AddPerson(domain.Person{PersonID: "s1", PersonType: domain.PersonStudent, Name: "Arif", ClassID: "c1", RollNumber: "01"})
	s.AddPerson(domain.Person{PersonID: "s3", PersonType: domain.PersonStudent, Name: "Chayan", ClassID: "c2", RollNumber: "01"})
	return s
}

func day(s string) time.Time {
	d, _ := time.Parse(domain.DateLayout, s)
	return d
}

func TestListRoster_FiltersAndOrders(t *testing.T) {
	s := seededStore()
	class := "c1"

	people, err := s.ListRoster(context.Background(), domain.PersonStudent, domain.RosterFilter{ClassID: &class})

	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "s1", people[0].PersonID)
	assert.Equal(t, "s2", people[1].PersonID)
}

func TestUpsertPunch_ReplacesSameDay(t *testing.T) {
	s := seededStore()
	ctx := context.Background()
	in1 := domain.MustParseClock("08:05")
	in2 := domain.MustParseClock("08:20")

	require.NoError(t, s.UpsertPunch(ctx, domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Date: day("2024-02-05"), InTime: &in1, Source: domain.SourceDevice}))
	require.NoError(t, s.UpsertPunch(ctx, domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Date: day("2024-02-05"), InTime: &in2, Source: domain.SourceDevice}))

	punches, err := s.ListPunches(ctx, domain.PersonStudent, nil, day("2024-02-01"), day("2024-02-29"))

	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, in2, *punches[0].InTime)
}

func TestMarkAll_KeepsTimesAndOverridesStatus(t *testing.T) {
	s := seededStore()
	ctx := context.Background()
	in := domain.MustParseClock("08:05")
	at := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpsertPunch(ctx, domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Date: day("2024-02-05"), InTime: &in, Source: domain.SourceDevice}))

	err := s.MarkAll(ctx, domain.PersonStudent, []string{"s1", "s2"}, day("2024-02-05"), domain.StatusExcused, "clerk", at)

	require.NoError(t, err)
	punches, _ := s.ListPunches(ctx, domain.PersonStudent, []string{"s1", "s2"}, day("2024-02-05"), day("2024-02-05"))
	require.Len(t, punches, 2)
	for _, p := range punches {
		assert.Equal(t, domain.SourceManual, p.Source)
		require.NotNil(t, p.ManualStatus)
		assert.Equal(t, domain.StatusExcused, *p.ManualStatus)
		assert.Equal(t, "clerk", p.UpdatedBy)
	}
	assert.Equal(t, in, *punches[0].InTime)
}

func TestMarkAll_UnknownPersonLeavesStoreUnchanged(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	err := s.MarkAll(ctx, domain.PersonStudent, []string{"s1", "ghost"}, day("2024-02-05"), domain.StatusPresent, "clerk", time.Now())

	assert.ErrorIs(t, err, apperrors.ErrUnknownPerson)
	punches, _ := s.ListPunches(ctx, domain.PersonStudent, nil, day("2024-02-01"), day("2024-02-29"))
	assert.Empty(t, punches)
}

// cancelAfter reports no error for the first n checks, then context.Canceled.
type cancelAfter struct {
	context.Context
	n int
}

func (c *cancelAfter) Err() error {
	if c.n <= 0 {
		return context.Canceled
	}
	c.n--
	return nil
}

func TestMarkAll_FailedSecondWriteRollsBackFirst(t *testing.T) {
	s := seededStore()
	in := domain.MustParseClock("08:05")
	original := domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Date: day("2024-02-05"), InTime: &in, Source: domain.SourceDevice}
	require.NoError(t, s.UpsertPunch(context.Background(), original))

	ctx := &cancelAfter{Context: context.Background(), n: 1}
	err := s.MarkAll(ctx, domain.PersonStudent, []string{"s1", "s2", "s3"}, day("2024-02-05"), domain.StatusAbsent, "clerk", time.Now())

	assert.ErrorIs(t, err, apperrors.ErrPartialWrite)
	assert.ErrorIs(t, err, context.Canceled)
	punches, _ := s.ListPunches(context.Background(), domain.PersonStudent, nil, day("2024-02-01"), day("2024-02-29"))
	require.Len(t, punches, 1)
	assert.Equal(t, domain.SourceDevice, punches[0].Source)
	assert.Nil(t, punches[0].ManualStatus)
	assert.Equal(t, in, *punches[0].InTime)
}

func TestFindRuleAndHolidays(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	_, err := s.FindRule(ctx, domain.PersonTeacher)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	s.SetRule(domain.PersonTeacher, domain.AttendanceRule{LateTime: domain.MustParseClock("08:00")})
	rule, err := s.FindRule(ctx, domain.PersonTeacher)
	require.NoError(t, err)
	assert.Equal(t, "08:00", rule.LateTime.String())

	s.AddHoliday(domain.Holiday{Date: day("2024-02-21"), Title: "Language Day"})
	s.AddHoliday(domain.Holiday{Date: day("2024-03-26"), Title: "Independence Day"})
	holidays, err := s.ListHolidays(ctx, day("2024-02-01"), day("2024-02-29"))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Language Day", holidays[0].Title)
}

func TestFindPerson_NotFound(t *testing.T) {
	_, err := seededStore().FindPerson(context.Background(), domain.PersonTeacher, "s1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoadRosterAndSettings_CopiesFromSource(t *testing.T) {
	source := seededStore()
	source.SetRule(domain.PersonStudent, domain.AttendanceRule{LateTime: domain.MustParseClock("08:15")})
	source.AddHoliday(domain.Holiday{Date: day("2024-02-21"), Title: "Language Day"})
	ctx := context.Background()

	s := NewAttendanceStore()
	require.NoError(t, s.LoadRoster(ctx, source))
	require.NoError(t, s.LoadSettings(ctx, source, day("2024-01-01"), day("2024-12-31")))

	people, _ := s.ListRoster(ctx, domain.PersonStudent, domain.RosterFilter{})
	assert.Len(t, people, 3)
	_, err := s.FindRule(ctx, domain.PersonTeacher)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	rule, err := s.FindRule(ctx, domain.PersonStudent)
	require.NoError(t, err)
	assert.Equal(t, "08:15", rule.LateTime.String())
	holidays, _ := s.ListHolidays(ctx, day("2024-02-01"), day("2024-02-29"))
	assert.Len(t, holidays, 1)
}
