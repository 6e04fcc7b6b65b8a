package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AttendanceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAttendanceRepository
	service  portssvc.AttendanceService
	ctx      context.Context
	now      time.Time
}

func defaultRule(domain.PersonType) domain.AttendanceRule {
	return domain.AttendanceRule{
		InTime:       domain.MustParseClock("08:00"),
		LateTime:     domain.MustParseClock("08:15"),
		OutTime:      domain.MustParseClock("13:00"),
		WeekendDays:  map[time.Weekday]bool{time.Friday: true},
		HolidayDates: map[string]string{},
	}
}

func clock(s string) *domain.ClockTime {
	c := domain.MustParseClock(s)
	return &c
}

func (suite *AttendanceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAttendanceRepository)
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewAttendanceService(suite.mockRepo, defaultRule,
		services.WithSchoolTimezone(time.UTC),
		services.WithAttendanceClock(func() time.Time { return suite.now }),
	)
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (suite *AttendanceServiceTestSuite) TestDailyRegister_ResolvesEveryPerson() {
	day := date("2024-02-05") // Monday
	roster := []domain.Person{
		{PersonID: "s1", PersonType: domain.PersonStudent, Name: "Arif"},
		{PersonID: "s2", PersonType: domain.PersonStudent, Name: "Bina"},
		{PersonID: "s3", PersonType: domain.PersonStudent, Name: "Chayan"},
	}

	suite.mockRepo.On("ListRoster", suite.ctx, domain.PersonStudent, domain.RosterFilter{}).Return(roster, nil).Once()
	suite.mockRepo.On("FindRule", suite.ctx, domain.PersonStudent).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ListHolidays", suite.ctx, day, day).Return([]domain.Holiday{}, nil).Once()
	suite.mockRepo.On("ListPunches", suite.ctx, domain.PersonStudent, []string{"s1", "s2", "s3"}, day, day).Return([]domain.AttendancePunch{
		{PersonID: "s1", Date: day, InTime: clock("08:05"), Source: domain.SourceDevice},
		{PersonID: "s2", Date: day, InTime: clock("08:30"), Source: domain.SourceDevice},
	}, nil).Once()

	register, err := suite.service.DailyRegister(suite.ctx, domain.PersonStudent, day, domain.RosterFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(register.Rows, 3)
	suite.Equal(domain.StatusPresent, register.Rows[0].Status)
	suite.Equal(domain.StatusLate, register.Rows[1].Status)
	suite.Require().NotNil(register.Rows[1].LateBy)
	suite.Equal(15*time.Minute, *register.Rows[1].LateBy)
	suite.Equal(domain.StatusNoRecord, register.Rows[2].Status)
	suite.Equal(0, register.Summary.Absent)
	suite.Equal(1, register.Summary.NoRecord)
	suite.Equal(3, register.Summary.WorkingDays)
	suite.InDelta(2.0/3.0, register.Summary.AttendanceRate, 0.0001)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AttendanceServiceTestSuite) TestDailyRegister_HolidayOverridesPunch() {
	day := date("2024-02-21")
	roster := []domain.Person{{PersonID: "t1", PersonType: domain.PersonTeacher, Name: "Rahim"}}
	stored := defaultRule(domain.PersonTeacher)

	suite.mockRepo.On("ListRoster", suite.ctx, domain.PersonTeacher, mock.Anything).Return(roster, nil).Once()
	suite.mockRepo.On("FindRule", suite.ctx, domain.PersonTeacher).Return(&stored, nil).Once()
	suite.mockRepo.On("ListHolidays", suite.ctx, day, day).Return([]domain.Holiday{{Date: day, Title: "Language Day"}}, nil).Once()
	suite.mockRepo.On("ListPunches", suite.ctx, domain.PersonTeacher, []string{"t1"}, day, day).Return([]domain.AttendancePunch{
		{PersonID: "t1", Date: day, InTime: clock("07:50"), OutTime: clock("14:00"), Source: domain.SourceDevice},
	}, nil).Once()

	register, err := suite.service.DailyRegister(suite.ctx, domain.PersonTeacher, day, domain.RosterFilter{})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusHoliday, register.Rows[0].Status)
	suite.Equal(0, register.Summary.WorkingDays)
	suite.Zero(register.Summary.AttendanceRate)
}

func (suite *AttendanceServiceTestSuite) TestDailyRegister_EmptyRoster() {
	suite.mockRepo.On("ListRoster", suite.ctx, domain.PersonStudent, mock.Anything).Return([]domain.Person{}, nil).Once()

	register, err := suite.service.DailyRegister(suite.ctx, domain.PersonStudent, date("2024-02-05"), domain.RosterFilter{})

	suite.Require().NoError(err)
	suite.Empty(register.Rows)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPunches", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AttendanceServiceTestSuite) TestDailyRegister_InvalidPersonType() {
	register, err := suite.service.DailyRegister(suite.ctx, "parent", date("2024-02-05"), domain.RosterFilter{})

	suite.Nil(register)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AttendanceServiceTestSuite) TestMonthlyCalendar_StopsAtToday() {
	teacher := &domain.Person{PersonID: "t1", PersonType: domain.PersonTeacher, Name: "Rahim"}
	excused := domain.StatusExcused

	suite.mockRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(teacher, nil).Once()
	suite.mockRepo.On("FindRule", suite.ctx, domain.PersonTeacher).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ListHolidays", suite.ctx, date("2024-02-01"), date("2024-02-10")).Return([]domain.Holiday{}, nil).Once()
	suite.mockRepo.On("ListPunches", suite.ctx, domain.PersonTeacher, []string{"t1"}, date("2024-02-01"), date("2024-02-10")).Return([]domain.AttendancePunch{
		{PersonID: "t1", Date: date("2024-02-05"), Source: domain.SourceManual, ManualStatus: &excused},
	}, nil).Once()

	calendar, err := suite.service.MonthlyCalendar(suite.ctx, domain.PersonTeacher, "t1", date("2024-02-01"))

	suite.Require().NoError(err)
	suite.Len(calendar.Days, 10)
	suite.Equal(domain.StatusExcused, calendar.Days[4].Status)
	suite.Equal(2, calendar.Summary.Weekend)
	suite.Equal(1, calendar.Summary.Excused)
	suite.Equal(7, calendar.Summary.NoRecord)
	suite.Equal(8, calendar.Summary.WorkingDays)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AttendanceServiceTestSuite) TestMonthlyCalendar_UnknownPerson() {
	suite.mockRepo.On("FindPerson", suite.ctx, domain.PersonStudent, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	calendar, err := suite.service.MonthlyCalendar(suite.ctx, domain.PersonStudent, "ghost", date("2024-02-01"))

	suite.Nil(calendar)
	suite.ErrorIs(err, apperrors.ErrUnknownPerson)
}

func (suite *AttendanceServiceTestSuite) TestRecordPunch_ManualStatus() {
	day := date("2024-02-05")
	student := &domain.Person{PersonID: "s1", PersonType: domain.PersonStudent, Name: "Arif"}
	absent := domain.StatusAbsent
	punch := domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Date: day, Source: domain.SourceManual, ManualStatus: &absent}

	suite.mockRepo.On("FindPerson", suite.ctx, domain.PersonStudent, "s1").Return(student, nil).Once()
	suite.mockRepo.On("UpsertPunch", suite.ctx, mock.MatchedBy(func(p domain.AttendancePunch) bool {
		return p.PersonID == "s1" && p.UpdatedBy == "clerk" && p.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()
	suite.mockRepo.On("FindRule", suite.ctx, domain.PersonStudent).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ListHolidays", suite.ctx, day, day).Return([]domain.Holiday{}, nil).Once()

	row, err := suite.service.RecordPunch(suite.ctx, punch, "clerk")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusAbsent, row.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AttendanceServiceTestSuite) TestRecordPunch_Validation() {
	holiday := domain.StatusHoliday
	late := domain.StatusLate
	testCases := []struct {
		name  string
		punch domain.AttendancePunch
	}{
		{name: "calendar status", punch: domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Source: domain.SourceManual, ManualStatus: &holiday}},
		{name: "device with status", punch: domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Source: domain.SourceDevice, ManualStatus: &late}},
		{name: "unknown source", punch: domain.AttendancePunch{PersonID: "s1", PersonType: domain.PersonStudent, Source: "sms"}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			row, err := suite.service.RecordPunch(suite.ctx, tc.punch, "clerk")
			suite.Nil(row)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *AttendanceServiceTestSuite) TestMarkAll_DeduplicatesIDs() {
	day := date("2024-02-05")
	suite.mockRepo.On("MarkAll", suite.ctx, domain.PersonStudent, []string{"s1", "s2"}, day, domain.StatusPresent, "clerk", suite.now).Return(nil).Once()

	updated, err := suite.service.MarkAll(suite.ctx, domain.PersonStudent, []string{"s1", "s2", "s1", ""}, day, domain.StatusPresent, "clerk")

	suite.NoError(err)
	suite.Equal(2, updated)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AttendanceServiceTestSuite) TestMarkAll_Failures() {
	day := date("2024-02-05")
	testCases := []struct {
		name     string
		repoErr  error
		expected []error
	}{
		{name: "unknown person", repoErr: apperrors.ErrUnknownPerson, expected: []error{apperrors.ErrUnknownPerson}},
		{name: "write failure", repoErr: assert.AnError, expected: []error{apperrors.ErrPartialWrite, assert.AnError}},
		{name: "cancelled", repoErr: context.Canceled, expected: []error{apperrors.ErrPartialWrite, context.Canceled}},
		{
			name:     "aborted batch keeps cause",
			repoErr:  fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, context.DeadlineExceeded),
			expected: []error{apperrors.ErrPartialWrite, context.DeadlineExceeded},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			repo := new(MockAttendanceRepository)
			svc := services.NewAttendanceService(repo, defaultRule, services.WithAttendanceClock(func() time.Time { return suite.now }))
			repo.On("MarkAll", suite.ctx, domain.PersonStudent, []string{"s1"}, day, domain.StatusAbsent, "clerk", suite.now).Return(tc.repoErr).Once()

			updated, err := svc.MarkAll(suite.ctx, domain.PersonStudent, []string{"s1"}, day, domain.StatusAbsent, "clerk")

			suite.Zero(updated)
			for _, want := range tc.expected {
				suite.ErrorIs(err, want)
			}
			repo.AssertExpectations(suite.T())
		})
	}
}

func (suite *AttendanceServiceTestSuite) TestMarkAll_RejectsCalendarStatus() {
	_, err := suite.service.MarkAll(suite.ctx, domain.PersonStudent, []string{"s1"}, date("2024-02-05"), domain.StatusWeekend, "clerk")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
