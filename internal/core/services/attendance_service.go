package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/attendance"
)

// DefaultRuleFunc returns the fallback rule of a roster when no settings are stored.
type DefaultRuleFunc func(personType domain.PersonType) domain.AttendanceRule

// attendanceService implements the AttendanceService interface
type attendanceService struct {
	BaseService
	attendanceRepo portsrepo.AttendanceRepository
	defaultRule    DefaultRuleFunc
	location       *time.Location
}

// AttendanceServiceOption is a functional option for configuring the attendance service
type AttendanceServiceOption func(*attendanceService)

// WithSchoolTimezone sets the location used to decide what "today" is.
func WithSchoolTimezone(loc *time.Location) AttendanceServiceOption {
	return func(s *attendanceService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithAttendanceClock overrides the clock used for audit stamps and the current date.
func WithAttendanceClock(now func() time.Time) AttendanceServiceOption {
	return func(s *attendanceService) {
		s.Now = now
	}
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(repo portsrepo.AttendanceRepository, defaultRule DefaultRuleFunc, options ...AttendanceServiceOption) portssvc.AttendanceService {
	svc := &attendanceService{
		attendanceRepo: repo,
		defaultRule:    defaultRule,
		location:       time.UTC,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.AttendanceService = (*attendanceService)(nil)

func validatePersonType(personType domain.PersonType) error {
	if !personType.Valid() {
		return fmt.Errorf("%w: unknown person type %q", apperrors.ErrValidation, personType)
	}
	return nil
}

func (s *attendanceService) today() time.Time {
	return domain.TruncateDate(s.now().In(s.location))
}

// rule loads the stored rule of the roster, falling back to the configured
// defaults, and merges the holidays of [from, to].
func (s *attendanceService) rule(ctx context.Context, personType domain.PersonType, from, to time.Time) (domain.AttendanceRule, error) {
	var rule domain.AttendanceRule
	stored, err := s.attendanceRepo.FindRule(ctx, personType)
	switch {
	case err == nil:
		rule = *stored
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogDebug(ctx, "No attendance settings stored, using defaults", slog.String("person_type", string(personType)))
		rule = s.defaultRule(personType)
	default:
		s.LogError(ctx, err, "Failed to load attendance settings", slog.String("person_type", string(personType)))
		return domain.AttendanceRule{}, fmt.Errorf("failed to load attendance settings: %w", err)
	}

	holidays, err := s.attendanceRepo.ListHolidays(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load holidays",
			slog.String("from", from.Format(domain.DateLayout)),
			slog.String("to", to.Format(domain.DateLayout)))
		return domain.AttendanceRule{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	return rule.WithHolidays(holidays), nil
}

func (s *attendanceService) findPerson(ctx context.Context, personType domain.PersonType, personID string) (*domain.Person, error) {
	person, err := s.attendanceRepo.FindPerson(ctx, personType, personID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrUnknownPerson, personType, personID)
		}
		s.LogError(ctx, err, "Failed to look up person",
			slog.String("person_type", string(personType)),
			slog.String("person_id", personID))
		return nil, fmt.Errorf("failed to look up person: %w", err)
	}
	return person, nil
}

// DailyRegister resolves the status of every person on the roster for one date
func (s *attendanceService) DailyRegister(ctx context.Context, personType domain.PersonType, date time.Time, filter domain.RosterFilter) (*domain.DailyRegister, error) {
	if err := validatePersonType(personType); err != nil {
		return nil, err
	}
	date = domain.TruncateDate(date)

	roster, err := s.attendanceRepo.ListRoster(ctx, personType, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roster", slog.String("person_type", string(personType)))
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	register := &domain.DailyRegister{
		PersonType: personType,
		Date:       date,
		Rows:       make([]domain.AttendanceRow, 0, len(roster)),
	}
	if len(roster) == 0 {
		return register, nil
	}

	rule, err := s.rule(ctx, personType, date, date)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(roster))
	for i, p := range roster {
		ids[i] = p.PersonID
	}
	punches, err := s.attendanceRepo.ListPunches(ctx, personType, ids, date, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to list punches",
			slog.String("person_type", string(personType)),
			slog.String("date", date.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	byPerson := make(map[string]*domain.AttendancePunch, len(punches))
	for i := range punches {
		byPerson[punches[i].PersonID] = &punches[i]
	}

	for _, person := range roster {
		register.Rows = append(register.Rows, attendance.ResolveRow(person, byPerson[person.PersonID], date, rule))
	}
	register.Summary = attendance.Summarize(register.Rows)

	s.LogInfo(ctx, "Daily register generated",
		slog.String("person_type", string(personType)),
		slog.String("date", date.Format(domain.DateLayout)),
		slog.Int("row_count", len(register.Rows)))
	return register, nil
}

// MonthlyCalendar resolves one person's month. For the current month only days
// up to today are included so future days do not count as missing records.
func (s *attendanceService) MonthlyCalendar(ctx context.Context, personType domain.PersonType, personID string, month time.Time) (*domain.MonthlyCalendar, error) {
	if err := validatePersonType(personType); err != nil {
		return nil, err
	}
	person, err := s.findPerson(ctx, personType, personID)
	if err != nil {
		return nil, err
	}

	period := domain.MonthPeriod(month)
	last := period.End
	if today := s.today(); today.Before(last) {
		last = today
	}

	calendar := &domain.MonthlyCalendar{
		Person: *person,
		Month:  period.Start,
		Days:   make([]domain.AttendanceRow, 0, 31),
	}
	if last.Before(period.Start) {
		return calendar, nil
	}

	rule, err := s.rule(ctx, personType, period.Start, last)
	if err != nil {
		return nil, err
	}
	punches, err := s.attendanceRepo.ListPunches(ctx, personType, []string{personID}, period.Start, last)
	if err != nil {
		s.LogError(ctx, err, "Failed to list punches",
			slog.String("person_type", string(personType)),
			slog.String("person_id", personID))
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	byDate := make(map[string]*domain.AttendancePunch, len(punches))
	for i := range punches {
		byDate[punches[i].Date.Format(domain.DateLayout)] = &punches[i]
	}

	for day := period.Start; !day.After(last); day = day.AddDate(0, 0, 1) {
		calendar.Days = append(calendar.Days, attendance.ResolveRow(*person, byDate[day.Format(domain.DateLayout)], day, rule))
	}
	calendar.Summary = attendance.Summarize(calendar.Days)

	s.LogInfo(ctx, "Monthly calendar generated",
		slog.String("person_type", string(personType)),
		slog.String("person_id", personID),
		slog.String("month", period.Start.Format("2006-01")))
	return calendar, nil
}

// RecordPunch creates or replaces a person's punch for the date and returns the
// resolved row.
func (s *attendanceService) RecordPunch(ctx context.Context, punch domain.AttendancePunch, userID string) (*domain.AttendanceRow, error) {
	if err := validatePersonType(punch.PersonType); err != nil {
		return nil, err
	}
	if punch.Source != domain.SourceManual && punch.Source != domain.SourceDevice {
		return nil, fmt.Errorf("%w: unknown punch source %q", apperrors.ErrValidation, punch.Source)
	}
	if punch.ManualStatus != nil {
		if !punch.ManualStatus.IsManual() {
			return nil, fmt.Errorf("%w: status %q cannot be entered manually", apperrors.ErrValidation, *punch.ManualStatus)
		}
		if punch.Source != domain.SourceManual {
			return nil, fmt.Errorf("%w: device punches cannot carry a status", apperrors.ErrValidation)
		}
	}
	person, err := s.findPerson(ctx, punch.PersonType, punch.PersonID)
	if err != nil {
		return nil, err
	}

	punch.Date = domain.TruncateDate(punch.Date)
	punch.UpdatedAt = s.now()
	punch.UpdatedBy = userID
	if err := s.attendanceRepo.UpsertPunch(ctx, punch); err != nil {
		s.LogError(ctx, err, "Failed to save punch",
			slog.String("person_type", string(punch.PersonType)),
			slog.String("person_id", punch.PersonID),
			slog.String("date", punch.Date.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to save punch: %w", err)
	}

	rule, err := s.rule(ctx, punch.PersonType, punch.Date, punch.Date)
	if err != nil {
		return nil, err
	}
	row := attendance.ResolveRow(*person, &punch, punch.Date, rule)

	s.LogInfo(ctx, "Punch recorded",
		slog.String("person_type", string(punch.PersonType)),
		slog.String("person_id", punch.PersonID),
		slog.String("date", punch.Date.Format(domain.DateLayout)),
		slog.String("status", string(row.Status)))
	return &row, nil
}

// MarkAll applies one manual status to every listed person and returns how many
// distinct people were updated. The write is all or nothing: an unknown person
// or a failed write leaves every punch untouched.
func (s *attendanceService) MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string) (int, error) {
	if err := validatePersonType(personType); err != nil {
		return 0, err
	}
	if !status.IsManual() {
		return 0, fmt.Errorf("%w: status %q cannot be entered manually", apperrors.ErrValidation, status)
	}

	seen := make(map[string]struct{}, len(personIDs))
	ids := make([]string, 0, len(personIDs))
	for _, id := range personIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one person is required", apperrors.ErrValidation)
	}

	date = domain.TruncateDate(date)
	err := s.attendanceRepo.MarkAll(ctx, personType, ids, date, status, userID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Bulk attendance update rolled back",
			slog.String("person_type", string(personType)),
			slog.String("date", date.Format(domain.DateLayout)),
			slog.Int("person_count", len(ids)))
		if errors.Is(err, apperrors.ErrUnknownPerson) || errors.Is(err, apperrors.ErrPartialWrite) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err)
	}

	s.LogInfo(ctx, "Bulk attendance recorded",
		slog.String("person_type", string(personType)),
		slog.String("date", date.Format(domain.DateLayout)),
		slog.String("status", string(status)),
		slog.Int("person_count", len(ids)))
	return len(ids), nil
}
