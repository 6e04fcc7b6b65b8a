// Package inmem keeps attendance data in process memory. It backs tests and
// single-node deployments that stage device punches before they reach Postgres.
package inmem

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
)

type punchKey struct {
	personType domain.PersonType
	personID   string
	date       string
}

type (
	// AttendanceStore implements the attendance repository in memory.
	AttendanceStore struct {
		mutex    sync.RWMutex
		roster   map[domain.PersonType][]domain.Person
		punches  map[punchKey]domain.AttendancePunch
		rules    map[domain.PersonType]domain.AttendanceRule
		holidays map[string]domain.Holiday
	}
)

var _ portsrepo.AttendanceRepository = (*AttendanceStore)(nil)

// NewAttendanceStore returns an empty store.
func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{
		roster:   make(map[domain.PersonType][]domain.Person),
		punches:  make(map[punchKey]domain.AttendancePunch),
		rules:    make(map[domain.PersonType]domain.AttendanceRule),
		holidays: make(map[string]domain.Holiday),
	}
}

func keyOf(personType domain.PersonType, personID string, date time.Time) punchKey {
	return punchKey{personType: personType, personID: personID, date: date.Format(domain.DateLayout)}
}

// AddPerson adds or replaces a roster entry.
func (s *AttendanceStore) AddPerson(p domain.Person) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	people := s.roster[p.PersonType]
	for i := range people {
		if people[i].PersonID == p.PersonID {
			people[i] = p
			return
		}
	}
	s.roster[p.PersonType] = append(people, p)
}

// LoadRoster copies both rosters from another source, typically Postgres.
func (s *AttendanceStore) LoadRoster(ctx context.Context, source portsrepo.RosterReader) error {
	for _, pt := range []domain.PersonType{domain.PersonStudent, domain.PersonTeacher} {
		people, err := source.ListRoster(ctx, pt, domain.RosterFilter{})
		if err != nil {
			return fmt.Errorf("failed to load %s roster: %w", pt, err)
		}
		for _, p := range people {
			s.AddPerson(p)
		}
	}
	return nil
}

// LoadSettings copies the stored windows of both rosters and the holidays dated
// within [from, to] from another source.
func (s *AttendanceStore) LoadSettings(ctx context.Context, source portsrepo.AttendanceSettingsReader, from, to time.Time) error {
	for _, pt := range []domain.PersonType{domain.PersonStudent, domain.PersonTeacher} {
		rule, err := source.FindRule(ctx, pt)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s attendance settings: %w", pt, err)
		}
		s.SetRule(pt, *rule)
	}
	holidays, err := source.ListHolidays(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to load holidays: %w", err)
	}
	for _, h := range holidays {
		s.AddHoliday(h)
	}
	return nil
}

// SetRule stores the window of a roster.
func (s *AttendanceStore) SetRule(personType domain.PersonType, rule domain.AttendanceRule) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.rules[personType] = rule
}

// AddHoliday stores a holiday.
func (s *AttendanceStore) AddHoliday(h domain.Holiday) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	h.Date = domain.TruncateDate(h.Date)
	s.holidays[h.Date.Format(domain.DateLayout)] = h
}

func (s *AttendanceStore) find(personType domain.PersonType, personID string) (domain.Person, bool) {
	for _, p := range s.roster[personType] {
		if p.PersonID == personID {
			return p, true
		}
	}
	return domain.Person{}, false
}

// FindPerson returns ErrNotFound when the person does not exist.
func (s *AttendanceStore) FindPerson(_ context.Context, personType domain.PersonType, personID string) (*domain.Person, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if p, ok := s.find(personType, personID); ok {
		return &p, nil
	}
	return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, personType, personID)
}

// ListRoster returns the roster in roll/name order.
func (s *AttendanceStore) ListRoster(_ context.Context, personType domain.PersonType, filter domain.RosterFilter) ([]domain.Person, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]domain.Person, 0, len(s.roster[personType]))
	for _, p := range s.roster[personType] {
		if filter.ClassID != nil && p.ClassID != *filter.ClassID {
			continue
		}
		if filter.SectionID != nil && p.SectionID != *filter.SectionID {
			continue
		}
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].RollNumber != result[j].RollNumber {
			return result[i].RollNumber < result[j].RollNumber
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ListPunches returns punches dated within [from, to] ordered by date and person.
func (s *AttendanceStore) ListPunches(_ context.Context, personType domain.PersonType, personIDs []string, from, to time.Time) ([]domain.AttendancePunch, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var wanted map[string]bool
	if personIDs != nil {
		wanted = make(map[string]bool, len(personIDs))
		for _, id := range personIDs {
			wanted[id] = true
		}
	}
	period := domain.NewReportPeriod(from, to, nil)

	result := make([]domain.AttendancePunch, 0)
	for k, p := range s.punches {
		if k.personType != personType || !period.Contains(p.Date) {
			continue
		}
		if wanted != nil && !wanted[k.personID] {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].PersonID < result[j].PersonID
	})
	return result, nil
}

// UpsertPunch creates the punch or replaces the one for the same person and date.
func (s *AttendanceStore) UpsertPunch(_ context.Context, punch domain.AttendancePunch) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	punch.Date = domain.TruncateDate(punch.Date)
	s.punches[keyOf(punch.PersonType, punch.PersonID, punch.Date)] = punch
	return nil
}

// MarkAll builds the updated punch table on a copy and swaps it in only after
// every person has been validated and every write staged. A failure at any
// point, including cancellation between writes, leaves the store untouched.
func (s *AttendanceStore) MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string, at time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var missing []string
	for _, id := range personIDs {
		if _, ok := s.find(personType, id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrUnknownPerson, personType, strings.Join(missing, ", "))
	}

	date = domain.TruncateDate(date)
	next := make(map[punchKey]domain.AttendancePunch, len(s.punches)+len(personIDs))
	for k, v := range s.punches {
		next[k] = v
	}
	for _, id := range personIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err)
		}
		k := keyOf(personType, id, date)
		punch, ok := next[k]
		if !ok {
			punch = domain.AttendancePunch{PersonID: id, PersonType: personType, Date: date}
		}
		st := status
		punch.Source = domain.SourceManual
		punch.ManualStatus = &st
		punch.UpdatedAt = at
		punch.UpdatedBy = userID
		next[k] = punch
	}
	s.punches = next
	return nil
}

// FindRule returns the stored window of the roster, or ErrNotFound.
func (s *AttendanceStore) FindRule(_ context.Context, personType domain.PersonType) (*domain.AttendanceRule, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rule, ok := s.rules[personType]
	if !ok {
		return nil, fmt.Errorf("%w: attendance settings for %s", apperrors.ErrNotFound, personType)
	}
	return &rule, nil
}

// ListHolidays returns the holidays dated within [from, to].
func (s *AttendanceStore) ListHolidays(_ context.Context, from, to time.Time) ([]domain.Holiday, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	period := domain.NewReportPeriod(from, to, nil)
	result := make([]domain.Holiday, 0)
	for _, h := range s.holidays {
		if period.Contains(h.Date) {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}
