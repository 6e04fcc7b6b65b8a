package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rosterSelect projects students and teachers onto the same columns.
var rosterSelect = map[domain.PersonType]string{
	domain.PersonStudent: `
		SELECT student_id AS person_id, name, class_id, section_id, roll_number
		FROM students
		WHERE is_active`,
	domain.PersonTeacher: `
		SELECT teacher_id AS person_id, name, NULL::text AS class_id, NULL::text AS section_id, NULL::text AS roll_number
		FROM teachers
		WHERE is_active`,
}

var rosterIDColumn = map[domain.PersonType]string{
	domain.PersonStudent: "student_id",
	domain.PersonTeacher: "teacher_id",
}

const punchUpsertSQL = `
	INSERT INTO attendance_punches
		(person_type, person_id, attendance_date, in_time, out_time, source, manual_status, remarks, updated_at, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (person_type, person_id, attendance_date) DO UPDATE
	SET in_time = EXCLUDED.in_time,
		out_time = EXCLUDED.out_time,
		source = EXCLUDED.source,
		manual_status = EXCLUDED.manual_status,
		remarks = EXCLUDED.remarks,
		updated_at = EXCLUDED.updated_at,
		updated_by = EXCLUDED.updated_by
`

// markAllSQL keeps any recorded times and only overrides the status.
const markAllSQL = `
	INSERT INTO attendance_punches
		(person_type, person_id, attendance_date, source, manual_status, updated_at, updated_by)
	VALUES ($1, $2, $3, 'manual', $4, $5, $6)
	ON CONFLICT (person_type, person_id, attendance_date) DO UPDATE
	SET source = 'manual',
		manual_status = EXCLUDED.manual_status,
		updated_at = EXCLUDED.updated_at,
		updated_by = EXCLUDED.updated_by
`

type attendanceRepository struct {
	BaseRepository
}

func newAttendanceRepository(db *pgxpool.Pool) *attendanceRepository {
	return &attendanceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.AttendanceRepository = (*attendanceRepository)(nil)

func rosterQuery(personType domain.PersonType) (string, error) {
	q, ok := rosterSelect[personType]
	if !ok {
		return "", fmt.Errorf("%w: unknown person type %q", apperrors.ErrValidation, personType)
	}
	return q, nil
}

// activeIDsQuery selects which of the given IDs belong to active people of the roster.
func activeIDsQuery(personType domain.PersonType) (string, error) {
	idColumn, ok := rosterIDColumn[personType]
	if !ok {
		return "", fmt.Errorf("%w: unknown person type %q", apperrors.ErrValidation, personType)
	}
	table := "students"
	if personType == domain.PersonTeacher {
		table = "teachers"
	}
	return `SELECT ` + idColumn + ` FROM ` + table + ` WHERE is_active AND ` + idColumn + ` = ANY($1)`, nil
}

// FindPerson returns ErrNotFound when the person does not exist.
func (r *attendanceRepository) FindPerson(ctx context.Context, personType domain.PersonType, personID string) (*domain.Person, error) {
	base, err := rosterQuery(personType)
	if err != nil {
		return nil, err
	}
	rows, err := r.Pool.Query(ctx, base+` AND `+rosterIDColumn[personType]+` = $1`, personID)
	if err != nil {
		return nil, fmt.Errorf("error querying %s %s: %w", personType, personID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Person])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, personType, personID)
		}
		return nil, fmt.Errorf("error scanning %s %s: %w", personType, personID, err)
	}
	person := mapping.ToDomainPerson(m, personType)
	return &person, nil
}

// ListRoster returns the roster in roll/name order. Teachers ignore the class filter.
func (r *attendanceRepository) ListRoster(ctx context.Context, personType domain.PersonType, filter domain.RosterFilter) ([]domain.Person, error) {
	base, err := rosterQuery(personType)
	if err != nil {
		return nil, err
	}

	var (
		query string
		args  []any
	)
	if personType == domain.PersonStudent {
		query = base + `
			AND ($1::text IS NULL OR class_id = $1)
			AND ($2::text IS NULL OR section_id = $2)
			ORDER BY roll_number NULLS LAST, name`
		args = []any{filter.ClassID, filter.SectionID}
	} else {
		query = base + ` ORDER BY name`
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s roster: %w", personType, err)
	}
	people, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Person])
	if err != nil {
		return nil, fmt.Errorf("error scanning %s roster: %w", personType, err)
	}

	result := make([]domain.Person, len(people))
	for i, p := range people {
		result[i] = mapping.ToDomainPerson(p, personType)
	}
	return result, nil
}

// ListPunches returns punches dated within [from, to]. A nil personIDs slice is
// sent as NULL and matches everyone.
func (r *attendanceRepository) ListPunches(ctx context.Context, personType domain.PersonType, personIDs []string, from, to time.Time) ([]domain.AttendancePunch, error) {
	query := `
		SELECT person_type, person_id, attendance_date, in_time, out_time, source, manual_status, remarks, updated_at, updated_by
		FROM attendance_punches
		WHERE person_type = $1
			AND attendance_date BETWEEN $2 AND $3
			AND ($4::text[] IS NULL OR person_id = ANY($4))
		ORDER BY attendance_date, person_id
	`
	rows, err := r.Pool.Query(ctx, query, string(personType), from, to, personIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying punches: %w", err)
	}
	punches, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AttendancePunch])
	if err != nil {
		return nil, fmt.Errorf("error scanning punches: %w", err)
	}

	result := make([]domain.AttendancePunch, len(punches))
	for i, p := range punches {
		result[i] = mapping.ToDomainPunch(p)
	}
	return result, nil
}

// UpsertPunch creates the punch or replaces the one for the same person and date.
func (r *attendanceRepository) UpsertPunch(ctx context.Context, punch domain.AttendancePunch) error {
	m := mapping.ToModelPunch(punch)
	_, err := r.Pool.Exec(ctx, punchUpsertSQL,
		m.PersonType, m.PersonID, m.AttendanceDate, m.InTime, m.OutTime,
		m.Source, m.ManualStatus, m.Remarks, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save punch for %s %s: %w", m.PersonType, m.PersonID, err)
	}
	return nil
}

// MarkAll checks every person exists, then writes all statuses in one batch
// inside a single transaction. Nothing is persisted unless every write succeeds.
func (r *attendanceRepository) MarkAll(ctx context.Context, personType domain.PersonType, personIDs []string, date time.Time, status domain.AttendanceStatus, userID string, at time.Time) error {
	checkQuery, err := activeIDsQuery(personType)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	rows, err := tx.Query(ctx, checkQuery, personIDs)
	if err != nil {
		return fmt.Errorf("error checking roster: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("error scanning roster ids: %w", err)
	}
	if missing := missingIDs(personIDs, found); len(missing) > 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrUnknownPerson, personType, strings.Join(missing, ", "))
	}

	batch := &pgx.Batch{}
	var updatedBy *string
	if userID != "" {
		updatedBy = &userID
	}
	for _, id := range personIDs {
		batch.Queue(markAllSQL, string(personType), id, domain.TruncateDate(date), string(status), at, updatedBy)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err)
	}
	return nil
}

func missingIDs(wanted, found []string) []string {
	have := make(map[string]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []string
	for _, id := range wanted {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// FindRule returns the stored window of the roster, or ErrNotFound.
func (r *attendanceRepository) FindRule(ctx context.Context, personType domain.PersonType) (*domain.AttendanceRule, error) {
	query := `
		SELECT person_type, in_time, late_time, out_time, weekend_days
		FROM attendance_settings
		WHERE person_type = $1
	`
	rows, err := r.Pool.Query(ctx, query, string(personType))
	if err != nil {
		return nil, fmt.Errorf("error querying attendance settings: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AttendanceSetting])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: attendance settings for %s", apperrors.ErrNotFound, personType)
		}
		return nil, fmt.Errorf("error scanning attendance settings: %w", err)
	}
	rule := mapping.ToDomainRule(m)
	return &rule, nil
}

// ListHolidays returns the holidays dated within [from, to].
func (r *attendanceRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT holiday_date, title
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying holidays: %w", err)
	}
	holidays, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Holiday])
	if err != nil {
		return nil, fmt.Errorf("error scanning holidays: %w", err)
	}

	result := make([]domain.Holiday, len(holidays))
	for i, h := range holidays {
		result[i] = mapping.ToDomainHoliday(h)
	}
	return result, nil
}
