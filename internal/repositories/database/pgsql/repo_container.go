package pgsql

import (
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	attendanceRepo := newAttendanceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ReportingRepo:     newReportingRepository(dbPool),
		AttendanceRepo:    attendanceRepo,
		RosterRepo:        attendanceRepo,
		ProvidentFundRepo: newProvidentFundRepository(dbPool),
	}
}
