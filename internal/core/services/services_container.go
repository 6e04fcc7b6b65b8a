package services

import (
	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithFiscalYearStartMonth(cfg.FiscalYearStartMonth),
	)

	container.Attendance = NewAttendanceService(
		repos.AttendanceRepo,
		cfg.Rule,
		WithSchoolTimezone(cfg.SchoolTimezone),
	)

	container.ProvidentFund = NewProvidentFundService(repos.ProvidentFundRepo, repos.RosterRepo)

	return container
}
