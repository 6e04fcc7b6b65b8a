package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/repositories"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/handlers"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/jobs"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/middleware"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/platform/analytics"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/platform/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/repositories/database/pgsql"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/repositories/inmem"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title School Management Pro API
// @version 1.0
// @description Financial reports, attendance and provident fund for a school.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	if cfg.AttendanceStore == config.StoreMemory {
		store, err := memoryAttendanceStore(context.Background(), repos, cfg.SchoolTimezone)
		if err != nil {
			logger.Error("Failed to prepare in-memory attendance store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.AttendanceRepo = store
		logger.Warn("Attendance punches are kept in memory and are lost on restart")
	}
	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))

	tracker := analytics.NewPosthogTracker(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer tracker.Close()
	r.Use(middleware.UsageTracking(tracker))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	var scheduler *jobs.ClosingScheduler
	if cfg.EnablePeriodClosing {
		scheduler = jobs.NewClosingScheduler(serviceContainer.Reporting, cfg.PeriodClosingCron, cfg.SchoolTimezone, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error("Failed to start period closing scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-ctx.Done():
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// runMigrations applies every pending "up" migration through a temporary database/sql handle.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// memoryAttendanceStore seeds an in-memory store with the rosters, settings and the
// surrounding years' holidays from Postgres.
func memoryAttendanceStore(ctx context.Context, repos portsrepo.RepositoryProvider, loc *time.Location) (*inmem.AttendanceStore, error) {
	store := inmem.NewAttendanceStore()
	if err := store.LoadRoster(ctx, repos.RosterRepo); err != nil {
		return nil, err
	}
	year := time.Now().In(loc).Year()
	from := time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, time.December, 31, 0, 0, 0, 0, time.UTC)
	if err := store.LoadSettings(ctx, repos.AttendanceRepo, from, to); err != nil {
		return nil, err
	}
	return store, nil
}
