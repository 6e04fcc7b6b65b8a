package config

import (
	"log"
	"strings"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Attendance store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// AttendanceWindow is the fallback time window of a roster when no settings
// row exists in the database.
type AttendanceWindow struct {
	InTime   string
	LateTime string
	OutTime  string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	JWTIssuer          string
	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	PosthogEndpoint    string

	// Reporting
	FiscalYearStartMonth int
	SchoolTimezone       *time.Location
	PeriodClosingCron    string
	EnablePeriodClosing  bool

	// Attendance
	StudentWindow   AttendanceWindow
	TeacherWindow   AttendanceWindow
	WeekendDays     []string
	AttendanceStore string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "school-management-pro")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("FISCAL_YEAR_START_MONTH", 1)
	viper.SetDefault("SCHOOL_TIMEZONE", "Asia/Dhaka")
	viper.SetDefault("PERIOD_CLOSING_CRON", "30 0 1 * *")
	viper.SetDefault("ENABLE_PERIOD_CLOSING", false)
	viper.SetDefault("DEFAULT_STUDENT_IN_TIME", "08:00")
	viper.SetDefault("DEFAULT_STUDENT_LATE_TIME", "08:15")
	viper.SetDefault("DEFAULT_STUDENT_OUT_TIME", "13:00")
	viper.SetDefault("DEFAULT_TEACHER_IN_TIME", "07:45")
	viper.SetDefault("DEFAULT_TEACHER_LATE_TIME", "08:00")
	viper.SetDefault("DEFAULT_TEACHER_OUT_TIME", "14:00")
	viper.SetDefault("DEFAULT_WEEKEND_DAYS", "Friday")
	viper.SetDefault("ATTENDANCE_STORE", StorePostgres)

	// Environment variables override the defaults above and the .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.FiscalYearStartMonth = viper.GetInt("FISCAL_YEAR_START_MONTH")
	if cfg.FiscalYearStartMonth < 1 || cfg.FiscalYearStartMonth > 12 {
		log.Printf("Warning: Invalid value for FISCAL_YEAR_START_MONTH (%d). Defaulting to 1.\n", cfg.FiscalYearStartMonth)
		cfg.FiscalYearStartMonth = 1
	}

	tz := viper.GetString("SCHOOL_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid value for SCHOOL_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.SchoolTimezone = loc

	cfg.PeriodClosingCron = viper.GetString("PERIOD_CLOSING_CRON")
	cfg.EnablePeriodClosing = viper.GetBool("ENABLE_PERIOD_CLOSING")

	cfg.StudentWindow = AttendanceWindow{
		InTime:   clockOrDefault("DEFAULT_STUDENT_IN_TIME", "08:00"),
		LateTime: clockOrDefault("DEFAULT_STUDENT_LATE_TIME", "08:15"),
		OutTime:  clockOrDefault("DEFAULT_STUDENT_OUT_TIME", "13:00"),
	}
	cfg.TeacherWindow = AttendanceWindow{
		InTime:   clockOrDefault("DEFAULT_TEACHER_IN_TIME", "07:45"),
		LateTime: clockOrDefault("DEFAULT_TEACHER_LATE_TIME", "08:00"),
		OutTime:  clockOrDefault("DEFAULT_TEACHER_OUT_TIME", "14:00"),
	}

	cfg.WeekendDays = splitList(viper.GetString("DEFAULT_WEEKEND_DAYS"))
	if _, err := domain.ParseWeekdays(cfg.WeekendDays); err != nil {
		log.Printf("Warning: Invalid value for DEFAULT_WEEKEND_DAYS (%v). Defaulting to Friday.\n", err)
		cfg.WeekendDays = []string{"Friday"}
	}

	cfg.AttendanceStore = strings.ToLower(viper.GetString("ATTENDANCE_STORE"))
	if cfg.AttendanceStore != StorePostgres && cfg.AttendanceStore != StoreMemory {
		log.Printf("Warning: Invalid value for ATTENDANCE_STORE ('%s'). Defaulting to %s.\n", cfg.AttendanceStore, StorePostgres)
		cfg.AttendanceStore = StorePostgres
	}

	return cfg, nil
}

// Rule builds the fallback attendance rule of a roster from the configured window.
func (c *Config) Rule(personType domain.PersonType) domain.AttendanceRule {
	window := c.StudentWindow
	if personType == domain.PersonTeacher {
		window = c.TeacherWindow
	}
	weekend, _ := domain.ParseWeekdays(c.WeekendDays)
	return domain.AttendanceRule{
		InTime:       domain.MustParseClock(window.InTime),
		LateTime:     domain.MustParseClock(window.LateTime),
		OutTime:      domain.MustParseClock(window.OutTime),
		WeekendDays:  weekend,
		HolidayDates: map[string]string{},
	}
}

func clockOrDefault(key, fallback string) string {
	value := viper.GetString(key)
	if _, err := domain.ParseClock(value); err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, value, fallback)
		return fallback
	}
	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
