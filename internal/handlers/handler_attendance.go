package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// attendanceHandler handles HTTP requests for student and teacher attendance
type attendanceHandler struct {
	attendanceService portssvc.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func newAttendanceHandler(as portssvc.AttendanceService, loc *time.Location) *attendanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceHandler{attendanceService: as, loc: loc, now: time.Now}
}

// RegisterAttendanceRoutes registers the attendance routes. loc is the school timezone
// used to default the date and month.
func RegisterAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceService, loc *time.Location) {
	h := newAttendanceHandler(attendanceService, loc)

	attendanceGroup := rg.Group("/attendance/:personType")
	{
		attendanceGroup.GET("/daily", h.getDailyRegister)
		attendanceGroup.GET("/calendar/:personID", h.getMonthlyCalendar)
		attendanceGroup.POST("/punches", h.recordPunch)
		attendanceGroup.POST("/mark-all", h.markAll)
	}
}

func (h *attendanceHandler) today() time.Time {
	return domain.TruncateDate(h.now().In(h.loc))
}

func personTypeParam(c *gin.Context, logger *slog.Logger) (domain.PersonType, bool) {
	pt := domain.PersonType(c.Param("personType"))
	if !pt.Valid() {
		logger.Warn("Unknown person type in path", slog.String("person_type", string(pt)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "personType must be student or teacher"})
		return "", false
	}
	return pt, true
}

// getDailyRegister godoc
// @Summary Daily attendance register
// @Description Resolves the status of everyone on the roster for one date
// @Tags attendance
// @Produce json
// @Param personType path string true "student or teacher"
// @Param date query string false "Date (YYYY-MM-DD)" default(today)
// @Param classID query string false "Class filter (students)"
// @Param sectionID query string false "Section filter (students)"
// @Success 200 {object} dto.DailyRegisterResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to build register"
// @Security BearerAuth
// @Router /attendance/{personType}/daily [get]
func (h *attendanceHandler) getDailyRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	personType, ok := personTypeParam(c, logger)
	if !ok {
		return
	}

	var q dto.DailyRegisterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	date := h.today()
	if q.Date != "" {
		parsed, err := time.Parse(domain.DateLayout, q.Date)
		if err != nil {
			respondBindError(c, logger, err)
			return
		}
		date = parsed
	}

	register, err := h.attendanceService.DailyRegister(c.Request.Context(), personType, date, q.Filter())
	if err != nil {
		respondError(c, logger, err, "build daily register")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyRegisterResponse(register))
}

// getMonthlyCalendar godoc
// @Summary Monthly attendance calendar
// @Description One person's resolved statuses for each day of a month
// @Tags attendance
// @Produce json
// @Param personType path string true "student or teacher"
// @Param personID path string true "Student or teacher ID"
// @Param month query string false "Month (YYYY-MM)" default(current month)
// @Success 200 {object} dto.MonthlyCalendarResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown person"
// @Failure 500 {object} map[string]string "Failed to build calendar"
// @Security BearerAuth
// @Router /attendance/{personType}/calendar/{personID} [get]
func (h *attendanceHandler) getMonthlyCalendar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	personType, ok := personTypeParam(c, logger)
	if !ok {
		return
	}
	personID := c.Param("personID")

	var q dto.MonthlyCalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	month := h.today()
	if q.Month != "" {
		parsed, err := time.Parse("2006-01", q.Month)
		if err != nil {
			respondBindError(c, logger, err)
			return
		}
		month = parsed
	}

	calendar, err := h.attendanceService.MonthlyCalendar(c.Request.Context(), personType, personID, month)
	if err != nil {
		respondError(c, logger.With(slog.String("person_id", personID)), err, "build monthly calendar")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyCalendarResponse(calendar))
}

// recordPunch godoc
// @Summary Record an attendance punch
// @Description Creates or replaces the punch of one person for one date
// @Tags attendance
// @Accept json
// @Produce json
// @Param personType path string true "student or teacher"
// @Param request body dto.RecordPunchRequest true "Punch"
// @Success 200 {object} dto.AttendanceRowResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown person"
// @Failure 500 {object} map[string]string "Failed to record punch"
// @Security BearerAuth
// @Router /attendance/{personType}/punches [post]
func (h *attendanceHandler) recordPunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	personType, ok := personTypeParam(c, logger)
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.RecordPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	punch, err := req.ToPunch(personType)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	row, err := h.attendanceService.RecordPunch(c.Request.Context(), punch, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("person_id", req.PersonID)), err, "record punch")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceRowResponse(*row))
}

// markAll godoc
// @Summary Mark many people at once
// @Description Applies one manual status to every listed person. Nothing is saved if any ID is unknown or any write fails.
// @Tags attendance
// @Accept json
// @Produce json
// @Param personType path string true "student or teacher"
// @Param request body dto.MarkAllRequest true "People, date and status"
// @Success 200 {object} dto.MarkAllResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown person"
// @Failure 409 {object} map[string]string "Write aborted"
// @Failure 500 {object} map[string]string "Failed to mark attendance"
// @Security BearerAuth
// @Router /attendance/{personType}/mark-all [post]
func (h *attendanceHandler) markAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	personType, ok := personTypeParam(c, logger)
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.MarkAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	date, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	status := domain.AttendanceStatus(req.Status)
	updated, err := h.attendanceService.MarkAll(c.Request.Context(), personType, req.PersonIDs, date, status, userID)
	if err != nil {
		respondError(c, logger, err, "mark attendance")
		return
	}

	logger.Info("Marked attendance", slog.Int("count", updated), slog.String("status", req.Status))
	c.JSON(http.StatusOK, dto.MarkAllResponse{
		PersonType: string(personType),
		Date:       req.Date,
		Status:     req.Status,
		Updated:    updated,
	})
}
