package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/middleware"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-expenditure", h.getIncomeExpenditure)
		reportingGroup.GET("/receipt-payment", h.getReceiptPayment)
		reportingGroup.GET("/bank", h.getBankReport)
		reportingGroup.GET("/fee-due", h.getFeeDueReport)
		reportingGroup.POST("/closings", h.closePeriod)
	}
}

// parsePeriod defaults to the current month up to today.
func (h *reportingHandler) parsePeriod(q dto.ReportQuery) (domain.ReportPeriod, error) {
	now := h.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := domain.TruncateDate(now)

	var err error
	if q.FromDate != "" {
		if from, err = time.Parse(domain.DateLayout, q.FromDate); err != nil {
			return domain.ReportPeriod{}, fmt.Errorf("invalid fromDate: %w", err)
		}
	}
	if q.ToDate != "" {
		if to, err = time.Parse(domain.DateLayout, q.ToDate); err != nil {
			return domain.ReportPeriod{}, fmt.Errorf("invalid toDate: %w", err)
		}
	}
	var accountID *string
	if q.AccountID != "" {
		accountID = &q.AccountID
	}
	return domain.NewReportPeriod(from, to, accountID), nil
}

// bindPeriod binds the shared report query and writes a 400 on failure.
func (h *reportingHandler) bindPeriod(c *gin.Context, logger *slog.Logger) (dto.ReportQuery, domain.ReportPeriod, bool) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return q, domain.ReportPeriod{}, false
	}
	period, err := h.parsePeriod(q)
	if err != nil {
		respondBindError(c, logger, err)
		return q, domain.ReportPeriod{}, false
	}
	return q, period, true
}

// writeXLSX streams a workbook as an attachment.
func writeXLSX(c *gin.Context, logger *slog.Logger, filename string, render func(io.Writer) error) {
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := render(c.Writer); err != nil {
		logger.Error("Failed to write workbook", slog.String("file", filename), slog.String("error", err.Error()))
	}
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Fund & Liabilities against Property & Assets, cumulative to the period end
// @Tags reports
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param format query string false "json or xlsx"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "generate balance sheet")
		return
	}

	if q.Format == dto.FormatXLSX {
		writeXLSX(c, logger, export.Filename("balance-sheet", period), func(w io.Writer) error {
			return export.BalanceSheet(w, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getIncomeExpenditure godoc
// @Summary Generate income and expenditure statement
// @Description Accrual-basis statement with month and cumulative figures
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param format query string false "json or xlsx"
// @Success 200 {object} dto.IncomeExpenditureResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-expenditure [get]
func (h *reportingHandler) getIncomeExpenditure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.IncomeExpenditure(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "generate income and expenditure statement")
		return
	}

	if q.Format == dto.FormatXLSX {
		writeXLSX(c, logger, export.Filename("income-expenditure", period), func(w io.Writer) error {
			return export.IncomeExpenditure(w, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeExpenditureResponse(report))
}

// getReceiptPayment godoc
// @Summary Generate receipt and payment statement
// @Description Cash-basis statement with opening and closing balances, optionally for one account
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param accountID query string false "Restrict to one account"
// @Param format query string false "json or xlsx"
// @Success 200 {object} dto.ReceiptPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown account"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/receipt-payment [get]
func (h *reportingHandler) getReceiptPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.ReceiptPayment(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "generate receipt and payment statement")
		return
	}

	if q.Format == dto.FormatXLSX {
		writeXLSX(c, logger, export.Filename("receipt-payment", period), func(w io.Writer) error {
			return export.ReceiptPayment(w, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptPaymentResponse(report))
}

// getBankReport godoc
// @Summary Generate bank report
// @Description Movements of one bank account with a running balance
// @Tags reports
// @Produce json
// @Param accountID query string true "Bank account ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param format query string false "json or xlsx"
// @Success 200 {object} dto.BankReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown account"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/bank [get]
func (h *reportingHandler) getBankReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}
	if !period.HasAccount() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID is required"})
		return
	}

	report, err := h.reportingService.BankReport(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "generate bank report")
		return
	}

	if q.Format == dto.FormatXLSX {
		writeXLSX(c, logger, export.Filename("bank", period), func(w io.Writer) error {
			return export.BankReport(w, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToBankReportResponse(report))
}

// getFeeDueReport godoc
// @Summary Generate fee-due report
// @Description Groups a month's fee records by organization, class or student
// @Tags reports
// @Produce json
// @Param reportType query string true "organization, class or student"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Param classID query string false "Restrict to one class"
// @Param studentID query string false "Restrict to one student"
// @Param format query string false "json or xlsx"
// @Success 200 {object} dto.FeeDueResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/fee-due [get]
func (h *reportingHandler) getFeeDueReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.FeeDueQueryParams
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}

	report, err := h.reportingService.FeeDueReport(c.Request.Context(), q.ToDomain())
	if err != nil {
		respondError(c, logger, err, "generate fee-due report")
		return
	}

	if q.Format == dto.FormatXLSX {
		filename := fmt.Sprintf("fee-due_%s_%04d%02d.xlsx", q.ReportType, q.Year, q.Month)
		writeXLSX(c, logger, filename, func(w io.Writer) error {
			return export.FeeDue(w, report)
		})
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeDueResponse(report))
}

// closePeriod godoc
// @Summary Store a closing-balance checkpoint
// @Description Computes the closing balance of the month ending on periodEnd for a scope (receipt-payment or bank:<accountID>)
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.ClosePeriodRequest true "Closing scope and month end"
// @Success 201 {object} dto.PeriodClosingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown account"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /reports/closings [post]
func (h *reportingHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	periodEnd, err := time.Parse(domain.DateLayout, req.PeriodEnd)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.String("scope", req.Scope), slog.String("period_end", req.PeriodEnd))
	closing, err := h.reportingService.ClosePeriod(c.Request.Context(), req.Scope, periodEnd, userID)
	if err != nil {
		respondError(c, logger, err, "close period")
		return
	}

	logger.Info("Period closed", slog.String("closing_balance", closing.ClosingBalance.StringFixed(2)))
	c.JSON(http.StatusCreated, dto.ToPeriodClosingResponse(closing))
}
