package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type providentFundHandler struct {
	pfService portssvc.ProvidentFundService
}

// RegisterProvidentFundRoutes registers the teacher provident-fund routes
func RegisterProvidentFundRoutes(rg *gin.RouterGroup, pfService portssvc.ProvidentFundService) {
	h := &providentFundHandler{pfService: pfService}

	pfGroup := rg.Group("/provident-fund/:teacherID")
	{
		pfGroup.GET("", h.getLedger)
		pfGroup.GET("/balance", h.getBalance)
		pfGroup.POST("/opening", h.recordOpening)
		pfGroup.POST("/contributions", h.recordContribution)
		pfGroup.POST("/withdrawals", h.recordWithdrawal)
	}
}

// getLedger godoc
// @Summary Provident-fund ledger
// @Description Every PF entry of a teacher with running balances
// @Tags provident-fund
// @Produce json
// @Param teacherID path string true "Teacher ID"
// @Success 200 {object} dto.PFLedgerResponse
// @Failure 404 {object} map[string]string "Unknown teacher"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /provident-fund/{teacherID} [get]
func (h *providentFundHandler) getLedger(c *gin.Context) {
	teacherID := c.Param("teacherID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("teacher_id", teacherID))

	ledger, err := h.pfService.Ledger(c.Request.Context(), teacherID)
	if err != nil {
		respondError(c, logger, err, "load provident-fund ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToPFLedgerResponse(ledger))
}

// getBalance godoc
// @Summary Provident-fund balance
// @Tags provident-fund
// @Produce json
// @Param teacherID path string true "Teacher ID"
// @Success 200 {object} dto.PFBalanceResponse
// @Failure 404 {object} map[string]string "Unknown teacher"
// @Security BearerAuth
// @Router /provident-fund/{teacherID}/balance [get]
func (h *providentFundHandler) getBalance(c *gin.Context) {
	teacherID := c.Param("teacherID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("teacher_id", teacherID))

	balance, err := h.pfService.Balance(c.Request.Context(), teacherID)
	if err != nil {
		respondError(c, logger, err, "compute provident-fund balance")
		return
	}
	c.JSON(http.StatusOK, dto.PFBalanceResponse{TeacherID: teacherID, Balance: balance})
}

// recordOpening godoc
// @Summary Record the opening PF balance
// @Description A teacher has at most one opening entry
// @Tags provident-fund
// @Accept json
// @Produce json
// @Param teacherID path string true "Teacher ID"
// @Param request body dto.PFContributionRequest true "Opening amounts"
// @Success 201 {object} dto.PFTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown teacher"
// @Failure 409 {object} map[string]string "Opening already recorded"
// @Security BearerAuth
// @Router /provident-fund/{teacherID}/opening [post]
func (h *providentFundHandler) recordOpening(c *gin.Context) {
	h.contribution(c, "record provident-fund opening", h.pfService.RecordOpening)
}

// recordContribution godoc
// @Summary Record a PF contribution
// @Tags provident-fund
// @Accept json
// @Produce json
// @Param teacherID path string true "Teacher ID"
// @Param request body dto.PFContributionRequest true "Contribution amounts"
// @Success 201 {object} dto.PFTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown teacher"
// @Security BearerAuth
// @Router /provident-fund/{teacherID}/contributions [post]
func (h *providentFundHandler) recordContribution(c *gin.Context) {
	h.contribution(c, "record provident-fund contribution", h.pfService.RecordContribution)
}

func (h *providentFundHandler) contribution(c *gin.Context, action string,
	record func(ctx context.Context, teacherID string, req dto.PFContributionRequest, userID string) (*domain.ProvidentFundTransaction, error)) {
	teacherID := c.Param("teacherID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("teacher_id", teacherID))
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.PFContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	txn, err := record(c.Request.Context(), teacherID, req, userID)
	if err != nil {
		respondError(c, logger, err, action)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPFTransactionResponse(*txn))
}

// recordWithdrawal godoc
// @Summary Record a PF withdrawal
// @Description The amount must be positive and may not exceed the current balance
// @Tags provident-fund
// @Accept json
// @Produce json
// @Param teacherID path string true "Teacher ID"
// @Param request body dto.PFWithdrawalRequest true "Withdrawal"
// @Success 201 {object} dto.PFTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient balance"
// @Failure 404 {object} map[string]string "Unknown teacher"
// @Security BearerAuth
// @Router /provident-fund/{teacherID}/withdrawals [post]
func (h *providentFundHandler) recordWithdrawal(c *gin.Context) {
	teacherID := c.Param("teacherID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("teacher_id", teacherID))
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.PFWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	txn, err := h.pfService.RecordWithdrawal(c.Request.Context(), teacherID, req, userID)
	if err != nil {
		respondError(c, logger, err, "record provident-fund withdrawal")
		return
	}
	logger.Info("Recorded provident-fund withdrawal", slog.String("amount", txn.TotalAmount.StringFixed(2)))
	c.JSON(http.StatusCreated, dto.ToPFTransactionResponse(*txn))
}
