package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/core/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/middleware"
)

// transferenceHandler handles HTTP requests related to transferences.
type transferenceHandler struct {
	transferenceService portssvc.TransferenceSvcFacade
}

// newTransferenceHandler creates a new transferenceHandler.
func newTransferenceHandler(ts portssvc.TransferenceSvcFacade) *transferenceHandler {
	return &transferenceHandler{transferenceService: ts}
}

// registerTransferenceRoutes registers routes related to transferences.
func registerTransferenceRoutes(rg *gin.RouterGroup, transferenceService portssvc.TransferenceSvcFacade) {
	h := newTransferenceHandler(transferenceService)

	transferences := rg.Group("/transferences")
	{
		transferences.POST("", h.createTransference)
		transferences.DELETE("/:id", h.cancelTransference)
	}
}

// createTransference godoc
// @Summary Transfer funds between accounts
// @Description Validates, converts and settles a funds transfer atomically
// @Tags transferences
// @Accept  json
// @Produce  json
// @Param   transference body dto.CreateTransferenceRequest true "Transfer details"
// @Success 201 {object} dto.TransferenceResponse
// @Failure 400 {object} map[string]string "Invalid transfer"
// @Failure 404 {object} map[string]string "Currency or account not found"
// @Failure 422 {object} map[string]string "Insufficient funds or limit exceeded"
// @Failure 500 {object} map[string]string "Failed to settle transference"
// @Security BearerAuth
// @Router /transferences [post]
func (h *transferenceHandler) createTransference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransference", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	transference, err := h.transferenceService.CreateTransference(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfTransferNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer funds to the same account"})
		case errors.Is(err, services.ErrCurrencyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, services.ErrTransferLimitExceeded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Transfer quantity exceeds the allowed limit"})
		case errors.Is(err, services.ErrRateUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No exchange rate available for the currency pair"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient funds in the giving account"})
		default:
			logger.Error("Failed to create transference", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle transference"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferenceResponse(transference))
}

// cancelTransference godoc
// @Summary Cancel a transference
// @Description Reverses a settled transference within the cancellation window
// @Tags transferences
// @Produce  json
// @Param   id path string true "Transference ID"
// @Success 200 {object} dto.TransferenceResponse
// @Failure 404 {object} map[string]string "Transference not found"
// @Failure 409 {object} map[string]string "Cancellation window expired"
// @Failure 500 {object} map[string]string "Failed to cancel transference"
// @Security BearerAuth
// @Router /transferences/{id} [delete]
func (h *transferenceHandler) cancelTransference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferenceID := c.Param("id")

	transference, err := h.transferenceService.CancelTransference(c.Request.Context(), transferenceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransferenceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transference not found"})
		case errors.Is(err, services.ErrCancellationExpired):
			c.JSON(http.StatusConflict, gin.H{"error": "Transference can no longer be cancelled"})
		default:
			logger.Error("Failed to cancel transference", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel transference"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferenceResponse(transference))
}
