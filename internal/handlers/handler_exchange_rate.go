package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.PUT("", h.upsertExchangeRate)
		rates.GET("/:from/:to", h.getExchangeRate)
	}
}

// upsertExchangeRate godoc
// @Summary Set an exchange rate
// @Description Creates or replaces the conversion rate for a directed currency pair
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to store exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [put]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.UpsertExchangeRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the stored rate for a directed currency pair
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "From currency ID"
// @Param   to path string true "To currency ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromID := c.Param("from")
	toID := c.Param("to")

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), fromID, toID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
