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

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService      portssvc.AccountSvcFacade
	transferenceService portssvc.TransferenceSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransferenceSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, transferenceService: ts}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transferenceService portssvc.TransferenceSvcFacade) {
	h := newAccountHandler(accountService, transferenceService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/rankings/balance", h.rankAccountsByBalance)
		accounts.GET("/rankings/usage", h.rankAccountsByUsage)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id/currency", h.updateAccountCurrency)
		accounts.DELETE("/:id", h.deactivateAccount)
		accounts.GET("/:id/transferences", h.listAccountTransferences)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens an account denominated in an active currency
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves an active account with its currency
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.accountService.LoadAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of active accounts with the total count
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   page query int false "Page number" default(1)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, page := parsePagination(c)

	total, accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, page)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{
		Total:    total,
		Accounts: dto.ToAccountResponses(accounts),
	})
}

// rankAccountsByBalance godoc
// @Summary Rank accounts by balance
// @Description Retrieves active accounts ordered by balance; order=asc for poorest first
// @Tags accounts
// @Produce  json
// @Param   order query string false "asc or desc" default(desc)
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to rank accounts"
// @Security BearerAuth
// @Router /accounts/rankings/balance [get]
func (h *accountHandler) rankAccountsByBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ascending := c.DefaultQuery("order", "desc") == "asc"

	accounts, err := h.accountService.ListAccountsByBalance(c.Request.Context(), ascending)
	if err != nil {
		logger.Error("Failed to rank accounts by balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// rankAccountsByUsage godoc
// @Summary Rank accounts by usage
// @Description Retrieves active accounts ordered by how many transferences touch them
// @Tags accounts
// @Produce  json
// @Param   order query string false "asc or desc" default(desc)
// @Success 200 {array} dto.AccountUsageResponse
// @Failure 500 {object} map[string]string "Failed to rank accounts"
// @Security BearerAuth
// @Router /accounts/rankings/usage [get]
func (h *accountHandler) rankAccountsByUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ascending := c.DefaultQuery("order", "desc") == "asc"

	usages, err := h.accountService.ListAccountsByUsage(c.Request.Context(), ascending)
	if err != nil {
		logger.Error("Failed to rank accounts by usage", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountUsageResponses(usages))
}

// updateAccountCurrency godoc
// @Summary Change an account's currency
// @Description Redenominates an account into another active currency
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   body body dto.UpdateAccountCurrencyRequest true "New currency"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id}/currency [put]
func (h *accountHandler) updateAccountCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateAccountCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccountCurrency(c.Request.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update account currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Retires an account; its transference history stays queryable
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listAccountTransferences godoc
// @Summary List transferences for an account
// @Description Retrieves transferences debited from the account, newest first
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   page query int false "Page number" default(1)
// @Param   currency query string false "Filter by quote currency ID"
// @Success 200 {object} dto.ListTransferencesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transferences"
// @Security BearerAuth
// @Router /accounts/{id}/transferences [get]
func (h *accountHandler) listAccountTransferences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListTransferencesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	total, transferences, err := h.transferenceService.ListTransferencesByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list transferences", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transferences"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListTransferencesResponse{
		Total:         total,
		Transferences: dto.ToTransferenceResponses(transferences),
	})
}
