package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/repository"
	"tenant-auth/internal/service"
)

// TokenHandler mantiene dependencias para los endpoints de tokens de
// integracion.
type TokenHandler struct {
	logger       *zap.Logger
	integrations *service.IntegrationService
	customers    repository.CustomerRepository
}

func NewTokenHandler(logger *zap.Logger, integrations *service.IntegrationService, customers repository.CustomerRepository) *TokenHandler {
	return &TokenHandler{
		logger:       logger,
		integrations: integrations,
		customers:    customers,
	}
}

// List maneja GET /token.
func (h *TokenHandler) List(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	customer, ok := h.resolveCustomer(c, session)
	if !ok {
		return
	}

	tokens, err := h.integrations.List(c.Request.Context(), customer.ID)
	if err != nil {
		h.logger.Error("list integration tokens failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Create maneja POST /token.
func (h *TokenHandler) Create(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	customer, ok := h.resolveCustomer(c, session)
	if !ok {
		return
	}

	token, err := h.integrations.Create(c.Request.Context(), customer, req.Username)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})
			return
		}
		h.logger.Error("create integration token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, token)
}

// Delete maneja DELETE /token/:id.
func (h *TokenHandler) Delete(c *gin.Context) {
	err := h.integrations.Revoke(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Member Not Found"})
			return
		}
		h.logger.Error("revoke integration token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// resolveCustomer carga el customer de la sesion; si no existe el acceso
// a la organizacion se rechaza.
func (h *TokenHandler) resolveCustomer(c *gin.Context, session domain.Session) (domain.Customer, bool) {
	customer, err := h.customers.GetByID(c.Request.Context(), session.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Forbidden",
				"code":    "OrganizationAccessError",
			})
			return domain.Customer{}, false
		}
		h.logger.Error("customer lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return domain.Customer{}, false
	}
	return customer, true
}
