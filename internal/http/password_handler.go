package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tenant-auth/internal/service"
)

// PasswordHandler mantiene dependencias para los flujos de password.
type PasswordHandler struct {
	logger  *zap.Logger
	pwdServ *service.PasswordService
}

func NewPasswordHandler(logger *zap.Logger, pwdServ *service.PasswordService) *PasswordHandler {
	return &PasswordHandler{
		logger:  logger,
		pwdServ: pwdServ,
	}
}

// Recover maneja POST /password/recover.
func (h *PasswordHandler) Recover(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing param email."})
		return
	}

	err := h.pwdServ.Recover(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLDAPOnly):
			c.JSON(http.StatusBadRequest, gin.H{"error": "ldapSet"})
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing param email."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		case errors.Is(err, service.ErrEmailSendFailure):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery unavailable"})
		default:
			h.logger.Error("password recover failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// RecoverVerify maneja GET /password/recoververify. Las fallas de token se
// colapsan en un 400 generico para no dar un oraculo de validez.
func (h *PasswordHandler) RecoverVerify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing param token."})
		return
	}

	resetToken, err := h.pwdServ.RecoverVerify(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resetToken": resetToken})
}

// Reset maneja PUT /password/reset.
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req struct {
		Token        string `json:"token" binding:"required"`
		Password     string `json:"password" binding:"required"`
		Confirmation string `json:"confirmation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.pwdServ.Reset(c.Request.Context(), req.Token, req.Password, req.Confirmation)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Passwords dont match."})
		case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		case errors.Is(err, service.ErrPassportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User passport not found."})
		default:
			h.logger.Error("password reset failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// Change maneja POST /password/change.
func (h *PasswordHandler) Change(c *gin.Context) {
	var req struct {
		ID              string `json:"id" binding:"required"`
		Password        string `json:"password" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.pwdServ.Change(c.Request.Context(), req.ID, req.Password, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "New passwords dont match."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		case errors.Is(err, service.ErrPassportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User passport not found."})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			h.logger.Error("password change failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
