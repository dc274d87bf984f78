package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de login.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	sessions *service.SessionService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		sessions: sessions,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login maneja POST /login: despacha a la estrategia configurada.
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, h.authServ.Login)
}

// LoginLocal maneja POST /login/local: fuerza la estrategia local.
func (h *AuthHandler) LoginLocal(c *gin.Context) {
	h.login(c, h.authServ.LoginLocal)
}

// LoginEnterprise maneja POST /login/enterprise.
func (h *AuthHandler) LoginEnterprise(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}

type loginFunc func(ctx context.Context, username, password string) (domain.User, domain.Passport, error)

func (h *AuthHandler) login(c *gin.Context, authenticate loginFunc) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, passport, err := authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrDirectoryAuth) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	customerName := c.Query("customer")
	session, err := h.sessions.MembersLogin(c.Request.Context(), user, passport, customerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAMember):
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Forbidden",
				"reason":  "you are not a member",
			})
		case errors.Is(err, service.ErrMultipleCustomers):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "multiple organizations, specify one",
			})
		default:
			h.logger.Error("session create failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": session.Token,
		"credential":   session.Credential,
	})
}
