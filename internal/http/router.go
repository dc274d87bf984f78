package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	passwordH *PasswordHandler,
	tokenH *TokenHandler,
	sessions *service.SessionService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.POST("/login", authH.Login)
	r.POST("/login/local", authH.LoginLocal)
	r.POST("/login/enterprise", authH.LoginEnterprise)

	password := r.Group("/password")
	password.POST("/recover", passwordH.Recover)
	password.GET("/recoververify", passwordH.RecoverVerify)
	password.PUT("/reset", passwordH.Reset)
	password.POST("/change", passwordH.Change)

	tokens := r.Group("/token",
		SessionMiddleware(sessions),
		RequireCredential(domain.CredentialRoot, domain.CredentialOwner, domain.CredentialAdmin),
	)
	tokens.GET("", tokenH.List)
	tokens.POST("", tokenH.Create)
	tokens.DELETE("/:id", tokenH.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
