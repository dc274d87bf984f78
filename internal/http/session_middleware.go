package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/service"
)

const sessionContextKey = "auth_session"

// SessionMiddleware resuelve el bearer token a una sesion viva y la deja
// en el contexto del request.
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sessions not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		session, err := sessions.FindByToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// GetSession obtiene la sesion del contexto del request.
func GetSession(c *gin.Context) (domain.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return domain.Session{}, false
	}
	session, ok := val.(domain.Session)
	return session, ok
}

// RequireCredential corta con 403 si la credencial de la sesion no esta en
// la lista permitida. Chequeo de pertenencia exacta, sin jerarquia.
func RequireCredential(allowed ...domain.Credential) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !domain.IsAuthorized(session.Credential, allowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
