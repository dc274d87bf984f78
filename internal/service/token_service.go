package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tenant-auth/internal/domain"
)

// TokenService firma y verifica claims con el secreto del proceso. Lo usan
// las sesiones y los flujos de password (recover, activacion, reset).
type TokenService struct {
	secret []byte
	issuer string
}

// TokenClaims es el payload firmado. Para tokens de password solo viaja
// Email; para tokens de sesion viajan user, customer y credential.
type TokenClaims struct {
	Email      string            `json:"email,omitempty"`
	UserID     string            `json:"uid,omitempty"`
	CustomerID string            `json:"customer_id,omitempty"`
	Credential domain.Credential `json:"credential,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: "tenant-auth",
	}
}

// IssueEmail emite un claim de propiedad de email. Con ttl == 0 el token
// no expira (tokens de invitacion).
func (s *TokenService) IssueEmail(email string, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		Email: email,
	}
	return s.sign(claims, ttl)
}

// IssueSession emite el token de una sesion. Con ttl == 0 la sesion no
// expira (tokens de integracion).
func (s *TokenService) IssueSession(userID, customerID string, credential domain.Credential, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID:     userID,
		CustomerID: customerID,
		Credential: credential,
	}
	return s.sign(claims, ttl)
}

// Verify chequea firma y, si el token embebia expiracion, que no haya
// vencido. Distingue ErrTokenExpired de ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (TokenClaims, error) {
	if len(s.secret) == 0 {
		return TokenClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return TokenClaims{}, ErrTokenInvalid
	}

	var claims TokenClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenInvalid
	}
	if claims.Issuer != s.issuer {
		return TokenClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) sign(claims TokenClaims, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Issuer:   s.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
