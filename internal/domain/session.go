package domain

import "time"

// Session es un bearer token emitido para un par (user, customer).
// ExpiresAt nil marca una sesion que no expira (tokens de integracion).
// Un login nuevo para el mismo par reemplaza la sesion anterior.
type Session struct {
	ID         string     `json:"id"`
	Token      string     `json:"token"`
	UserID     string     `json:"user_id"`
	CustomerID string     `json:"customer_id"`
	Credential Credential `json:"credential"`
	Protocol   string     `json:"protocol,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Expired reporta si la sesion ya vencio. Una sesion sin expiracion
// nunca vence.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return now.After(*s.ExpiresAt)
}
