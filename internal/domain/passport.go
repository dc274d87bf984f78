package domain

import "time"

// Protocolos de autenticacion soportados por un passport.
const (
	ProtocolLocal = "local"
	ProtocolLDAP  = "ldap"
)

// Proveedores de passport.
const (
	ProviderPlatform = "platform"
)

// Passport es la credencial de autenticacion de un usuario para un
// protocolo. Invariante: a lo sumo un passport por (user, protocol).
// Password guarda solo el hash, nunca el secreto en claro.
type Passport struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Protocol     string    `json:"protocol"`
	Provider     string    `json:"provider"`
	Password     string    `json:"-"`
	Identifier   string    `json:"identifier,omitempty"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
