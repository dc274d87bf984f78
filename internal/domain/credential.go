package domain

// Credential es el nivel de acceso de un miembro dentro de un customer.
type Credential string

const (
	CredentialRoot        Credential = "root"
	CredentialOwner       Credential = "owner"
	CredentialAdmin       Credential = "admin"
	CredentialIntegration Credential = "integration"
	CredentialUser        Credential = "user"
	CredentialViewer      Credential = "viewer"
)

// IsAuthorized verifica pertenencia exacta contra la lista de credenciales
// permitidas. No hay jerarquia: cada endpoint declara su lista completa.
func IsAuthorized(actual Credential, allowed []Credential) bool {
	for _, c := range allowed {
		if c == actual {
			return true
		}
	}
	return false
}

// ValidCredential reporta si el valor pertenece al set cerrado de niveles.
func ValidCredential(c Credential) bool {
	switch c {
	case CredentialRoot, CredentialOwner, CredentialAdmin,
		CredentialIntegration, CredentialUser, CredentialViewer:
		return true
	}
	return false
}
