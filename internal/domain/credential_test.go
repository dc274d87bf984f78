package domain

import "testing"

func TestIsAuthorizedExactMembership(t *testing.T) {
	allowed := []Credential{CredentialRoot, CredentialOwner, CredentialAdmin}

	for _, c := range allowed {
		if !IsAuthorized(c, allowed) {
			t.Errorf("%s should be authorized", c)
		}
	}
	for _, c := range []Credential{CredentialIntegration, CredentialUser, CredentialViewer} {
		if IsAuthorized(c, allowed) {
			t.Errorf("%s should not be authorized", c)
		}
	}
}

func TestIsAuthorizedNoHierarchy(t *testing.T) {
	// root no hereda permisos: si la lista no lo nombra, queda afuera.
	if IsAuthorized(CredentialRoot, []Credential{CredentialAdmin}) {
		t.Fatal("root must not pass a list that does not name it")
	}
	if IsAuthorized(CredentialOwner, []Credential{CredentialViewer}) {
		t.Fatal("owner must not pass a viewer-only list")
	}
}

func TestIsAuthorizedEmptyList(t *testing.T) {
	if IsAuthorized(CredentialRoot, nil) {
		t.Fatal("empty list authorizes nobody")
	}
}

func TestValidCredential(t *testing.T) {
	for _, c := range []Credential{CredentialRoot, CredentialOwner, CredentialAdmin, CredentialIntegration, CredentialUser, CredentialViewer} {
		if !ValidCredential(c) {
			t.Errorf("%s should be valid", c)
		}
	}
	if ValidCredential("superadmin") {
		t.Fatal("unknown credential should be invalid")
	}
	if ValidCredential("") {
		t.Fatal("empty credential should be invalid")
	}
}
