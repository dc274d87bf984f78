package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/service"
)

type testServer struct {
	router    *gin.Engine
	users     *mockUserRepo
	passports *mockPassportRepo
	members   *mockMemberRepo
	sessions  *mockSessionRepo
	customers *mockCustomerRepo
	sender    *mockEmailSender
	tokens    *service.TokenService
	hasher    *service.PasswordHasher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		users:     newMockUserRepo(),
		passports: newMockPassportRepo(),
		members:   newMockMemberRepo(),
		sessions:  newMockSessionRepo(),
		customers: newMockCustomerRepo(),
		sender:    &mockEmailSender{},
		tokens:    service.NewTokenService("test-secret"),
		hasher:    service.NewPasswordHasher(bcrypt.MinCost),
	}

	logger := zap.NewNop()
	authSvc := service.NewAuthService(logger, s.users, s.passports, s.hasher, nil, false)
	sessionSvc := service.NewSessionService(logger, s.members, s.sessions, s.tokens, nil, 12*time.Hour)
	passwordSvc := service.NewPasswordService(logger, s.users, s.passports, s.tokens, s.hasher, s.sender, nil, false, false)
	integrationSvc := service.NewIntegrationService(logger, s.users, s.passports, s.members, s.sessions, sessionSvc, s.hasher, "integration.local")

	authH := NewAuthHandler(logger, authSvc, sessionSvc)
	passwordH := NewPasswordHandler(logger, passwordSvc)
	tokenH := NewTokenHandler(logger, integrationSvc, s.customers)

	s.router = NewRouter(logger, authH, passwordH, tokenH, sessionSvc)
	return s
}

// seedUser crea un usuario habilitado con passport local.
func (s *testServer) seedUser(t *testing.T, id, username, email, password string) domain.User {
	t.Helper()
	ctx := context.Background()
	user := domain.User{ID: id, Username: username, Email: email, Enabled: true}
	if err := s.users.Create(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		t.Fatalf("seed hash: %v", err)
	}
	err = s.passports.Create(ctx, domain.Passport{
		ID:       id + "-passport",
		UserID:   id,
		Protocol: domain.ProtocolLocal,
		Provider: domain.ProviderPlatform,
		Password: hash,
	})
	if err != nil {
		t.Fatalf("seed passport: %v", err)
	}
	return user
}

// seedMember agrega una membership y registra el customer si hace falta.
func (s *testServer) seedMember(t *testing.T, userID, customerID, customerName string, credential domain.Credential) domain.Member {
	t.Helper()
	ctx := context.Background()
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		err = s.customers.Create(ctx, domain.Customer{ID: customerID, Name: customerName})
		if err != nil {
			t.Fatalf("seed customer: %v", err)
		}
	}
	member := domain.Member{
		ID:           userID + "-" + customerID,
		UserID:       userID,
		CustomerID:   customerID,
		CustomerName: customerName,
		Credential:   credential,
		Enabled:      true,
	}
	if err := s.members.Create(ctx, member); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return member
}

// seedSession inserta una sesion viva y devuelve su bearer token.
func (s *testServer) seedSession(t *testing.T, userID, customerID string, credential domain.Credential) string {
	t.Helper()
	token, err := s.tokens.IssueSession(userID, customerID, credential, time.Hour)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	err = s.sessions.Upsert(context.Background(), domain.Session{
		ID:         userID + "-" + customerID + "-session",
		Token:      token,
		UserID:     userID,
		CustomerID: customerID,
		Credential: credential,
		Protocol:   domain.ProtocolLocal,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return token
}

func performRequest(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
