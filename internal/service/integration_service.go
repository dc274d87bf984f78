package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/repository"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidUsername = errors.New("invalid username")
)

var usernameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._]`)

// IntegrationToken es la vista que exponen los endpoints de /token.
type IntegrationToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// IntegrationService aprovisiona identidades sinteticas (bot) con su
// passport, membership y sesion sin expiracion, para tokens maquina a
// maquina.
type IntegrationService struct {
	logger    *zap.Logger
	users     repository.UserRepository
	passports repository.PassportRepository
	members   repository.MemberRepository
	sessions  repository.SessionRepository
	sessionsv *SessionService
	hasher    *PasswordHasher
	domain    string
}

func NewIntegrationService(
	logger *zap.Logger,
	users repository.UserRepository,
	passports repository.PassportRepository,
	members repository.MemberRepository,
	sessions repository.SessionRepository,
	sessionService *SessionService,
	hasher *PasswordHasher,
	emailDomain string,
) *IntegrationService {
	if emailDomain == "" {
		emailDomain = "integration.local"
	}
	return &IntegrationService{
		logger:    logger,
		users:     users,
		passports: passports,
		members:   members,
		sessions:  sessions,
		sessionsv: sessionService,
		hasher:    hasher,
		domain:    emailDomain,
	}
}

// Create aprovisiona user + passport + member + sesion. El store no da
// transacciones multi documento, asi que cada paso compensa los anteriores
// si falla.
func (s *IntegrationService) Create(ctx context.Context, customer domain.Customer, username string) (IntegrationToken, error) {
	username = usernameSanitizer.ReplaceAllString(username, "_")
	if username == "" {
		return IntegrationToken{}, ErrInvalidUsername
	}

	clientID, err := randomToken()
	if err != nil {
		return IntegrationToken{}, err
	}
	clientSecret, err := randomToken()
	if err != nil {
		return IntegrationToken{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:                  uuid.NewString(),
		Username:            username,
		Email:               fmt.Sprintf("%s-%s-integration@%s", customer.Name, username, s.domain),
		Name:                username,
		Enabled:             true,
		Bot:                 true,
		Notifications:       domain.DefaultNotifications(),
		OnboardingCompleted: true,
		CreatedAt:           now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return IntegrationToken{}, err
	}

	secretHash, err := s.hasher.Hash(clientSecret)
	if err != nil {
		s.compensate(ctx, user.ID, false, domain.Member{})
		return IntegrationToken{}, err
	}

	passport := domain.Passport{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Protocol:     domain.ProtocolLocal,
		Provider:     domain.ProviderPlatform,
		Password:     secretHash,
		Identifier:   clientID,
		RefreshToken: clientSecret,
		CreatedAt:    now,
	}
	if err := s.passports.Create(ctx, passport); err != nil {
		s.compensate(ctx, user.ID, false, domain.Member{})
		return IntegrationToken{}, err
	}

	member := domain.Member{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Credential:   domain.CredentialIntegration,
		Enabled:      true,
		CreatedAt:    now,
	}
	if err := s.members.Create(ctx, member); err != nil {
		s.compensate(ctx, user.ID, true, domain.Member{})
		return IntegrationToken{}, err
	}

	session, err := s.sessionsv.CreateIntegrationSession(ctx, member)
	if err != nil {
		s.compensate(ctx, user.ID, true, member)
		return IntegrationToken{}, err
	}

	return IntegrationToken{
		ID:       member.ID,
		Username: user.Username,
		Token:    session.Token,
	}, nil
}

// compensate deshace creaciones parciales. Los errores se loguean y nada
// mas: el caller ya esta devolviendo la falla original.
func (s *IntegrationService) compensate(ctx context.Context, userID string, passportCreated bool, member domain.Member) {
	if member.ID != "" {
		if err := s.members.Delete(ctx, member.ID); err != nil {
			s.logger.Error("compensation: member delete failed", zap.String("member_id", member.ID), zap.Error(err))
		}
	}
	if passportCreated {
		if err := s.passports.DeleteByUser(ctx, userID); err != nil {
			s.logger.Error("compensation: passport delete failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.Error("compensation: user delete failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// List enumera los tokens de integracion vigentes del customer. Un member
// sin sesion viva se omite.
func (s *IntegrationService) List(ctx context.Context, customerID string) ([]IntegrationToken, error) {
	members, err := s.members.FindByCustomerAndCredential(ctx, customerID, domain.CredentialIntegration)
	if err != nil {
		return nil, err
	}

	tokens := make([]IntegrationToken, 0, len(members))
	for _, member := range members {
		user, err := s.users.GetByID(ctx, member.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		session, err := s.sessions.GetByUserAndCustomer(ctx, member.UserID, customerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		tokens = append(tokens, IntegrationToken{
			ID:       member.ID,
			Username: user.Username,
			Token:    session.Token,
		})
	}
	return tokens, nil
}

// Revoke elimina sesion, passport, usuario bot y member, en ese orden.
// Cada paso tolera ausencia; los errores reales se acumulan y el conjunto
// es reintentable.
func (s *IntegrationService) Revoke(ctx context.Context, memberID string) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}

	var errs []error
	if err := s.sessionsv.Revoke(ctx, member); err != nil {
		errs = append(errs, err)
	}
	if err := s.passports.DeleteByUser(ctx, member.UserID); err != nil {
		errs = append(errs, err)
	}
	if err := s.users.Delete(ctx, member.UserID); err != nil {
		errs = append(errs, err)
	}
	if err := s.members.Delete(ctx, member.ID); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func randomToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
