package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tenant-auth/internal/directory"
	"tenant-auth/internal/domain"
	"tenant-auth/internal/repository"
)

var ErrDirectoryAuth = errors.New("directory auth error")

// AuthService resuelve credenciales a una identidad verificada. Elige la
// estrategia (local o directorio) segun configuracion; no mira memberships.
type AuthService struct {
	logger    *zap.Logger
	users     repository.UserRepository
	passports repository.PassportRepository
	hasher    *PasswordHasher
	directory directory.Directory
	ldapAuth  bool
}

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	passports repository.PassportRepository,
	hasher *PasswordHasher,
	dir directory.Directory,
	ldapAuth bool,
) *AuthService {
	return &AuthService{
		logger:    logger,
		users:     users,
		passports: passports,
		hasher:    hasher,
		directory: dir,
		ldapAuth:  ldapAuth,
	}
}

// Login despacha a la estrategia configurada.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, domain.Passport, error) {
	if s.ldapAuth {
		return s.LoginEnterprise(ctx, username, password)
	}
	return s.LoginLocal(ctx, username, password)
}

// LoginLocal verifica username/password contra el passport local.
func (s *AuthService) LoginLocal(ctx context.Context, username, password string) (domain.User, domain.Passport, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, domain.Passport{}, ErrInvalidCredentials
	}

	user, err := s.lookupUser(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.Passport{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.Passport{}, err
	}

	passport, err := s.passports.GetByUserAndProtocol(ctx, user.ID, domain.ProtocolLocal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.Passport{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.Passport{}, err
	}

	if err := s.hasher.Compare(password, passport.Password); err != nil {
		return domain.User{}, domain.Passport{}, err
	}
	return user, passport, nil
}

// LoginEnterprise delega la verificacion en el directorio y resuelve el
// usuario y passport ldap ya aprovisionados en el store.
func (s *AuthService) LoginEnterprise(ctx context.Context, username, password string) (domain.User, domain.Passport, error) {
	if s.directory == nil {
		return domain.User{}, domain.Passport{}, ErrDirectoryAuth
	}

	identity, err := s.directory.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn("directory auth failed", zap.String("username", username), zap.Error(err))
		return domain.User{}, domain.Passport{}, ErrDirectoryAuth
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(identity.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.Passport{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.Passport{}, err
	}

	passport, err := s.passports.GetByUserAndProtocol(ctx, user.ID, domain.ProtocolLDAP)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.Passport{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.Passport{}, err
	}
	return user, passport, nil
}

func (s *AuthService) lookupUser(ctx context.Context, username string) (domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	// El form de login acepta username o email.
	return s.users.GetByEmail(ctx, strings.ToLower(username))
}
