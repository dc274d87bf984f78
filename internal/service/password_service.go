package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/email"
	"tenant-auth/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPassportNotFound = errors.New("user passport not found")
	ErrLDAPOnly         = errors.New("ldapSet")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordMismatch = errors.New("passwords dont match")
	ErrRateLimited      = errors.New("rate limited")
	ErrEmailSendFailure = errors.New("email send failed")
)

const (
	recoverTokenTTL = 12 * time.Hour
	resetTokenTTL   = 5 * time.Minute
)

// PasswordService orquesta los flujos recover, verify, reset y change.
type PasswordService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	passports   repository.PassportRepository
	tokens      *TokenService
	hasher      *PasswordHasher
	sender      email.Sender
	limiter     RecoverRateLimiter
	ldapAuth    bool
	localBypass bool
}

func NewPasswordService(
	logger *zap.Logger,
	users repository.UserRepository,
	passports repository.PassportRepository,
	tokens *TokenService,
	hasher *PasswordHasher,
	sender email.Sender,
	limiter RecoverRateLimiter,
	ldapAuth bool,
	localBypass bool,
) *PasswordService {
	if limiter == nil {
		limiter = NewRecoverRateLimiter(10*time.Minute, 3)
	}
	return &PasswordService{
		logger:      logger,
		users:       users,
		passports:   passports,
		tokens:      tokens,
		hasher:      hasher,
		sender:      sender,
		limiter:     limiter,
		ldapAuth:    ldapAuth,
		localBypass: localBypass,
	}
}

// Recover dispara el mail de recuperacion o de activacion segun el estado
// del usuario. Un usuario deshabilitado recibe un token de invitacion que
// ademas queda persistido en su registro.
func (s *PasswordService) Recover(ctx context.Context, emailAddr string) error {
	if s.ldapAuth && !s.localBypass {
		return ErrLDAPOnly
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrInvalidEmail
	}
	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if s.sender == nil {
		return ErrEmailSendFailure
	}

	if user.Enabled {
		token, err := s.tokens.IssueEmail(user.Email, recoverTokenTTL)
		if err != nil {
			return err
		}
		if err := s.sender.SendPasswordRecover(ctx, user, token); err != nil {
			s.logger.Warn("recover email send failed", zap.Error(err), zap.String("email", user.Email))
			return ErrEmailSendFailure
		}
		return nil
	}

	// Usuario pendiente de activacion: el token de invitacion no expira y
	// queda en el registro hasta que complete el alta.
	invitation, err := s.tokens.IssueEmail(user.Email, 0)
	if err != nil {
		return err
	}
	if err := s.sender.SendActivation(ctx, user, invitation); err != nil {
		s.logger.Warn("activation email send failed", zap.Error(err), zap.String("email", user.Email))
		return ErrEmailSendFailure
	}
	return s.users.UpdateInvitationToken(ctx, user.ID, invitation)
}

// RecoverVerify canjea el token de recuperacion por un reset token de vida
// corta, asi el link del mail no alcanza por si solo para cambiar el password.
func (s *PasswordService) RecoverVerify(token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueEmail(claims.Email, resetTokenTTL)
}

// Reset reemplaza el password local probando propiedad del email via token.
func (s *PasswordService) Reset(ctx context.Context, token, password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	return s.replacePassword(ctx, user.ID, password)
}

// Change reemplaza el password local probando el password actual. A
// diferencia de Reset exige el secreto vigente, no solo el email.
func (s *PasswordService) Change(ctx context.Context, userID, password, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	passport, err := s.passports.GetByUserAndProtocol(ctx, user.ID, domain.ProtocolLocal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPassportNotFound
		}
		return err
	}

	if err := s.hasher.Compare(password, passport.Password); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.passports.UpdatePassword(ctx, passport.ID, hash)
}

func (s *PasswordService) replacePassword(ctx context.Context, userID, password string) error {
	passport, err := s.passports.GetByUserAndProtocol(ctx, userID, domain.ProtocolLocal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPassportNotFound
		}
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.passports.UpdatePassword(ctx, passport.ID, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
