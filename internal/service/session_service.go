package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tenant-auth/internal/domain"
	"tenant-auth/internal/repository"
)

var (
	ErrNotAMember        = errors.New("not a member")
	ErrMultipleCustomers = errors.New("multiple customers, specify one")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")
)

// SessionService crea, busca y destruye sesiones para pares (user, customer).
type SessionService struct {
	logger   *zap.Logger
	members  repository.MemberRepository
	sessions repository.SessionRepository
	tokens   *TokenService
	cache    SessionCache
	ttl      time.Duration
}

func NewSessionService(
	logger *zap.Logger,
	members repository.MemberRepository,
	sessions repository.SessionRepository,
	tokens *TokenService,
	cache SessionCache,
	ttl time.Duration,
) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if cache == nil {
		cache = NewMemorySessionCache()
	}
	return &SessionService{
		logger:   logger,
		members:  members,
		sessions: sessions,
		tokens:   tokens,
		cache:    cache,
		ttl:      ttl,
	}
}

// MembersLogin resuelve la membership del usuario y emite la sesion.
// Sin members es Forbidden; con mas de un customer posible y sin filtro
// se exige desambiguar en vez de elegir uno al azar.
func (s *SessionService) MembersLogin(ctx context.Context, user domain.User, passport domain.Passport, customerName string) (domain.Session, error) {
	members, err := s.members.FindByUser(ctx, user.ID, customerName)
	if err != nil {
		return domain.Session{}, err
	}
	if len(members) == 0 {
		return domain.Session{}, ErrNotAMember
	}
	if len(members) > 1 && customerName == "" {
		return domain.Session{}, ErrMultipleCustomers
	}

	return s.create(ctx, members[0], passport.Protocol, s.ttl)
}

// CreateIntegrationSession emite una sesion sin expiracion para un member
// de integracion.
func (s *SessionService) CreateIntegrationSession(ctx context.Context, member domain.Member) (domain.Session, error) {
	return s.create(ctx, member, domain.ProtocolLocal, 0)
}

func (s *SessionService) create(ctx context.Context, member domain.Member, protocol string, ttl time.Duration) (domain.Session, error) {
	token, err := s.tokens.IssueSession(member.UserID, member.CustomerID, member.Credential, ttl)
	if err != nil {
		return domain.Session{}, err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:         uuid.NewString(),
		Token:      token,
		UserID:     member.UserID,
		CustomerID: member.CustomerID,
		Credential: member.Credential,
		Protocol:   protocol,
		CreatedAt:  now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		session.ExpiresAt = &expires
	}

	if err := s.sessions.Upsert(ctx, session); err != nil {
		return domain.Session{}, err
	}
	if err := s.cache.Put(session); err != nil {
		s.logger.Warn("session cache put failed", zap.Error(err))
	}
	return session, nil
}

// FindByToken es el lookup que corre el middleware en cada request
// autenticado: primero cache, despues store.
func (s *SessionService) FindByToken(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrSessionNotFound
	}

	session, hit, err := s.cache.Get(token)
	if err != nil {
		s.logger.Warn("session cache get failed", zap.Error(err))
	}
	if !hit {
		session, err = s.sessions.GetByToken(ctx, token)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Session{}, ErrSessionNotFound
			}
			return domain.Session{}, err
		}
		if err := s.cache.Put(session); err != nil {
			s.logger.Warn("session cache put failed", zap.Error(err))
		}
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.cache.Delete(token)
		return domain.Session{}, ErrSessionExpired
	}
	return session, nil
}

// Revoke elimina la sesion del par (user, customer) del member. Tolera
// ausencia: revocar dos veces no es error.
func (s *SessionService) Revoke(ctx context.Context, member domain.Member) error {
	session, err := s.sessions.GetByUserAndCustomer(ctx, member.UserID, member.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if err := s.cache.Delete(session.Token); err != nil {
		s.logger.Warn("session cache delete failed", zap.Error(err))
	}
	return s.sessions.DeleteByUserAndCustomer(ctx, member.UserID, member.CustomerID)
}
