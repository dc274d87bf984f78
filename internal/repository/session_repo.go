package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tenant-auth/internal/domain"
)

// SessionRepository define el contrato de persistencia para sesiones.
type SessionRepository interface {
	// Upsert crea la sesion o reemplaza la existente para el mismo par
	// (user_id, customer_id). Gana el ultimo login.
	Upsert(ctx context.Context, session domain.Session) error
	GetByToken(ctx context.Context, token string) (domain.Session, error)
	GetByUserAndCustomer(ctx context.Context, userID, customerID string) (domain.Session, error)
	DeleteByUserAndCustomer(ctx context.Context, userID, customerID string) error
}

// PgSessionRepository implementa SessionRepository usando pgxpool.
type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Upsert(ctx context.Context, session domain.Session) error {
	const query = `
		INSERT INTO sessions (id, token, user_id, customer_id, credential, protocol, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, customer_id) DO UPDATE
		SET id = EXCLUDED.id,
		    token = EXCLUDED.token,
		    credential = EXCLUDED.credential,
		    protocol = EXCLUDED.protocol,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Token,
		session.UserID,
		session.CustomerID,
		session.Credential,
		session.Protocol,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByToken(ctx context.Context, token string) (domain.Session, error) {
	const query = `
		SELECT id, token, user_id, customer_id, credential, protocol, expires_at, created_at
		FROM sessions
		WHERE token = $1
	`
	return r.getOne(ctx, query, token)
}

func (r *PgSessionRepository) GetByUserAndCustomer(ctx context.Context, userID, customerID string) (domain.Session, error) {
	const query = `
		SELECT id, token, user_id, customer_id, credential, protocol, expires_at, created_at
		FROM sessions
		WHERE user_id = $1 AND customer_id = $2
	`
	return r.getOne(ctx, query, userID, customerID)
}

func (r *PgSessionRepository) getOne(ctx context.Context, query string, args ...any) (domain.Session, error) {
	var s domain.Session
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.Token,
		&s.UserID,
		&s.CustomerID,
		&s.Credential,
		&s.Protocol,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *PgSessionRepository) DeleteByUserAndCustomer(ctx context.Context, userID, customerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1 AND customer_id = $2`, userID, customerID)
	return err
}
