package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tenant-auth/internal/domain"
)

// PassportRepository define el contrato de persistencia para passports.
type PassportRepository interface {
	Create(ctx context.Context, passport domain.Passport) error
	GetByUserAndProtocol(ctx context.Context, userID, protocol string) (domain.Passport, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// PgPassportRepository implementa PassportRepository usando pgxpool.
type PgPassportRepository struct {
	pool *pgxpool.Pool
}

func NewPgPassportRepository(pool *pgxpool.Pool) *PgPassportRepository {
	return &PgPassportRepository{pool: pool}
}

func (r *PgPassportRepository) Create(ctx context.Context, passport domain.Passport) error {
	const query = `
		INSERT INTO passports (id, user_id, protocol, provider, password, identifier, access_token, refresh_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		passport.ID,
		passport.UserID,
		passport.Protocol,
		passport.Provider,
		passport.Password,
		passport.Identifier,
		passport.AccessToken,
		passport.RefreshToken,
		passport.CreatedAt,
	)
	return err
}

func (r *PgPassportRepository) GetByUserAndProtocol(ctx context.Context, userID, protocol string) (domain.Passport, error) {
	const query = `
		SELECT id, user_id, protocol, provider, password, identifier, access_token, refresh_token, created_at
		FROM passports
		WHERE user_id = $1 AND protocol = $2
	`
	var p domain.Passport
	err := r.pool.QueryRow(ctx, query, userID, protocol).Scan(
		&p.ID,
		&p.UserID,
		&p.Protocol,
		&p.Provider,
		&p.Password,
		&p.Identifier,
		&p.AccessToken,
		&p.RefreshToken,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.Passport{}, err
	}
	return p, nil
}

func (r *PgPassportRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
		UPDATE passports SET password = $2
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, passwordHash)
	return err
}

func (r *PgPassportRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM passports WHERE user_id = $1`, userID)
	return err
}
