package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tenant-auth/internal/domain"
)

// MemberRepository define el contrato de persistencia para memberships.
type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) error
	GetByID(ctx context.Context, id string) (domain.Member, error)
	// FindByUser devuelve los members del usuario, filtrados por nombre de
	// customer cuando customerName no es vacio.
	FindByUser(ctx context.Context, userID, customerName string) ([]domain.Member, error)
	FindByCustomerAndCredential(ctx context.Context, customerID string, credential domain.Credential) ([]domain.Member, error)
	Delete(ctx context.Context, id string) error
}

// PgMemberRepository implementa MemberRepository usando pgxpool.
type PgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPgMemberRepository(pool *pgxpool.Pool) *PgMemberRepository {
	return &PgMemberRepository{pool: pool}
}

func (r *PgMemberRepository) Create(ctx context.Context, member domain.Member) error {
	const query = `
		INSERT INTO members (id, user_id, customer_id, customer_name, credential, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.UserID,
		member.CustomerID,
		member.CustomerName,
		member.Credential,
		member.Enabled,
		member.CreatedAt,
	)
	return err
}

func (r *PgMemberRepository) GetByID(ctx context.Context, id string) (domain.Member, error) {
	const query = `
		SELECT id, user_id, customer_id, customer_name, credential, enabled, created_at
		FROM members
		WHERE id = $1
	`
	var m domain.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.UserID,
		&m.CustomerID,
		&m.CustomerName,
		&m.Credential,
		&m.Enabled,
		&m.CreatedAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

func (r *PgMemberRepository) FindByUser(ctx context.Context, userID, customerName string) ([]domain.Member, error) {
	query := `
		SELECT id, user_id, customer_id, customer_name, credential, enabled, created_at
		FROM members
		WHERE user_id = $1
	`
	args := []any{userID}
	if customerName != "" {
		query += ` AND customer_name = $2`
		args = append(args, customerName)
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func (r *PgMemberRepository) FindByCustomerAndCredential(ctx context.Context, customerID string, credential domain.Credential) ([]domain.Member, error) {
	const query = `
		SELECT id, user_id, customer_id, customer_name, credential, enabled, created_at
		FROM members
		WHERE customer_id = $1 AND credential = $2
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, customerID, credential)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func (r *PgMemberRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}

func scanMembers(rows pgx.Rows) ([]domain.Member, error) {
	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.CustomerID,
			&m.CustomerName,
			&m.Credential,
			&m.Enabled,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
