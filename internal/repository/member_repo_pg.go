package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petfolk/petcare/internal/domain"
)

type MemberRepository interface {
	// Authenticate matches a member ID and password pair, returning
	// ErrNoRows when the pair is unknown.
	Authenticate(ctx context.Context, memberID, password string) (*domain.Member, error)
}

type PGMemberRepository struct {
	db *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &PGMemberRepository{db: db}
}

func (r *PGMemberRepository) Authenticate(ctx context.Context, memberID, password string) (*domain.Member, error) {
	row := r.db.QueryRow(ctx, `SELECT m_id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, '')
		FROM member WHERE m_id = $1 AND password = $2 LIMIT 1`, memberID, password)
	var m domain.Member
	if err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Address); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ MemberRepository = (*PGMemberRepository)(nil)
