package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petfolk/petcare/internal/domain"
)

type PetRepository interface {
	// Create assigns the next sequential p identifier and inserts the pet,
	// both inside one transaction.
	Create(ctx context.Context, p *domain.Pet) error
	ListByMember(ctx context.Context, memberID string) ([]domain.Pet, error)
}

type PGPetRepository struct {
	db *pgxpool.Pool
}

func NewPetRepository(db *pgxpool.Pool) PetRepository {
	return &PGPetRepository{db: db}
}

func (r *PGPetRepository) Create(ctx context.Context, p *domain.Pet) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	id, err := nextID(ctx, tx, "pet", "p_id", "p")
	if err != nil {
		return err
	}
	p.ID = id

	if _, err := tx.Exec(ctx, `INSERT INTO pet (p_id, m_id, name, breed, birth, ligation, weight, personality, disease, notice)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.MemberID, p.Name, p.Breed, p.Birth, p.Ligation, p.Weight, p.Personality, p.Disease, p.Notice); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGPetRepository) ListByMember(ctx context.Context, memberID string) ([]domain.Pet, error) {
	rows, err := r.db.Query(ctx, `SELECT p_id, m_id, name, breed, birth, ligation, weight, personality, disease, notice
		FROM pet WHERE m_id = $1 ORDER BY p_id DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := make([]domain.Pet, 0)
	for rows.Next() {
		var p domain.Pet
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Name, &p.Breed, &p.Birth, &p.Ligation, &p.Weight, &p.Personality, &p.Disease, &p.Notice); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

var _ PetRepository = (*PGPetRepository)(nil)
