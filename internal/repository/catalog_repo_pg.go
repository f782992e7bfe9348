package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petfolk/petcare/internal/domain"
)

type CatalogRepository interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	ListOffersByService(ctx context.Context, serviceID string) ([]domain.SitterOffer, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT s_no, s_name, default_price, COALESCE(description, '') FROM service ORDER BY s_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.BasePrice, &s.Description); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *PGCatalogRepository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `SELECT s_no, s_name, default_price, COALESCE(description, '') FROM service WHERE s_no = $1`, id)
	var s domain.Service
	if err := row.Scan(&s.ID, &s.Name, &s.BasePrice, &s.Description); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGCatalogRepository) ListOffersByService(ctx context.Context, serviceID string) ([]domain.SitterOffer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT si.s_id, si.e_name, COALESCE(si.specialty, ''), COALESCE(si.seniority, ''), COALESCE(si.review, 0), o.sitter_price, o.s_no
		FROM offers o
		INNER JOIN sitter si ON si.s_id = o.s_id
		WHERE o.s_no = $1
		ORDER BY si.s_id`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]domain.SitterOffer, 0)
	for rows.Next() {
		var o domain.SitterOffer
		if err := rows.Scan(&o.SitterID, &o.Name, &o.Specialty, &o.Seniority, &o.Rating, &o.Price, &o.ServiceID); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
