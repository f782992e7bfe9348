// Package catalog serves the read-only service and sitter listings. The
// service list is cache-aside: Redis first, database on miss, and a failed
// cache never fails a read.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/repository"
)

// ErrValidation marks a request rejected before touching storage.
var ErrValidation = errors.New("validation failed")

// Cache is the catalog's view of the cache layer.
type Cache interface {
	GetServices(ctx context.Context) ([]domain.Service, error)
	SetServices(ctx context.Context, services []domain.Service) error
	InvalidateServices(ctx context.Context) error
}

// ServiceView is one catalog entry as shown on the wire.
type ServiceView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"desc"`
}

// SitterView is one sitter's offer for a service as shown on the wire.
// Review is rounded to half-star steps for display.
type SitterView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Seniority string  `json:"seniority"`
	Review    float64 `json:"review"`
	Price     float64 `json:"price"`
	ServiceID string  `json:"serviceId"`
}

type CatalogUseCase interface {
	Services(ctx context.Context) ([]ServiceView, error)
	SittersForService(ctx context.Context, serviceID string) ([]SitterView, error)
	Refresh(ctx context.Context) error
}

type Service struct {
	repo  repository.CatalogRepository
	cache Cache
	log   *zap.Logger
}

var _ CatalogUseCase = (*Service)(nil)

func NewService(repo repository.CatalogRepository, cache Cache, log *zap.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Services lists the catalog, preferring the cache. Cache failures are
// logged and the database answers instead.
func (s *Service) Services(ctx context.Context) ([]ServiceView, error) {
	services, err := s.services(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceView, len(services))
	for i, svc := range services {
		out[i] = ServiceView{
			ID:          svc.ID,
			Name:        svc.Name,
			Price:       svc.BasePrice,
			Description: svc.Description,
		}
	}
	return out, nil
}

func (s *Service) services(ctx context.Context) ([]domain.Service, error) {
	if s.cache != nil {
		cached, err := s.cache.GetServices(ctx)
		if err != nil {
			s.log.Warn("services cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetServices(ctx, services); err != nil {
			s.log.Warn("services cache write failed", zap.Error(err))
		}
	}
	return services, nil
}

// SittersForService lists every sitter offering the given service.
func (s *Service) SittersForService(ctx context.Context, serviceID string) ([]SitterView, error) {
	if serviceID == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrValidation)
	}

	offers, err := s.repo.ListOffersByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitters: %w", err)
	}

	out := make([]SitterView, len(offers))
	for i, o := range offers {
		out[i] = SitterView{
			ID:        o.SitterID,
			Name:      o.Name,
			Specialty: o.Specialty,
			Seniority: o.Seniority,
			Review:    domain.RoundRating(o.Rating),
			Price:     o.Price,
			ServiceID: o.ServiceID,
		}
	}
	return out, nil
}

// Refresh drops the cached catalog so the next read sees fresh rows.
func (s *Service) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateServices(ctx); err != nil {
		return fmt.Errorf("failed to invalidate services cache: %w", err)
	}
	return nil
}
