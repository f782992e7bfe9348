// Package pet manages member pet profiles.
package pet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/repository"
)

var (
	// ErrValidation marks a request rejected before touching storage.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an identity mismatch between the authenticated
	// member and the member a request claims to act for.
	ErrForbidden = errors.New("forbidden")
)

const birthLayout = "2006-01-02"

// CreatePetInput is a pet registration as received on the wire.
type CreatePetInput struct {
	MemberID    string   `json:"mId"`
	Name        string   `json:"name"`
	Breed       string   `json:"breed"`
	Birth       string   `json:"birth"`
	Ligation    string   `json:"ligation"`
	Weight      *float64 `json:"weight"`
	Personality *string  `json:"personality"`
	Disease     *string  `json:"disease"`
	Notice      *string  `json:"notice"`
}

// View is one pet profile as shown on the wire.
type View struct {
	ID          string   `json:"pId"`
	MemberID    string   `json:"mId"`
	Name        string   `json:"name"`
	Breed       string   `json:"breed"`
	Birth       string   `json:"birth"`
	Ligation    string   `json:"ligation"`
	Weight      *float64 `json:"weight"`
	Personality *string  `json:"personality"`
	Disease     string   `json:"disease"`
	Notice      *string  `json:"notice"`
}

type PetUseCase interface {
	Create(ctx context.Context, authMemberID string, in CreatePetInput) (*View, error)
	ListByMember(ctx context.Context, memberID string) ([]View, error)
}

type Service struct {
	repo repository.PetRepository
	now  func() time.Time
}

var _ PetUseCase = (*Service)(nil)

func NewService(repo repository.PetRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates and registers a pet under the authenticated member. The
// identifier is assigned by storage. An omitted disease is recorded as
// "none" so the profile always answers the health question explicitly.
func (s *Service) Create(ctx context.Context, authMemberID string, in CreatePetInput) (*View, error) {
	if in.MemberID == "" || in.Name == "" || in.Breed == "" || in.Birth == "" || in.Ligation == "" {
		return nil, fmt.Errorf("%w: mId, name, breed, birth and ligation are required", ErrValidation)
	}

	birth, err := time.Parse(birthLayout, in.Birth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid birth date", ErrValidation)
	}
	if birth.After(s.now()) {
		return nil, fmt.Errorf("%w: birth cannot be in the future", ErrValidation)
	}
	if in.Weight != nil && *in.Weight < 0 {
		return nil, fmt.Errorf("%w: weight cannot be negative", ErrValidation)
	}

	if in.MemberID != authMemberID {
		return nil, fmt.Errorf("%w: cannot register a pet for another member", ErrForbidden)
	}

	disease := "none"
	if in.Disease != nil && *in.Disease != "" {
		disease = *in.Disease
	}

	p := &domain.Pet{
		MemberID:    in.MemberID,
		Name:        in.Name,
		Breed:       in.Breed,
		Birth:       birth,
		Ligation:    in.Ligation,
		Weight:      in.Weight,
		Personality: in.Personality,
		Disease:     disease,
		Notice:      in.Notice,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	v := toView(*p)
	return &v, nil
}

// ListByMember returns the member's pets, newest registration first.
func (s *Service) ListByMember(ctx context.Context, memberID string) ([]View, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: mId is required", ErrValidation)
	}

	pets, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	out := make([]View, len(pets))
	for i, p := range pets {
		out[i] = toView(p)
	}
	return out, nil
}

func toView(p domain.Pet) View {
	return View{
		ID:          p.ID,
		MemberID:    p.MemberID,
		Name:        p.Name,
		Breed:       p.Breed,
		Birth:       p.Birth.Format(birthLayout),
		Ligation:    p.Ligation,
		Weight:      p.Weight,
		Personality: p.Personality,
		Disease:     p.Disease,
		Notice:      p.Notice,
	}
}
