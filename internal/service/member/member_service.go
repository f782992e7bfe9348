// Package member handles login.
package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/petfolk/petcare/internal/repository"
)

var (
	// ErrValidation marks a login request missing credentials.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks an unknown member/password pair. Which of the
	// two was wrong is not disclosed.
	ErrUnauthorized = errors.New("unauthorized")
)

// Profile is the logged-in member as returned to the client.
type Profile struct {
	ID      string `json:"mId"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type MemberUseCase interface {
	Login(ctx context.Context, memberID, password string) (*Profile, error)
}

type Service struct {
	repo repository.MemberRepository
}

var _ MemberUseCase = (*Service)(nil)

func NewService(repo repository.MemberRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Login(ctx context.Context, memberID, password string) (*Profile, error) {
	if memberID == "" || password == "" {
		return nil, fmt.Errorf("%w: mId and password are required", ErrValidation)
	}

	m, err := s.repo.Authenticate(ctx, memberID, password)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	return &Profile{
		ID:      m.ID,
		Name:    m.Name,
		Phone:   m.Phone,
		Email:   m.Email,
		Address: m.Address,
	}, nil
}
